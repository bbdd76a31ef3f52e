// Package encode converts the on-disk records (superblock, inode, directory
// entry) to and from their fixed-offset little-endian byte layouts.
package encode

import (
	"encoding/binary"

	. "github.com/weberc2/sfs/pkg/types"
)

var EncodeErr = NewError(
	InvalidArgumentErr,
	"value doesn't fit its on-disk field",
)

// Inos and block pointers are both single bytes on disk, so every field is
// either a `u8` or a little-endian `u16`.

func putU8(p []byte, start Byte, u uint8) { p[start] = u }

func getU8(p []byte, start Byte) uint8 { return p[start] }

func putU16(p []byte, start Byte, u uint16) {
	binary.LittleEndian.PutUint16(p[start:], u)
}

func getU16(p []byte, start Byte) uint16 {
	return binary.LittleEndian.Uint16(p[start:])
}
