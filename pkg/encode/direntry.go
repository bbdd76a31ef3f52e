package encode

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// EncodeDirEntry marshals `entry` into the directory entry record `p`. The
// name buffer is NUL padded and always keeps room for a terminator.
func EncodeDirEntry(entry *DirEntry, p []byte) error {
	nameBuf := p[dirEntryNameStart:]
	if len(entry.Name) >= len(nameBuf) {
		return fmt.Errorf(
			"encoding directory entry `%s`: name buffer is `%d` bytes: %w",
			entry.Name,
			len(nameBuf),
			EncodeErr,
		)
	}
	if entry.Ino > MaxInodes {
		return fmt.Errorf(
			"encoding directory entry `%s`: ino `%d`: %w",
			entry.Name,
			entry.Ino,
			EncodeErr,
		)
	}

	putU8(p, dirEntryInoStart, uint8(entry.Ino))
	putU8(p, dirEntryNameLenStart, uint8(len(entry.Name)))
	n := copy(nameBuf, entry.Name)
	for i := n; i < len(nameBuf); i++ {
		nameBuf[i] = 0
	}
	return nil
}

// DecodeDirEntry unmarshals the directory entry record `p`. A zero name length
// decodes successfully into an unused entry; callers check `Used()`.
func DecodeDirEntry(entry *DirEntry, p []byte) error {
	nameLen := getU8(p, dirEntryNameLenStart)
	if Byte(nameLen) >= Byte(len(p))-dirEntryNameStart {
		return fmt.Errorf(
			"decoding directory entry: name length `%d`: %w",
			nameLen,
			CorruptDirEntryErr,
		)
	}

	entry.Ino = Ino(getU8(p, dirEntryInoStart))
	entry.NameLen = nameLen
	entry.Name = string(p[dirEntryNameStart : dirEntryNameStart+Byte(nameLen)])
	return nil
}

var CorruptDirEntryErr = NewError(CorruptionErr, "corrupt directory entry")

const (
	dirEntryInoStart = 0
	dirEntryInoSize  = InoSize
	dirEntryInoEnd   = dirEntryInoStart + dirEntryInoSize

	dirEntryNameLenStart = dirEntryInoEnd
	dirEntryNameLenSize  = 1
	dirEntryNameLenEnd   = dirEntryNameLenStart + dirEntryNameLenSize

	dirEntryNameStart = dirEntryNameLenEnd

	DirEntryHeaderSize = dirEntryNameStart
)
