// Package io provides the byte-addressed volumes a disk is built on.
package io

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// Volume is a fixed-size, byte-addressed backing store. Accesses that would
// run past `Size()` fail with `OutOfBoundsErr` and touch nothing.
type Volume interface {
	ReadAt(offset Byte, p []byte) error
	WriteAt(offset Byte, p []byte) error
	Size() Byte
}

var (
	_ Volume = (*Buffer)(nil)
	_ Volume = (*FileVolume)(nil)
)

var OutOfBoundsErr = NewError(InvalidArgumentErr, "access out of bounds")

// checkBounds fails unless `n` bytes at `offset` fit in a volume of `size`
// bytes.
func checkBounds(size, offset Byte, n int) error {
	if offset < 0 || offset > size || Byte(n) > size-offset {
		return fmt.Errorf(
			"accessing `%d` bytes at offset `%d` of `%d`: %w",
			n,
			offset,
			size,
			OutOfBoundsErr,
		)
	}
	return nil
}
