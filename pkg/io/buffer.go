package io

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// Buffer is an in-memory volume. Unlike a growable buffer, its size is fixed
// at construction and every access is bounds checked.
type Buffer struct {
	data []byte
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) ReadAt(offset Byte, p []byte) error {
	if err := checkBounds(b.Size(), offset, len(p)); err != nil {
		return fmt.Errorf(
			"reading `%d` bytes from buffer at offset `%d`: %w",
			len(p),
			offset,
			err,
		)
	}
	copy(p, b.data[offset:])
	return nil
}

func (b *Buffer) WriteAt(offset Byte, p []byte) error {
	if err := checkBounds(b.Size(), offset, len(p)); err != nil {
		return fmt.Errorf(
			"writing `%d` bytes to buffer at offset `%d`: %w",
			len(p),
			offset,
			err,
		)
	}
	copy(b.data[offset:], p)
	return nil
}

func (b *Buffer) Size() Byte { return Byte(len(b.data)) }

func (b *Buffer) Bytes() []byte { return b.data }
