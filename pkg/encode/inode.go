package encode

import (
	"fmt"
	"math"

	. "github.com/weberc2/sfs/pkg/types"
)

// EncodeInode marshals `inode` into `p`, which must be one inode record. Block
// pointers past the inode's used count are zeroed.
func EncodeInode(inode *Inode, p []byte) error {
	capacity := pointerCapacity(p)
	if len(inode.Blocks) > capacity {
		return fmt.Errorf(
			"encoding inode `%d`: `%d` blocks in a record with room for "+
				"`%d`: %w",
			inode.Ino,
			len(inode.Blocks),
			capacity,
			EncodeErr,
		)
	}
	if inode.Size < 0 || inode.Size > math.MaxUint16 {
		return fmt.Errorf(
			"encoding inode `%d`: size `%d`: %w",
			inode.Ino,
			inode.Size,
			EncodeErr,
		)
	}
	for _, block := range inode.Blocks {
		if block >= MaxBlocks {
			return fmt.Errorf(
				"encoding inode `%d`: block `%d`: %w",
				inode.Ino,
				block,
				EncodeErr,
			)
		}
	}

	putU8(p, inodeFileTypeStart, uint8(inode.FileType))
	putU16(p, inodeSizeStart, uint16(inode.Size))
	putU8(p, inodeUsedBlocksStart, uint8(len(inode.Blocks)))
	for i := 0; i < capacity; i++ {
		block := BlockNil
		if i < len(inode.Blocks) {
			block = inode.Blocks[i]
		}
		putU8(p, inodeBlocksStart+Byte(i)*BlockPointerSize, uint8(block))
	}
	return nil
}

// DecodeInode unmarshals the inode record `p`. The record's ino isn't stored
// on disk, so `inode.Ino` is left untouched.
func DecodeInode(inode *Inode, capacity int, p []byte) error {
	// validate into temporaries so `inode` isn't mutated on error
	ft := FileType(getU8(p, inodeFileTypeStart))
	if err := ft.Validate(); err != nil {
		return fmt.Errorf("decoding inode: %w", err)
	}

	used := int(getU8(p, inodeUsedBlocksStart))
	if used > capacity || used > pointerCapacity(p) {
		return fmt.Errorf(
			"decoding inode: `%d` used blocks exceeds capacity `%d`: %w",
			used,
			capacity,
			CorruptInodeErr,
		)
	}

	blocks := make([]Block, used)
	for i := range blocks {
		blocks[i] = Block(getU8(p, inodeBlocksStart+Byte(i)*BlockPointerSize))
	}

	inode.FileType = ft
	inode.Size = Byte(getU16(p, inodeSizeStart))
	inode.Blocks = blocks
	return nil
}

func pointerCapacity(p []byte) int {
	return int((Byte(len(p)) - inodeBlocksStart) / BlockPointerSize)
}

var CorruptInodeErr = NewError(CorruptionErr, "corrupt inode")

const (
	inodeFileTypeStart = 0
	inodeFileTypeSize  = 1
	inodeFileTypeEnd   = inodeFileTypeStart + inodeFileTypeSize

	inodeSizeStart = inodeFileTypeEnd
	inodeSizeSize  = 2
	inodeSizeEnd   = inodeSizeStart + inodeSizeSize

	inodeUsedBlocksStart = inodeSizeEnd
	inodeUsedBlocksSize  = 1
	inodeUsedBlocksEnd   = inodeUsedBlocksStart + inodeUsedBlocksSize

	inodeBlocksStart = inodeUsedBlocksEnd

	InodeHeaderSize = inodeBlocksStart
)
