package encode

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

func EncodeSuperblock(sb *Superblock, b *[SuperblockSize]byte) {
	p := b[:]
	putU16(p, superblockMagicStart, SuperblockMagic)
	putU8(p, superblockInodeBlocksStart, sb.InodeBlocks)
	putU8(p, superblockDataBlocksStart, sb.DataBlocks)
	putU8(p, superblockUsedInodesStart, sb.UsedInodes)
	putU8(p, superblockUsedDataStart, sb.UsedData)
}

func DecodeSuperblock(sb *Superblock, b *[SuperblockSize]byte) error {
	p := b[:]
	if magic := getU16(p, superblockMagicStart); magic != SuperblockMagic {
		return fmt.Errorf("decoding superblock: %w", BadMagicErr{magic})
	}
	sb.InodeBlocks = getU8(p, superblockInodeBlocksStart)
	sb.DataBlocks = getU8(p, superblockDataBlocksStart)
	sb.UsedInodes = getU8(p, superblockUsedInodesStart)
	sb.UsedData = getU8(p, superblockUsedDataStart)
	return nil
}

type BadMagicErr struct {
	Found uint16
}

func (err BadMagicErr) Error() string {
	return fmt.Sprintf(
		"bad magic: wanted `%d`; found `%d`",
		SuperblockMagic,
		err.Found,
	)
}

func (err BadMagicErr) Unwrap() error { return CorruptionErr }

const (
	superblockMagicStart = 0
	superblockMagicSize  = 2
	superblockMagicEnd   = superblockMagicStart + superblockMagicSize

	superblockInodeBlocksStart = superblockMagicEnd
	superblockInodeBlocksSize  = 1
	superblockInodeBlocksEnd   = superblockInodeBlocksStart + superblockInodeBlocksSize

	superblockDataBlocksStart = superblockInodeBlocksEnd
	superblockDataBlocksSize  = 1
	superblockDataBlocksEnd   = superblockDataBlocksStart + superblockDataBlocksSize

	superblockUsedInodesStart = superblockDataBlocksEnd
	superblockUsedInodesSize  = 1
	superblockUsedInodesEnd   = superblockUsedInodesStart + superblockUsedInodesSize

	superblockUsedDataStart = superblockUsedInodesEnd
	superblockUsedDataSize  = 1
	superblockUsedDataEnd   = superblockUsedDataStart + superblockUsedDataSize

	SuperblockSize = superblockUsedDataEnd
)
