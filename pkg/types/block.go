package types

// Byte is a count of bytes or a byte offset.
type Byte int64

// Block is the index of a block on the device. Block pointers are encoded
// on disk as a single byte.
type Block uint64

const (
	BlockPointerSize Byte = 1

	// BlockNil is never a valid data block because block 0 always holds the
	// superblock.
	BlockNil Block = 0

	// MaxBlocks is the largest device a one-byte block pointer can address.
	MaxBlocks Block = 1 << (8 * BlockPointerSize)
)
