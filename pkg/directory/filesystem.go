package directory

import (
	"github.com/weberc2/sfs/pkg/disk"
	. "github.com/weberc2/sfs/pkg/types"
)

// BlockAllocator allocates a data block and records the allocation before
// returning.
type BlockAllocator interface {
	AllocBlock() (Block, error)

	// FreeBlocks is the number of blocks that can still be allocated.
	FreeBlocks() int
}

// FileSystem holds the collaborators the directory operations need.
type FileSystem struct {
	Disk           *disk.Disk
	Geometry       *Geometry
	InodeStore     InodeStore
	BlockAllocator BlockAllocator
}
