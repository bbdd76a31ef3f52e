package alloc

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// BlockAllocator hands out data blocks. Handle `n` maps to block
// `Start + n`, so the first data block goes to the root directory.
type BlockAllocator struct {
	*Counter
	Start Block
}

func (ba BlockAllocator) Alloc() (Block, error) {
	n, ok := ba.Counter.Alloc()
	if !ok {
		return BlockNil, fmt.Errorf(
			"allocating data block: `%d` of `%d` used: %w",
			ba.Used(),
			ba.Capacity(),
			OutOfBlocksErr,
		)
	}
	return ba.Start + Block(n), nil
}

// InoAllocator hands out inos; handle `n` is ino `n`.
type InoAllocator struct {
	*Counter
}

func (ia InoAllocator) Alloc() (Ino, error) {
	n, ok := ia.Counter.Alloc()
	if !ok {
		return 0, fmt.Errorf(
			"allocating inode: `%d` of `%d` used: %w",
			ia.Used(),
			ia.Capacity(),
			OutOfInodesErr,
		)
	}
	return Ino(n), nil
}
