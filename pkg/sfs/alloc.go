package sfs

import (
	"fmt"

	"github.com/weberc2/sfs/pkg/alloc"
	. "github.com/weberc2/sfs/pkg/types"
)

// blockAllocator lets the directory and file operations allocate data blocks
// while the file system's mutex is held.
type blockAllocator struct {
	fs *FileSystem
}

func (ba blockAllocator) AllocBlock() (Block, error) { return ba.fs.allocBlock() }

func (ba blockAllocator) FreeBlocks() int { return ba.fs.freeBlocks() }

// allocBlock allocates the next data block and persists the superblock's
// counter before returning it.
func (fs *FileSystem) allocBlock() (Block, error) {
	block, err := alloc.BlockAllocator{
		Counter: fs.blockCounter,
		Start:   fs.geometry.DataRegionStart,
	}.Alloc()
	if err != nil {
		return BlockNil, err
	}

	fs.super.UsedData = uint8(fs.blockCounter.Used())
	if err := WriteSuper(fs.disk, &fs.super); err != nil {
		return BlockNil, fmt.Errorf("allocating data block `%d`: %w", block, err)
	}
	return block, nil
}

func (fs *FileSystem) freeBlocks() int {
	return int(fs.blockCounter.Free())
}

// allocIno allocates the next inode and persists the superblock's counter
// before returning it.
func (fs *FileSystem) allocIno() (Ino, error) {
	ino, err := alloc.InoAllocator{Counter: fs.inoCounter}.Alloc()
	if err != nil {
		return 0, err
	}

	fs.super.UsedInodes = uint8(fs.inoCounter.Used())
	if err := WriteSuper(fs.disk, &fs.super); err != nil {
		return 0, fmt.Errorf("allocating inode `%d`: %w", ino, err)
	}
	return ino, nil
}
