package store

import (
	"fmt"

	"github.com/weberc2/sfs/pkg/disk"
	"github.com/weberc2/sfs/pkg/encode"
	. "github.com/weberc2/sfs/pkg/types"
)

var _ InodeStore = (*VolumeInodeStore)(nil)

// VolumeInodeStore reads and writes inode records in the inode table, which
// starts at the geometry's inode region.
type VolumeInodeStore struct {
	disk     *disk.Disk
	geometry *Geometry
}

func NewVolumeInodeStore(d *disk.Disk, geometry *Geometry) *VolumeInodeStore {
	return &VolumeInodeStore{disk: d, geometry: geometry}
}

// Locate returns the block holding inode `ino` and the record's offset within
// that block.
func (store *VolumeInodeStore) Locate(ino Ino) (Block, Byte, error) {
	if ino >= store.geometry.InodeCount() {
		return BlockNil, 0, fmt.Errorf(
			"locating inode `%d` in a table of `%d`: %w",
			ino,
			store.geometry.InodeCount(),
			InodeOutOfRangeErr,
		)
	}
	start := Byte(ino) * store.geometry.InodeSize
	return store.geometry.InodeRegionStart +
			Block(start/store.geometry.BlockSize),
		start % store.geometry.BlockSize,
		nil
}

func (store *VolumeInodeStore) Put(inode *Inode) error {
	if len(inode.Blocks) > store.geometry.BlocksPerInode {
		return fmt.Errorf(
			"writing inode `%d`: `%d` blocks: %w",
			inode.Ino,
			len(inode.Blocks),
			TooManyBlocksErr,
		)
	}

	block, offset, err := store.Locate(inode.Ino)
	if err != nil {
		return fmt.Errorf("writing inode: %w", err)
	}

	buf := make([]byte, store.geometry.InodeSize)
	if err := encode.EncodeInode(inode, buf); err != nil {
		return fmt.Errorf("writing inode: %w", err)
	}

	if err := store.disk.Write(block, offset, buf); err != nil {
		return fmt.Errorf(
			"writing inode `%d` to block `%d` at offset `%d`: %w",
			inode.Ino,
			block,
			offset,
			err,
		)
	}
	return nil
}

func (store *VolumeInodeStore) Get(ino Ino, output *Inode) error {
	block, offset, err := store.Locate(ino)
	if err != nil {
		return fmt.Errorf("reading inode: %w", err)
	}

	buf := make([]byte, store.geometry.InodeSize)
	if err := store.disk.Read(block, offset, buf); err != nil {
		return fmt.Errorf(
			"reading inode `%d` from block `%d` at offset `%d`: %w",
			ino,
			block,
			offset,
			err,
		)
	}

	if err := encode.DecodeInode(
		output,
		store.geometry.BlocksPerInode,
		buf,
	); err != nil {
		return fmt.Errorf("reading inode `%d`: %w", ino, err)
	}
	output.Ino = ino
	return nil
}

var (
	InodeOutOfRangeErr = NewError(InvalidArgumentErr, "inode out of range")
	TooManyBlocksErr   = NewError(
		InvalidArgumentErr,
		"inode has more blocks than pointers",
	)
	CorruptInodeErr = encode.CorruptInodeErr
)
