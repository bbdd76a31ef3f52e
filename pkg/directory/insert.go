package directory

import (
	"fmt"

	"github.com/weberc2/sfs/pkg/encode"
	"github.com/weberc2/sfs/pkg/math"
	. "github.com/weberc2/sfs/pkg/types"
)

// CreateEntry writes `entry` into the first unused slot of `dir`, scanning
// every block the directory owns in block order. If every slot is used, a new
// zeroed block is appended to the directory. `dir` is updated and persisted.
// The slot used is returned.
func CreateEntry(fs *FileSystem, dir *Inode, entry *DirEntry) (int, error) {
	slot, err := freeSlot(fs, dir)
	if err != nil {
		return 0, fmt.Errorf(
			"inserting `%s` into dir `%d`: %w",
			entry.Name,
			dir.Ino,
			err,
		)
	}

	if err := WriteEntry(fs, dir, slot, entry); err != nil {
		return 0, fmt.Errorf(
			"inserting `%s` into dir `%d`: %w",
			entry.Name,
			dir.Ino,
			err,
		)
	}

	dir.Size = math.Max(dir.Size, Byte(slot+1)*fs.Geometry.DirEntrySize)
	if err := fs.InodeStore.Put(dir); err != nil {
		return 0, fmt.Errorf(
			"inserting `%s` into dir `%d`: %w",
			entry.Name,
			dir.Ino,
			err,
		)
	}
	return slot, nil
}

// WriteEntry encodes `entry` into slot `n` of `dir`.
func WriteEntry(fs *FileSystem, dir *Inode, n int, entry *DirEntry) error {
	block, offset, err := locate(fs, dir, n)
	if err != nil {
		return fmt.Errorf("writing entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}

	buf := make([]byte, fs.Geometry.DirEntrySize)
	if err := encode.EncodeDirEntry(entry, buf); err != nil {
		return fmt.Errorf("writing entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}
	if err := fs.Disk.Write(block, offset, buf); err != nil {
		return fmt.Errorf("writing entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}
	return nil
}

func freeSlot(fs *FileSystem, dir *Inode) (int, error) {
	var entry DirEntry
	slots := Slots(fs, dir)
	for n := 0; n < slots; n++ {
		if err := readSlot(fs, dir, n, &entry); err != nil {
			return 0, err
		}
		if !entry.Used() {
			return n, nil
		}
	}

	if len(dir.Blocks) >= fs.Geometry.BlocksPerInode {
		return 0, fmt.Errorf(
			"`%d` slots in `%d` blocks: %w",
			slots,
			len(dir.Blocks),
			DirFullErr,
		)
	}

	block, err := fs.BlockAllocator.AllocBlock()
	if err != nil {
		return 0, fmt.Errorf("growing dir: %w", err)
	}
	if err := fs.Disk.ZeroBlock(block); err != nil {
		return 0, fmt.Errorf("growing dir: %w", err)
	}
	dir.Blocks = append(dir.Blocks, block)
	return slots, nil
}

// HasRoom reports whether `CreateEntry()` can place another entry in `dir`,
// either in an unused slot or in a newly appended block.
func HasRoom(fs *FileSystem, dir *Inode) (bool, error) {
	var entry DirEntry
	for n, slots := 0, Slots(fs, dir); n < slots; n++ {
		if err := readSlot(fs, dir, n, &entry); err != nil {
			return false, fmt.Errorf("checking dir `%d` for room: %w", dir.Ino, err)
		}
		if !entry.Used() {
			return true, nil
		}
	}
	return len(dir.Blocks) < fs.Geometry.BlocksPerInode &&
		fs.BlockAllocator.FreeBlocks() > 0, nil
}
