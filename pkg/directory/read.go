package directory

import (
	"fmt"
	"io"

	"github.com/weberc2/sfs/pkg/encode"
	. "github.com/weberc2/sfs/pkg/types"
)

// Slots is the number of entry slots in the directory's allocated blocks.
func Slots(fs *FileSystem, dir *Inode) int {
	return len(dir.Blocks) * fs.Geometry.EntriesPerBlock()
}

// ReadEntry reads the `n`th entry slot of `dir`. Unused slots and slots past
// the directory's allocated blocks are reported as `EntryNotFoundErr`.
func ReadEntry(fs *FileSystem, dir *Inode, n int, out *DirEntry) error {
	var entry DirEntry
	if err := readSlot(fs, dir, n, &entry); err != nil {
		return err
	}
	if !entry.Used() {
		return fmt.Errorf(
			"reading entry `%d` of dir `%d`: slot unused: %w",
			n,
			dir.Ino,
			EntryNotFoundErr,
		)
	}
	*out = entry
	return nil
}

func readSlot(fs *FileSystem, dir *Inode, n int, out *DirEntry) error {
	block, offset, err := locate(fs, dir, n)
	if err != nil {
		return fmt.Errorf("reading entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}

	buf := make([]byte, fs.Geometry.DirEntrySize)
	if err := fs.Disk.Read(block, offset, buf); err != nil {
		return fmt.Errorf("reading entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}
	if err := encode.DecodeDirEntry(out, buf); err != nil {
		return fmt.Errorf("reading entry `%d` of dir `%d`: %w", n, dir.Ino, err)
	}
	return nil
}

// locate maps entry slot `n` onto a block of `dir` and an offset within it.
func locate(fs *FileSystem, dir *Inode, n int) (Block, Byte, error) {
	if n < 0 || n >= Slots(fs, dir) {
		return BlockNil, 0, fmt.Errorf(
			"slot `%d` of `%d`: %w",
			n,
			Slots(fs, dir),
			EntryNotFoundErr,
		)
	}
	perBlock := fs.Geometry.EntriesPerBlock()
	return dir.Blocks[n/perBlock],
		Byte(n%perBlock) * fs.Geometry.DirEntrySize,
		nil
}

// Handle is a cursor over a directory's entry slots.
type Handle struct {
	ino  Ino
	slot int
}

func Open(fs *FileSystem, dirIno Ino, handle *Handle) error {
	var dir Inode
	if err := fs.InodeStore.Get(dirIno, &dir); err != nil {
		return fmt.Errorf("opening dir `%d`: %w", dirIno, err)
	}
	if dir.FileType != FileTypeDir {
		return fmt.Errorf("opening dir `%d`: %w", dirIno, NotADirErr)
	}
	*handle = Handle{ino: dirIno}
	return nil
}

// ReadNext advances `handle` to the next used entry and describes it in
// `info`. It returns `io.EOF` once every slot has been visited.
func ReadNext(fs *FileSystem, handle *Handle, info *FileInfo) error {
	var dir Inode
	if err := fs.InodeStore.Get(handle.ino, &dir); err != nil {
		return fmt.Errorf(
			"reading entry from `%d` at slot `%d`: %w",
			handle.ino,
			handle.slot,
			err,
		)
	}

	var entry DirEntry
	for slots := Slots(fs, &dir); handle.slot < slots; {
		if err := readSlot(fs, &dir, handle.slot, &entry); err != nil {
			return err
		}
		handle.slot++

		if !entry.Used() {
			continue
		}

		var inode Inode
		if err := fs.InodeStore.Get(entry.Ino, &inode); err != nil {
			return fmt.Errorf(
				"reading entry `%s` from `%d`: %w",
				entry.Name,
				handle.ino,
				err,
			)
		}
		info.fill(&entry, &inode)
		return nil
	}

	return io.EOF
}

// List describes every used entry of the directory `dirIno`, in slot order.
func List(fs *FileSystem, dirIno Ino) ([]FileInfo, error) {
	var h Handle
	if err := Open(fs, dirIno, &h); err != nil {
		return nil, fmt.Errorf("listing dir `%d`: %w", dirIno, err)
	}

	var infos []FileInfo
	for {
		var info FileInfo
		if err := ReadNext(fs, &h, &info); err != nil {
			if err == io.EOF {
				return infos, nil
			}
			return nil, fmt.Errorf("listing dir `%d`: %w", dirIno, err)
		}
		infos = append(infos, info)
	}
}
