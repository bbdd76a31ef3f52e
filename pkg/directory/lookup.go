package directory

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// Lookup finds the entry called `name` in the directory `dirIno` and
// describes it in `out`. Only the matching entry's inode is fetched.
func Lookup(fs *FileSystem, dirIno Ino, name string, out *FileInfo) error {
	var dir Inode
	if err := fs.InodeStore.Get(dirIno, &dir); err != nil {
		return fmt.Errorf("looking up `%s` in dir `%d`: %w", name, dirIno, err)
	}
	if dir.FileType != FileTypeDir {
		return fmt.Errorf(
			"looking up `%s` in `%d`: %w",
			name,
			dirIno,
			NotADirErr,
		)
	}

	var entry DirEntry
	if err := find(fs, &dir, name, &entry); err != nil {
		return fmt.Errorf("looking up `%s` in dir `%d`: %w", name, dirIno, err)
	}

	var inode Inode
	if err := fs.InodeStore.Get(entry.Ino, &inode); err != nil {
		return fmt.Errorf(
			"looking up `%s` in dir `%d`: entry points at inode `%d`: %w",
			name,
			dirIno,
			entry.Ino,
			err,
		)
	}
	out.fill(&entry, &inode)
	return nil
}

// find scans `dir`'s slots in order for a used entry called `name`.
func find(fs *FileSystem, dir *Inode, name string, out *DirEntry) error {
	for slot, slots := 0, Slots(fs, dir); slot < slots; slot++ {
		if err := readSlot(fs, dir, slot, out); err != nil {
			return err
		}
		if out.Used() && out.Name == name {
			return nil
		}
	}
	return EntryNotFoundErr
}
