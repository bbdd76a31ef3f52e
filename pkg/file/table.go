package file

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

// FD identifies a slot in the open file table.
type FD int

// Handle is an open file: a cursor and a private copy of the file's inode.
type Handle struct {
	used   bool
	cursor Byte
	inode  Inode
}

func (h *Handle) Ino() Ino { return h.inode.Ino }
func (h *Handle) Cursor() Byte { return h.cursor }
func (h *Handle) Size() Byte { return h.inode.Size }
func (h *Handle) Inode() *Inode { return &h.inode }

// Table is a fixed-size table of open files.
type Table struct {
	handles []Handle
	open    int
}

func NewTable(capacity int) *Table {
	return &Table{handles: make([]Handle, capacity)}
}

// Open claims the first free slot for `inode` with the cursor at 0.
func (t *Table) Open(inode *Inode) (FD, error) {
	for i := range t.handles {
		if !t.handles[i].used {
			t.handles[i] = Handle{used: true, inode: inode.Clone()}
			t.open++
			return FD(i), nil
		}
	}
	return -1, fmt.Errorf(
		"opening inode `%d`: `%d` files open: %w",
		inode.Ino,
		t.open,
		TooManyOpenFilesErr,
	)
}

// Full reports whether every slot is in use.
func (t *Table) Full() bool { return t.open >= len(t.handles) }

// Len is the number of slots in use.
func (t *Table) Len() int { return t.open }

func (t *Table) Get(fd FD) (*Handle, error) {
	if fd < 0 || int(fd) >= len(t.handles) || !t.handles[fd].used {
		return nil, fmt.Errorf("descriptor `%d`: %w", fd, BadDescriptorErr)
	}
	return &t.handles[fd], nil
}

// Close zeroes the slot for `fd`.
func (t *Table) Close(fd FD) error {
	if _, err := t.Get(fd); err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	t.handles[fd] = Handle{}
	t.open--
	return nil
}

// Reset closes every open file.
func (t *Table) Reset() {
	for i := range t.handles {
		t.handles[i] = Handle{}
	}
	t.open = 0
}

var (
	TooManyOpenFilesErr = NewError(ResourceExhaustedErr, "too many open files")
	BadDescriptorErr    = NewError(InvalidArgumentErr, "bad file descriptor")
)
