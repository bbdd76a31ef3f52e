package file

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/weberc2/sfs/pkg/alloc"
	"github.com/weberc2/sfs/pkg/disk"
	"github.com/weberc2/sfs/pkg/inode/store"
	. "github.com/weberc2/sfs/pkg/types"
)

type blockAllocator struct {
	next Block
	end  Block
}

func (ba *blockAllocator) AllocBlock() (Block, error) {
	if ba.next >= ba.end {
		return BlockNil, alloc.OutOfBlocksErr
	}
	b := ba.next
	ba.next++
	return b, nil
}

func (ba *blockAllocator) FreeBlocks() int { return int(ba.end - ba.next) }

func newTestFile(t *testing.T, g Geometry) (*FileSystem, *Handle) {
	d := disk.NewMemory(g.BlockSize, g.Blocks)
	fs := &FileSystem{
		Disk:           d,
		Geometry:       &g,
		InodeStore:     store.NewVolumeInodeStore(d, &g),
		BlockAllocator: &blockAllocator{next: 9, end: g.Blocks},
	}
	inode := Inode{Ino: 1, FileType: FileTypeRegular}
	if err := fs.InodeStore.Put(&inode); err != nil {
		t.Fatalf("storing inode: unexpected err: %v", err)
	}
	table := NewTable(1)
	fd, err := table.Open(&inode)
	if err != nil {
		t.Fatalf("Open(): unexpected err: %v", err)
	}
	h, err := table.Get(fd)
	if err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	return fs, h
}

func mustWrite(t *testing.T, fs *FileSystem, h *Handle, p []byte) {
	n, err := Write(fs, h, p)
	if err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}
	if n != len(p) {
		t.Fatalf("Write(): wanted `%d` bytes written; found `%d`", len(p), n)
	}
}

func TestWriteSeekRead(t *testing.T) {
	fs, h := newTestFile(t, DefaultGeometry)
	mustWrite(t, fs, h, []byte("test "))
	mustWrite(t, fs, h, []byte("message"))

	if pos, err := Seek(fs, h, 0, io.SeekStart); err != nil || pos != 0 {
		t.Fatalf("Seek(): wanted `0, nil`; found `%d, %v`", pos, err)
	}

	found := make([]byte, 12)
	if _, err := Read(fs, h, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if string(found) != "test message" {
		t.Fatalf("Read(): wanted `test message`; found `%s`", found)
	}
	if h.Cursor() != 12 {
		t.Fatalf("Read(): wanted cursor `12`; found `%d`", h.Cursor())
	}

	var stored Inode
	if err := fs.InodeStore.Get(1, &stored); err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	if stored.Size != 12 || len(stored.Blocks) != 1 || stored.Blocks[0] != 9 {
		t.Fatalf(
			"Write(): wanted size `12` in block `9`; found size `%d` in `%v`",
			stored.Size,
			stored.Blocks,
		)
	}
}

func TestWrite_TooLarge(t *testing.T) {
	fs, h := newTestFile(t, DefaultGeometry)
	mustWrite(t, fs, h, bytes.Repeat([]byte{'a'}, 100))

	_, err := Write(fs, h, bytes.Repeat([]byte{'b'}, 29))
	if !errors.Is(err, FileTooLargeErr) {
		t.Fatalf("Write(): wanted `FileTooLargeErr`; found `%v`", err)
	}
	if !errors.Is(err, InvalidArgumentErr) {
		t.Fatalf("Write(): wanted invalid-argument kind; found `%v`", err)
	}
	if h.Size() != 100 || h.Cursor() != 100 {
		t.Fatalf(
			"Write(): wanted size and cursor `100`; found `%d`, `%d`",
			h.Size(),
			h.Cursor(),
		)
	}

	// nothing of the rejected write reached the block
	tail := make([]byte, 28)
	if err := fs.Disk.Read(9, 100, tail); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if !bytes.Equal(tail, make([]byte, 28)) {
		t.Fatalf("Write(): partial write: `%v`", tail)
	}

	mustWrite(t, fs, h, bytes.Repeat([]byte{'c'}, 28))
	if h.Size() != 128 {
		t.Fatalf("Write(): wanted size `128`; found `%d`", h.Size())
	}
}

func TestWrite_SizeHighWater(t *testing.T) {
	fs, h := newTestFile(t, DefaultGeometry)
	mustWrite(t, fs, h, []byte("0123456789"))
	if _, err := Seek(fs, h, 2, io.SeekStart); err != nil {
		t.Fatalf("Seek(): unexpected err: %v", err)
	}
	mustWrite(t, fs, h, []byte("ab"))

	if h.Size() != 10 {
		t.Fatalf("Write(): wanted size `10`; found `%d`", h.Size())
	}

	if _, err := Seek(fs, h, 0, io.SeekStart); err != nil {
		t.Fatalf("Seek(): unexpected err: %v", err)
	}
	found := make([]byte, 10)
	if _, err := Read(fs, h, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if string(found) != "01ab456789" {
		t.Fatalf("Read(): wanted `01ab456789`; found `%s`", found)
	}
}

func TestWrite_MultiBlock(t *testing.T) {
	g := DefaultGeometry
	g.MaxFileBlocks = 4
	fs, h := newTestFile(t, g)

	wanted := make([]byte, 400)
	for i := range wanted {
		wanted[i] = byte(i)
	}
	mustWrite(t, fs, h, wanted)

	if blocks := h.Inode().Blocks; len(blocks) != 4 {
		t.Fatalf("Write(): wanted `4` blocks; found `%v`", blocks)
	}

	if _, err := Seek(fs, h, -400, io.SeekEnd); err != nil {
		t.Fatalf("Seek(): unexpected err: %v", err)
	}
	found := make([]byte, 400)
	if _, err := Read(fs, h, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if !bytes.Equal(wanted, found) {
		t.Fatal("Read(): multi-block contents differ")
	}
}

func TestWrite_OutOfBlocks(t *testing.T) {
	fs, h := newTestFile(t, DefaultGeometry)
	fs.BlockAllocator = &blockAllocator{next: 10, end: 10}

	if _, err := Write(fs, h, []byte("x")); !errors.Is(
		err,
		alloc.OutOfBlocksErr,
	) {
		t.Fatalf("Write(): wanted `OutOfBlocksErr`; found `%v`", err)
	}
	if h.Size() != 0 {
		t.Fatalf("Write(): wanted size `0`; found `%d`", h.Size())
	}
}

func TestRead_TooLong(t *testing.T) {
	fs, h := newTestFile(t, DefaultGeometry)
	mustWrite(t, fs, h, []byte("short"))
	if _, err := Seek(fs, h, 0, io.SeekStart); err != nil {
		t.Fatalf("Seek(): unexpected err: %v", err)
	}

	if _, err := Read(fs, h, make([]byte, 6)); !errors.Is(err, ReadTooLongErr) {
		t.Fatalf("Read(): wanted `ReadTooLongErr`; found `%v`", err)
	}
	if h.Cursor() != 0 {
		t.Fatalf("Read(): wanted cursor `0`; found `%d`", h.Cursor())
	}
}

func TestSeek(t *testing.T) {
	for _, tc := range []struct {
		name      string
		offset    Byte
		whence    int
		wanted    Byte
		wantedErr error
	}{
		{name: "start", offset: 3, whence: io.SeekStart, wanted: 3},
		{name: "start at size", offset: 10, whence: io.SeekStart, wanted: 10},
		{name: "current", offset: -2, whence: io.SeekCurrent, wanted: 8},
		{name: "end", offset: -4, whence: io.SeekEnd, wanted: 6},
		{name: "back from end", offset: -3, whence: io.SeekEnd, wanted: 7},
		{name: "end exactly", offset: 0, whence: io.SeekEnd, wanted: 10},
		{
			name:      "positive offset from end",
			offset:    3,
			whence:    io.SeekEnd,
			wanted:    10,
			wantedErr: SeekOutOfRangeErr,
		},
		{
			name:      "past end",
			offset:    11,
			whence:    io.SeekStart,
			wanted:    10,
			wantedErr: SeekOutOfRangeErr,
		},
		{
			name:      "before start",
			offset:    -11,
			whence:    io.SeekCurrent,
			wanted:    10,
			wantedErr: SeekOutOfRangeErr,
		},
		{
			name:      "bad whence",
			offset:    0,
			whence:    3,
			wanted:    10,
			wantedErr: BadWhenceErr,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fs, h := newTestFile(t, DefaultGeometry)
			mustWrite(t, fs, h, []byte("0123456789"))

			found, err := Seek(fs, h, tc.offset, tc.whence)
			if tc.wantedErr != nil {
				if !errors.Is(err, tc.wantedErr) {
					t.Fatalf("Seek(): wanted `%v`; found `%v`", tc.wantedErr, err)
				}
			} else if err != nil {
				t.Fatalf("Seek(): unexpected err: %v", err)
			}
			if found != tc.wanted || h.Cursor() != tc.wanted {
				t.Fatalf(
					"Seek(): wanted `%d`; found `%d` (cursor `%d`)",
					tc.wanted,
					found,
					h.Cursor(),
				)
			}
		})
	}
}

func TestTable(t *testing.T) {
	table := NewTable(2)
	for i := 0; i < 2; i++ {
		if fd, err := table.Open(&Inode{Ino: Ino(i)}); err != nil || fd != FD(i) {
			t.Fatalf("Open(): wanted `%d, nil`; found `%d, %v`", i, fd, err)
		}
	}
	if !table.Full() {
		t.Fatal("Full(): wanted `true`")
	}
	if _, err := table.Open(&Inode{Ino: 2}); !errors.Is(
		err,
		TooManyOpenFilesErr,
	) {
		t.Fatalf("Open(): wanted `TooManyOpenFilesErr`; found `%v`", err)
	}

	if err := table.Close(0); err != nil {
		t.Fatalf("Close(): unexpected err: %v", err)
	}
	for _, fd := range []FD{0, -1, 2} {
		if err := table.Close(fd); !errors.Is(err, BadDescriptorErr) {
			t.Fatalf("Close(%d): wanted `BadDescriptorErr`; found `%v`", fd, err)
		}
	}

	if fd, err := table.Open(&Inode{Ino: 3}); err != nil || fd != 0 {
		t.Fatalf("Open(): wanted reused slot `0`; found `%d, %v`", fd, err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len(): wanted `2`; found `%d`", table.Len())
	}

	table.Reset()
	if table.Len() != 0 {
		t.Fatalf("Reset(): wanted `0` open; found `%d`", table.Len())
	}
}
