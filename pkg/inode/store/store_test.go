package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/weberc2/sfs/pkg/disk"
	. "github.com/weberc2/sfs/pkg/types"
)

func newTestStore() (*VolumeInodeStore, *disk.Disk) {
	g := DefaultGeometry
	d := disk.NewMemory(g.BlockSize, g.Blocks)
	return NewVolumeInodeStore(d, &g), d
}

func TestVolumeInodeStore_Locate(t *testing.T) {
	store, _ := newTestStore()
	for _, tc := range []struct {
		ino          Ino
		wantedBlock  Block
		wantedOffset Byte
	}{
		{ino: 0, wantedBlock: 3, wantedOffset: 0},
		{ino: 3, wantedBlock: 3, wantedOffset: 96},
		{ino: 4, wantedBlock: 4, wantedOffset: 0},
		{ino: 19, wantedBlock: 7, wantedOffset: 96},
	} {
		block, offset, err := store.Locate(tc.ino)
		if err != nil {
			t.Fatalf("Locate(%d): unexpected err: %v", tc.ino, err)
		}
		if block != tc.wantedBlock || offset != tc.wantedOffset {
			t.Fatalf(
				"Locate(%d): wanted `(%d, %d)`; found `(%d, %d)`",
				tc.ino,
				tc.wantedBlock,
				tc.wantedOffset,
				block,
				offset,
			)
		}
	}

	if _, _, err := store.Locate(20); !errors.Is(err, InodeOutOfRangeErr) {
		t.Fatalf("Locate(20): wanted `InodeOutOfRangeErr`; found `%v`", err)
	}
}

func TestVolumeInodeStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore()
	for ino := Ino(0); ino < DefaultGeometry.InodeCount(); ino++ {
		wanted := Inode{
			Ino:      ino,
			FileType: FileTypeRegular,
			Size:     Byte(ino) * 3,
			Blocks:   []Block{Block(8 + ino)},
		}
		if err := store.Put(&wanted); err != nil {
			t.Fatalf("Put(%d): unexpected err: %v", ino, err)
		}

		var found Inode
		if err := store.Get(ino, &found); err != nil {
			t.Fatalf("Get(%d): unexpected err: %v", ino, err)
		}
		if !wanted.Equal(&found) {
			w, _ := json.Marshal(wanted)
			f, _ := json.Marshal(found)
			t.Fatalf("Get(%d): wanted `%s`; found `%s`", ino, w, f)
		}
	}
}

func TestVolumeInodeStore_Errors(t *testing.T) {
	store, d := newTestStore()

	if err := store.Put(&Inode{
		Ino:    1,
		Blocks: make([]Block, 29),
	}); !errors.Is(err, TooManyBlocksErr) {
		t.Fatalf("Put(): wanted `TooManyBlocksErr`; found `%v`", err)
	}

	// used-blocks count of 29 for inode 1
	if err := d.Write(3, 32+3, []byte{29}); err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}
	var inode Inode
	if err := store.Get(1, &inode); !errors.Is(err, CorruptInodeErr) {
		t.Fatalf("Get(): wanted `CorruptInodeErr`; found `%v`", err)
	}
	if !errors.Is(store.Get(1, &inode), CorruptionErr) {
		t.Fatal("Get(): wanted corruption kind")
	}
}

type countingStore struct {
	InodeStore
	gets int
}

func (store *countingStore) Get(ino Ino, inode *Inode) error {
	store.gets++
	return store.InodeStore.Get(ino, inode)
}

func TestCachingInodeStore(t *testing.T) {
	backend, _ := newTestStore()
	counting := &countingStore{InodeStore: backend}
	store := NewCachingInodeStore(counting, 2)

	wanted := Inode{Ino: 2, FileType: FileTypeRegular, Size: 12}
	if err := store.Put(&wanted); err != nil {
		t.Fatalf("Put(): unexpected err: %v", err)
	}

	// write-through: the backend sees the inode immediately
	var found Inode
	if err := backend.Get(2, &found); err != nil {
		t.Fatalf("backend.Get(): unexpected err: %v", err)
	}
	if !wanted.Equal(&found) {
		t.Fatalf("backend.Get(): wanted size `12`; found `%d`", found.Size)
	}

	if err := store.Get(2, &found); err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	if counting.gets != 0 {
		t.Fatalf("Get(): wanted cache hit; found `%d` backend gets", counting.gets)
	}

	if err := store.Get(5, &found); err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	if err := store.Get(5, &found); err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	if counting.gets != 1 {
		t.Fatalf("Get(): wanted `1` backend get; found `%d`", counting.gets)
	}

	store.Invalidate()
	if err := store.Get(2, &found); err != nil {
		t.Fatalf("Get(): unexpected err: %v", err)
	}
	if counting.gets != 2 {
		t.Fatalf("Invalidate(): wanted `2` backend gets; found `%d`", counting.gets)
	}
}
