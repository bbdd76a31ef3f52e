package alloc

import (
	"errors"
	"testing"

	. "github.com/weberc2/sfs/pkg/types"
)

func TestCounter(t *testing.T) {
	c := NewCounter(1, 3)
	for _, wanted := range []uint64{1, 2} {
		found, ok := c.Alloc()
		if !ok {
			t.Fatalf("Alloc(): wanted `%d`; found exhausted", wanted)
		}
		if found != wanted {
			t.Fatalf("Alloc(): wanted `%d`; found `%d`", wanted, found)
		}
	}

	if _, ok := c.Alloc(); ok {
		t.Fatal("Alloc(): wanted exhausted; found ok")
	}
	if used := c.Used(); used != 3 {
		t.Fatalf("Used(): wanted `3`; found `%d`", used)
	}
	if free := c.Free(); free != 0 {
		t.Fatalf("Free(): wanted `0`; found `%d`", free)
	}
}

func TestBlockAllocator(t *testing.T) {
	ba := BlockAllocator{Counter: NewCounter(1, 248), Start: 8}
	found, err := ba.Alloc()
	if err != nil {
		t.Fatalf("Alloc(): unexpected err: %v", err)
	}
	if found != 9 {
		t.Fatalf("Alloc(): wanted `9`; found `%d`", found)
	}

	ba = BlockAllocator{Counter: NewCounter(2, 2), Start: 8}
	found, err = ba.Alloc()
	if !errors.Is(err, OutOfBlocksErr) {
		t.Fatalf("Alloc(): wanted `OutOfBlocksErr`; found `%v`", err)
	}
	if found != BlockNil {
		t.Fatalf("Alloc(): wanted `BlockNil`; found `%d`", found)
	}
	if !errors.Is(err, ResourceExhaustedErr) {
		t.Fatalf("Alloc(): wanted resource-exhausted kind; found `%v`", err)
	}
}

func TestInoAllocator(t *testing.T) {
	ia := InoAllocator{NewCounter(1, 2)}
	if found, err := ia.Alloc(); err != nil || found != 1 {
		t.Fatalf("Alloc(): wanted `1, nil`; found `%d, %v`", found, err)
	}
	if _, err := ia.Alloc(); !errors.Is(err, OutOfInodesErr) {
		t.Fatalf("Alloc(): wanted `OutOfInodesErr`; found `%v`", err)
	}
}
