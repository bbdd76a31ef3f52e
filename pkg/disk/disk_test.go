package disk

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/weberc2/sfs/pkg/types"
)

func TestDisk_ReadWrite(t *testing.T) {
	d := NewMemory(16, 4)
	wanted := []byte("abcd")
	if err := d.Write(2, 12, wanted); err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}

	found := make([]byte, 4)
	if err := d.Read(2, 12, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if !bytes.Equal(wanted, found) {
		t.Fatalf("Read(): wanted `%s`; found `%s`", wanted, found)
	}

	if err := d.Read(1, 12, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if !bytes.Equal(found, make([]byte, 4)) {
		t.Fatalf("Read(): wanted zeroes in neighboring block; found `%v`", found)
	}
}

func TestDisk_Bounds(t *testing.T) {
	type testCase struct {
		name   string
		block  Block
		offset Byte
		length int
	}

	for _, tc := range []testCase{
		{name: "block past end", block: 4, offset: 0, length: 1},
		{name: "range straddles block", block: 1, offset: 14, length: 4},
		{name: "negative offset", block: 1, offset: -1, length: 1},
		{name: "longer than block", block: 0, offset: 0, length: 17},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := NewMemory(16, 4)
			p := make([]byte, tc.length)
			if err := d.Read(tc.block, tc.offset, p); !errors.Is(
				err,
				OutOfBoundsErr,
			) {
				t.Fatalf("Read(): wanted `OutOfBoundsErr`; found `%v`", err)
			}
			if err := d.Write(tc.block, tc.offset, p); !errors.Is(
				err,
				InvalidArgumentErr,
			) {
				t.Fatalf("Write(): wanted `InvalidArgumentErr`; found `%v`", err)
			}
		})
	}
}

func TestDisk_DumpLoad(t *testing.T) {
	src := NewMemory(16, 4)
	if err := src.Write(3, 0, []byte("last block")); err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}

	var image bytes.Buffer
	if err := src.Dump(&image); err != nil {
		t.Fatalf("Dump(): unexpected err: %v", err)
	}
	if image.Len() != 64 {
		t.Fatalf("Dump(): wanted `64` bytes; found `%d`", image.Len())
	}

	dst := NewMemory(16, 4)
	if err := dst.Load(bytes.NewReader(image.Bytes())); err != nil {
		t.Fatalf("Load(): unexpected err: %v", err)
	}

	found := make([]byte, 10)
	if err := dst.Read(3, 0, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if string(found) != "last block" {
		t.Fatalf("Read(): wanted `last block`; found `%s`", found)
	}

	if err := dst.Write(0, 0, []byte("first block")); err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}
	if err := dst.Load(bytes.NewReader(image.Bytes()[:40])); !errors.Is(
		err,
		ShortImageErr,
	) {
		t.Fatalf("Load(): wanted `ShortImageErr`; found `%v`", err)
	}

	// the failed load kept the previous contents
	found = make([]byte, 11)
	if err := dst.Read(0, 0, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if string(found) != "first block" {
		t.Fatalf("Read(): wanted `first block`; found `%s`", found)
	}
}

func TestDisk_Zero(t *testing.T) {
	d := NewMemory(16, 4)
	if err := d.Write(1, 0, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Write(): unexpected err: %v", err)
	}
	if err := d.Zero(); err != nil {
		t.Fatalf("Zero(): unexpected err: %v", err)
	}
	found := make([]byte, 16)
	if err := d.Read(1, 0, found); err != nil {
		t.Fatalf("Read(): unexpected err: %v", err)
	}
	if !bytes.Equal(found, make([]byte, 16)) {
		t.Fatalf("Zero(): wanted zeroed block; found `%v`", found)
	}
}
