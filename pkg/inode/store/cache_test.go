package store

import (
	"encoding/json"
	"testing"

	. "github.com/weberc2/sfs/pkg/types"
)

func TestCache_GetWhenEmpty(t *testing.T) {
	c := NewCache(2)

	var inode Inode
	if c.Get(0, &inode) {
		t.Fatal("empty cache: getting ino `0`: expected `false`; found `true`")
	}
}

func TestCache(t *testing.T) {
	type testCase struct {
		name          string
		capacity      int
		initialState  []Inode
		touch         []Ino
		pushInput     Inode
		wantedEvicted *Inode
		getInput      Ino
		wanted        *Inode
	}

	testCases := []testCase{{
		name:      "empty",
		capacity:  2,
		pushInput: Inode{Ino: 10},
		getInput:  10,
		wanted:    &Inode{Ino: 10},
	}, {
		name:         "neither empty nor full",
		capacity:     2,
		initialState: []Inode{{Ino: 9}},
		pushInput:    Inode{Ino: 10},
		getInput:     9,
		wanted:       &Inode{Ino: 9},
	}, {
		name:          "eviction",
		capacity:      1,
		initialState:  []Inode{{Ino: 9}},
		pushInput:     Inode{Ino: 10},
		wantedEvicted: &Inode{Ino: 9},
		getInput:      9,
	}, {
		name:          "get refreshes recency",
		capacity:      2,
		initialState:  []Inode{{Ino: 1}, {Ino: 2}},
		touch:         []Ino{1},
		pushInput:     Inode{Ino: 3},
		wantedEvicted: &Inode{Ino: 2},
		getInput:      1,
		wanted:        &Inode{Ino: 1},
	}, {
		name:     "push replaces existing",
		capacity: 2,
		initialState: []Inode{
			{Ino: 1, FileType: FileTypeRegular},
			{Ino: 2},
		},
		pushInput: Inode{Ino: 1, FileType: FileTypeRegular, Size: 29},
		getInput:  1,
		wanted:    &Inode{Ino: 1, FileType: FileTypeRegular, Size: 29},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCache(tc.capacity)
			for i := range tc.initialState {
				var evicted Inode
				if c.Push(&tc.initialState[i], &evicted) {
					data, err := json.Marshal(&evicted)
					if err != nil {
						t.Fatalf("failed to marshal inode to json: %v", err)
					}
					t.Fatalf(
						"initializing test cache: unexpected eviction: %s",
						data,
					)
				}
			}
			for _, ino := range tc.touch {
				var touched Inode
				if !c.Get(ino, &touched) {
					t.Fatalf("touching ino `%d`: not found", ino)
				}
			}

			var evicted Inode
			evict := c.Push(&tc.pushInput, &evicted)
			if evict != (tc.wantedEvicted != nil) {
				t.Fatalf(
					"Push(): eviction: wanted `%t`; found `%t`",
					tc.wantedEvicted != nil,
					evict,
				)
			}
			if evict && !tc.wantedEvicted.Equal(&evicted) {
				wanted, err := json.Marshal(tc.wantedEvicted)
				if err != nil {
					t.Fatalf("failed to marshal inode to json: %v", err)
				}
				found, err := json.Marshal(&evicted)
				if err != nil {
					t.Fatalf("failed to marshal inode to json: %v", err)
				}
				t.Fatalf("evicted: wanted `%s`; found `%s`", wanted, found)
			}

			var output Inode
			found := c.Get(tc.getInput, &output)
			if found != (tc.wanted != nil) {
				t.Fatalf(
					"Get(%d): match: wanted `%t`; found `%t`",
					tc.getInput,
					tc.wanted != nil,
					found,
				)
			}
			if found && !tc.wanted.Equal(&output) {
				wanted, err := json.Marshal(tc.wanted)
				if err != nil {
					t.Fatalf("failed to marshal inode to json: %v", err)
				}
				data, err := json.Marshal(&output)
				if err != nil {
					t.Fatalf("failed to marshal inode to json: %v", err)
				}
				t.Fatalf("Get(): wanted `%s`; found `%s`", wanted, data)
			}
		})
	}
}

func TestCache_CopiesBlocks(t *testing.T) {
	c := NewCache(1)
	inode := Inode{Ino: 1, Blocks: []Block{8}}
	var evicted Inode
	c.Push(&inode, &evicted)
	inode.Blocks[0] = 9

	var found Inode
	if !c.Get(1, &found) {
		t.Fatal("Get(): wanted match")
	}
	if found.Blocks[0] != 8 {
		t.Fatalf("Get(): wanted block `8`; found `%d`", found.Blocks[0])
	}
}

func TestCache_Remove(t *testing.T) {
	c := NewCache(1)
	var evicted, removed Inode
	c.Push(&Inode{Ino: 1}, &evicted)
	if !c.Remove(1, &removed) || removed.Ino != 1 {
		t.Fatalf("Remove(): wanted ino `1`; found `%d`", removed.Ino)
	}
	if c.Push(&Inode{Ino: 2}, &evicted) {
		t.Fatal("Push(): unexpected eviction after removal")
	}
	if c.Len() != 1 {
		t.Fatalf("Len(): wanted `1`; found `%d`", c.Len())
	}
}
