package types

// DirEntry maps a name to an ino. An entry whose NameLen is zero is unused.
type DirEntry struct {
	Ino     Ino
	NameLen uint8
	Name    string
}

func (entry *DirEntry) Used() bool { return entry.NameLen != 0 }
