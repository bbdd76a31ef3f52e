package types

import (
	"fmt"
)

// Ino is the index of an inode in the inode table. Inos are encoded on disk
// as a single byte.
type Ino uint64

const (
	InoSize Byte = 1

	// InoRoot is the root directory's ino; it's reserved by format.
	InoRoot Ino = 0

	// MaxInodes is the largest inode table the one-byte used-inode counter
	// can describe.
	MaxInodes Ino = 1<<(8*InoSize) - 1
)

type Inode struct {
	Ino      Ino
	FileType FileType
	Size     Byte

	// Blocks holds the used direct block pointers in file order; its length
	// is the inode's used-block count.
	Blocks []Block
}

// UsedBlocks is the count of used direct block pointers.
func (inode *Inode) UsedBlocks() int { return len(inode.Blocks) }

func (inode *Inode) Equal(other *Inode) bool {
	if inode.Ino != other.Ino || inode.FileType != other.FileType ||
		inode.Size != other.Size || len(inode.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range inode.Blocks {
		if inode.Blocks[i] != other.Blocks[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the inode that shares no memory with the original.
func (inode *Inode) Clone() Inode {
	out := *inode
	if inode.Blocks != nil {
		out.Blocks = append([]Block(nil), inode.Blocks...)
	}
	return out
}

type FileType uint8

const (
	FileTypeUnused FileType = iota
	FileTypeRegular
	FileTypeDir
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeUnused:
		return "Unused"
	case FileTypeRegular:
		return "Regular"
	case FileTypeDir:
		return "Dir"
	default:
		return fmt.Sprintf("FileType(%d)", uint8(ft))
	}
}

// Letter is the single-character tag used in listings.
func (ft FileType) Letter() byte {
	switch ft {
	case FileTypeUnused:
		return 'U'
	case FileTypeRegular:
		return 'F'
	case FileTypeDir:
		return 'D'
	default:
		return '?'
	}
}

func (ft FileType) MarshalJSON() ([]byte, error) {
	s := ft.String()
	out := make([]byte, len(s)+2)
	out[0] = '"'
	out[len(out)-1] = '"'
	copy(out[1:], s)
	return out, nil
}

func (ft FileType) Validate() error {
	if ft > FileTypeDir {
		return fmt.Errorf(
			"validating file type `%d`: %w",
			ft,
			InvalidFileTypeErr,
		)
	}
	return nil
}

var InvalidFileTypeErr = NewError(CorruptionErr, "invalid file type")

// InodeStore persists inodes by ino. `Get()` fills a caller-owned inode so
// hot paths can reuse one.
type InodeStore interface {
	Put(inode *Inode) error
	Get(ino Ino, output *Inode) error
}
