package types

import (
	"fmt"
	"math"
)

// Geometry holds the layout constants a volume is formatted with. The on-disk
// field widths bound what a geometry may describe; see `Validate()`.
type Geometry struct {
	BlockSize        Byte  `envconfig:"SFS_BLOCK_SIZE"         yaml:"blockSize"`
	Blocks           Block `envconfig:"SFS_BLOCKS"             yaml:"blocks"`
	InodeRegionStart Block `envconfig:"SFS_INODE_REGION_START" yaml:"inodeRegionStart"`
	DataRegionStart  Block `envconfig:"SFS_DATA_REGION_START"  yaml:"dataRegionStart"`
	InodeSize        Byte  `envconfig:"SFS_INODE_SIZE"         yaml:"inodeSize"`
	BlocksPerInode   int   `envconfig:"SFS_BLOCKS_PER_INODE"   yaml:"blocksPerInode"`
	MaxFileBlocks    int   `envconfig:"SFS_MAX_FILE_BLOCKS"    yaml:"maxFileBlocks"`
	MaxOpenFiles     int   `envconfig:"SFS_MAX_OPEN_FILES"     yaml:"maxOpenFiles"`
	NameLength       int   `envconfig:"SFS_NAME_LENGTH"        yaml:"nameLength"`
	DirEntrySize     Byte  `envconfig:"SFS_DIR_ENTRY_SIZE"     yaml:"dirEntrySize"`
	MaxDirDepth      int   `envconfig:"SFS_MAX_DIR_DEPTH"      yaml:"maxDirDepth"`
}

// DefaultGeometry is a 32KiB volume of 128-byte blocks.
var DefaultGeometry = Geometry{
	BlockSize:        128,
	Blocks:           256,
	InodeRegionStart: 3,
	DataRegionStart:  8,
	InodeSize:        32,
	BlocksPerInode:   28,
	MaxFileBlocks:    1,
	MaxOpenFiles:     8,
	NameLength:       14,
	DirEntrySize:     16,
	MaxDirDepth:      0,
}

const (
	// sizes of the fixed inode and directory entry headers
	inodeHeaderSize    Byte = 4
	dirEntryHeaderSize Byte = 2

	// superblockSize is the number of bytes of block 0 the superblock uses.
	superblockSize Byte = 6
)

var InvalidGeometryErr = NewError(InvalidArgumentErr, "invalid geometry")

// Size is the total size of the volume in bytes.
func (g *Geometry) Size() Byte { return Byte(g.Blocks) * g.BlockSize }

func (g *Geometry) InodeBlocks() Block {
	return g.DataRegionStart - g.InodeRegionStart
}

func (g *Geometry) DataBlocks() Block { return g.Blocks - g.DataRegionStart }

func (g *Geometry) InodesPerBlock() Ino { return Ino(g.BlockSize / g.InodeSize) }

// InodeCount is the capacity of the inode table.
func (g *Geometry) InodeCount() Ino {
	count := Ino(g.InodeBlocks()) * g.InodesPerBlock()
	if count > MaxInodes {
		return MaxInodes
	}
	return count
}

func (g *Geometry) EntriesPerBlock() int { return int(g.BlockSize / g.DirEntrySize) }

// MaxFileSize is the largest regular file the geometry allows.
func (g *Geometry) MaxFileSize() Byte { return Byte(g.MaxFileBlocks) * g.BlockSize }

// MaxNameLen is the longest name that fits in a directory entry's name
// buffer with room for a terminator.
func (g *Geometry) MaxNameLen() int { return g.NameLength - 1 }

func (g *Geometry) Validate() error {
	if g.MaxDirDepth != 0 {
		return fmt.Errorf(
			"validating geometry: directory depth `%d`: %w",
			g.MaxDirDepth,
			NewError(UnsupportedErr, "nested directories are not supported"),
		)
	}
	if reason := g.invalidReason(); reason != "" {
		return fmt.Errorf("validating geometry: %s: %w", reason, InvalidGeometryErr)
	}
	return nil
}

func (g *Geometry) invalidReason() string {
	switch {
	case g.BlockSize < superblockSize:
		return fmt.Sprintf("block size `%d` can't hold the superblock", g.BlockSize)
	case g.Blocks > MaxBlocks:
		return fmt.Sprintf(
			"`%d` blocks can't be addressed by one-byte block pointers",
			g.Blocks,
		)
	case g.InodeRegionStart < 1:
		return "the inode region overlaps the superblock"
	case g.DataRegionStart <= g.InodeRegionStart:
		return "the inode region is empty"
	case g.Blocks <= g.DataRegionStart:
		return "the data region is empty"
	case g.InodeBlocks() > math.MaxUint8 || g.DataBlocks() > math.MaxUint8:
		return "region sizes don't fit the superblock's one-byte counters"
	case g.BlocksPerInode < 1:
		return "inodes need at least one block pointer"
	case g.InodeSize < inodeHeaderSize+Byte(g.BlocksPerInode)*BlockPointerSize:
		return fmt.Sprintf(
			"inode size `%d` can't hold `%d` block pointers",
			g.InodeSize,
			g.BlocksPerInode,
		)
	case g.BlockSize%g.InodeSize != 0:
		return "inodes must not straddle blocks"
	case g.NameLength < 2:
		return "names need at least one byte plus a terminator"
	case g.NameLength > math.MaxUint8:
		return "name lengths must fit the one-byte length field"
	case g.DirEntrySize < dirEntryHeaderSize+Byte(g.NameLength):
		return fmt.Sprintf(
			"directory entry size `%d` can't hold a `%d` byte name",
			g.DirEntrySize,
			g.NameLength,
		)
	case g.BlockSize%g.DirEntrySize != 0:
		return "directory entries must not straddle blocks"
	case g.MaxFileBlocks < 1 || g.MaxFileBlocks > g.BlocksPerInode:
		return fmt.Sprintf(
			"max file blocks `%d` must be between 1 and `%d`",
			g.MaxFileBlocks,
			g.BlocksPerInode,
		)
	case Byte(g.BlocksPerInode)*g.BlockSize > math.MaxUint16:
		return "inode sizes don't fit the two-byte size field"
	case g.MaxOpenFiles < 1:
		return "the open file table needs at least one slot"
	}
	return ""
}
