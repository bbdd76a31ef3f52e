// Package sfs implements a simple file system with a single directory over a
// block device. All state lives on the device except the open file table.
package sfs

import (
	"fmt"
	"sync"

	"github.com/weberc2/sfs/pkg/alloc"
	"github.com/weberc2/sfs/pkg/directory"
	"github.com/weberc2/sfs/pkg/disk"
	"github.com/weberc2/sfs/pkg/file"
	"github.com/weberc2/sfs/pkg/inode/store"
	"github.com/weberc2/sfs/pkg/io"
	. "github.com/weberc2/sfs/pkg/types"
)

// inodeCacheCapacity bounds the number of decoded inodes kept in memory.
const inodeCacheCapacity = 16

// FileSystem is the mount state of an SFS volume. Its methods are safe for
// concurrent use; they are serialized by a single mutex.
type FileSystem struct {
	mutex    sync.Mutex
	geometry Geometry
	disk     *disk.Disk
	inodes   *store.CachingInodeStore
	files    *file.Table

	// valid only while mounted
	mounted      bool
	super        Superblock
	root         Inode
	blockCounter *alloc.Counter
	inoCounter   *alloc.Counter
}

// New returns an unmounted file system over `volume`, which must be exactly
// the size `geometry` describes.
func New(volume io.Volume, geometry Geometry) (*FileSystem, error) {
	if err := geometry.Validate(); err != nil {
		return nil, fmt.Errorf("creating file system: %w", err)
	}
	if volume.Size() != geometry.Size() {
		return nil, fmt.Errorf(
			"creating file system: volume is `%d` bytes; geometry needs "+
				"`%d`: %w",
			volume.Size(),
			geometry.Size(),
			VolumeSizeErr,
		)
	}

	fs := &FileSystem{
		geometry: geometry,
		disk:     disk.New(volume, geometry.BlockSize, geometry.Blocks),
		files:    file.NewTable(geometry.MaxOpenFiles),
	}
	fs.inodes = store.NewCachingInodeStore(
		store.NewVolumeInodeStore(fs.disk, &fs.geometry),
		inodeCacheCapacity,
	)
	return fs, nil
}

// NewMemory returns an unmounted file system over a zeroed in-memory volume.
func NewMemory(geometry Geometry) (*FileSystem, error) {
	return New(io.NewBuffer(make([]byte, geometry.Size())), geometry)
}

func (fs *FileSystem) Geometry() Geometry { return fs.geometry }

// dirFS exposes the file system's collaborators to the directory and file
// operations.
func (fs *FileSystem) dirFS() *directory.FileSystem {
	return &directory.FileSystem{
		Disk:           fs.disk,
		Geometry:       &fs.geometry,
		InodeStore:     fs.inodes,
		BlockAllocator: blockAllocator{fs},
	}
}

func (fs *FileSystem) requireMounted() error {
	if !fs.mounted {
		return NotMountedErr
	}
	return nil
}
