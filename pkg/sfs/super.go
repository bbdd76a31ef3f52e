package sfs

import (
	"fmt"
	stdio "io"

	"github.com/weberc2/sfs/pkg/alloc"
	"github.com/weberc2/sfs/pkg/directory"
	"github.com/weberc2/sfs/pkg/disk"
	"github.com/weberc2/sfs/pkg/encode"
	. "github.com/weberc2/sfs/pkg/types"
)

// ReadSuper decodes the superblock from block 0 of `d`.
func ReadSuper(d *disk.Disk, sb *Superblock) error {
	buf := new([encode.SuperblockSize]byte)
	if err := d.Read(0, 0, buf[:]); err != nil {
		return fmt.Errorf("reading superblock: %w", err)
	}
	if err := encode.DecodeSuperblock(sb, buf); err != nil {
		return fmt.Errorf("reading superblock: %w", err)
	}
	return nil
}

// WriteSuper encodes `sb` into block 0 of `d`.
func WriteSuper(d *disk.Disk, sb *Superblock) error {
	buf := new([encode.SuperblockSize]byte)
	encode.EncodeSuperblock(sb, buf)
	if err := d.Write(0, 0, buf[:]); err != nil {
		return fmt.Errorf("writing superblock: %w", err)
	}
	return nil
}

// Format writes an empty file system: a superblock, and a root directory
// holding only its own "." entry. The file system is left unmounted and every
// open file is closed.
func (fs *FileSystem) Format() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.mounted = false
	fs.files.Reset()
	fs.inodes.Invalidate()

	if err := fs.disk.Zero(); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}

	// the root directory owns the first inode and the first data block
	sb := Superblock{
		InodeBlocks: uint8(fs.geometry.InodeBlocks()),
		DataBlocks:  uint8(fs.geometry.DataBlocks()),
		UsedInodes:  1,
		UsedData:    1,
	}
	if err := WriteSuper(fs.disk, &sb); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}

	root := Inode{
		Ino:      InoRoot,
		FileType: FileTypeDir,
		Size:     0,
		Blocks:   []Block{fs.geometry.DataRegionStart},
	}
	if err := fs.inodes.Put(&root); err != nil {
		return fmt.Errorf("formatting: writing root inode: %w", err)
	}

	if _, err := directory.CreateEntry(fs.dirFS(), &root, &DirEntry{
		Ino:     InoRoot,
		NameLen: uint8(len(selfName)),
		Name:    selfName,
	}); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}
	return nil
}

// selfName is the name of the root directory's entry for itself.
const selfName = "."

// Mount loads the file system's metadata from the device, first replacing the
// device's contents with `snapshot` if it isn't nil. Every other operation
// fails until a mount succeeds; a failed mount leaves the file system
// unmounted.
func (fs *FileSystem) Mount(snapshot stdio.Reader) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.mounted = false
	fs.files.Reset()
	fs.inodes.Invalidate()

	if snapshot != nil {
		if err := fs.disk.Load(snapshot); err != nil {
			return fmt.Errorf("mounting: loading snapshot: %w", err)
		}
	}

	var sb Superblock
	if err := ReadSuper(fs.disk, &sb); err != nil {
		return fmt.Errorf("mounting: %w", err)
	}
	if err := fs.checkSuper(&sb); err != nil {
		return fmt.Errorf("mounting: %w", err)
	}

	var root Inode
	if err := fs.inodes.Get(InoRoot, &root); err != nil {
		return fmt.Errorf("mounting: loading root inode: %w", err)
	}
	if root.FileType != FileTypeDir {
		return fmt.Errorf(
			"mounting: root inode has type `%s`: %w",
			root.FileType,
			CorruptRootErr,
		)
	}

	fs.super = sb
	fs.root = root
	fs.inoCounter = alloc.NewCounter(
		uint64(sb.UsedInodes),
		uint64(fs.geometry.InodeCount()),
	)
	fs.blockCounter = alloc.NewCounter(
		uint64(sb.UsedData),
		uint64(fs.geometry.DataBlocks()),
	)
	fs.mounted = true
	return nil
}

func (fs *FileSystem) checkSuper(sb *Superblock) error {
	switch {
	case Block(sb.InodeBlocks) != fs.geometry.InodeBlocks():
		return fmt.Errorf(
			"wanted `%d` inode blocks; found `%d`: %w",
			fs.geometry.InodeBlocks(),
			sb.InodeBlocks,
			GeometryMismatchErr,
		)
	case Block(sb.DataBlocks) != fs.geometry.DataBlocks():
		return fmt.Errorf(
			"wanted `%d` data blocks; found `%d`: %w",
			fs.geometry.DataBlocks(),
			sb.DataBlocks,
			GeometryMismatchErr,
		)
	case sb.UsedInodes < 1 || Ino(sb.UsedInodes) > fs.geometry.InodeCount():
		return fmt.Errorf(
			"`%d` used inodes of `%d`: %w",
			sb.UsedInodes,
			fs.geometry.InodeCount(),
			GeometryMismatchErr,
		)
	case sb.UsedData < 1 || Block(sb.UsedData) > fs.geometry.DataBlocks():
		return fmt.Errorf(
			"`%d` used data blocks of `%d`: %w",
			sb.UsedData,
			fs.geometry.DataBlocks(),
			GeometryMismatchErr,
		)
	}
	return nil
}

// Superblock returns a copy of the mounted file system's superblock.
func (fs *FileSystem) Superblock() (Superblock, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if err := fs.requireMounted(); err != nil {
		return Superblock{}, fmt.Errorf("reading superblock: %w", err)
	}
	return fs.super, nil
}

// Dump writes the raw device image to `w`.
func (fs *FileSystem) Dump(w stdio.Writer) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if err := fs.disk.Dump(w); err != nil {
		return fmt.Errorf("dumping file system: %w", err)
	}
	return nil
}
