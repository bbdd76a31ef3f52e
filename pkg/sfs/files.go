package sfs

import (
	"errors"
	"fmt"

	"github.com/weberc2/sfs/pkg/directory"
	"github.com/weberc2/sfs/pkg/file"
	. "github.com/weberc2/sfs/pkg/types"
)

type FD = file.FD

type FileInfo = directory.FileInfo

// Open opens the regular file `name` in the root directory. If `create` is
// true, a new empty file is created instead; the name must not already exist.
// The returned descriptor's cursor is at the start of the file.
func (fs *FileSystem) Open(name string, create bool) (FD, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := fs.requireMounted(); err != nil {
		return -1, fmt.Errorf("opening `%s`: %w", name, err)
	}

	// check for a free slot first so a full table never costs an inode
	if fs.files.Full() {
		return -1, fmt.Errorf(
			"opening `%s`: `%d` files open: %w",
			name,
			fs.files.Len(),
			TooManyOpenFilesErr,
		)
	}

	var inode Inode
	if create {
		if err := fs.create(name, &inode); err != nil {
			return -1, fmt.Errorf("creating `%s`: %w", name, err)
		}
	} else if err := fs.lookup(name, &inode); err != nil {
		return -1, fmt.Errorf("opening `%s`: %w", name, err)
	}

	fd, err := fs.files.Open(&inode)
	if err != nil {
		return -1, fmt.Errorf("opening `%s`: %w", name, err)
	}
	return fd, nil
}

func (fs *FileSystem) lookup(name string, out *Inode) error {
	var info FileInfo
	if err := directory.Lookup(fs.dirFS(), InoRoot, name, &info); err != nil {
		return err
	}
	if info.FileType == FileTypeDir {
		return fmt.Errorf("inode `%d`: %w", info.Ino, IsDirErr)
	}
	return fs.inodes.Get(info.Ino, out)
}

func (fs *FileSystem) create(name string, out *Inode) error {
	if err := fs.validateName(name); err != nil {
		return err
	}

	var info FileInfo
	err := directory.Lookup(fs.dirFS(), InoRoot, name, &info)
	if err == nil {
		return fmt.Errorf("inode `%d`: %w", info.Ino, ExistsErr)
	}
	if !errors.Is(err, FileNotFoundErr) {
		return err
	}

	// make sure nothing is allocated unless the entry can be inserted
	room, err := directory.HasRoom(fs.dirFS(), &fs.root)
	if err != nil {
		return err
	}
	if !room {
		return fmt.Errorf("root directory: %w", DirFullErr)
	}

	ino, err := fs.allocIno()
	if err != nil {
		return err
	}

	inode := Inode{Ino: ino, FileType: FileTypeRegular}
	if err := fs.inodes.Put(&inode); err != nil {
		return err
	}

	if _, err := directory.CreateEntry(fs.dirFS(), &fs.root, &DirEntry{
		Ino:     ino,
		NameLen: uint8(len(name)),
		Name:    name,
	}); err != nil {
		return err
	}

	*out = inode
	return nil
}

func (fs *FileSystem) validateName(name string) error {
	if len(name) < 1 {
		return EmptyNameErr
	}
	if limit := fs.geometry.MaxNameLen(); len(name) > limit {
		return fmt.Errorf(
			"`%d` bytes; limit is `%d`: %w",
			len(name),
			limit,
			NameTooLongErr,
		)
	}
	return nil
}

func (fs *FileSystem) handle(fd FD) (*file.Handle, error) {
	if err := fs.requireMounted(); err != nil {
		return nil, err
	}
	return fs.files.Get(fd)
}

// Read fills `p` from the file's cursor, advancing it by `len(p)`. Reads that
// would pass the end of the file fail without reading anything.
func (fs *FileSystem) Read(fd FD, p []byte) (int, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	h, err := fs.handle(fd)
	if err != nil {
		return 0, fmt.Errorf("reading: %w", err)
	}
	return file.Read(fs.dirFS(), h, p)
}

// Write writes `p` at the file's cursor, advancing it by `len(p)`. Writes
// that would grow the file beyond the geometry's limit fail without writing
// anything.
func (fs *FileSystem) Write(fd FD, p []byte) (int, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	h, err := fs.handle(fd)
	if err != nil {
		return 0, fmt.Errorf("writing: %w", err)
	}
	return file.Write(fs.dirFS(), h, p)
}

// Seek moves the file's cursor; `whence` is one of `io.SeekStart`,
// `io.SeekCurrent` or `io.SeekEnd`. The target is the reference point plus
// `offset` as with `io.Seeker`, so `io.SeekEnd` needs a zero or negative
// offset. The new cursor is returned.
func (fs *FileSystem) Seek(fd FD, offset Byte, whence int) (Byte, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	h, err := fs.handle(fd)
	if err != nil {
		return 0, fmt.Errorf("seeking: %w", err)
	}
	return file.Seek(fs.dirFS(), h, offset, whence)
}

func (fs *FileSystem) Close(fd FD) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := fs.requireMounted(); err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	return fs.files.Close(fd)
}

// List describes every entry in the root directory, including its entry for
// itself.
func (fs *FileSystem) List() ([]FileInfo, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := fs.requireMounted(); err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	return directory.List(fs.dirFS(), InoRoot)
}

// Stat describes the root directory entry `name`.
func (fs *FileSystem) Stat(name string) (FileInfo, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := fs.requireMounted(); err != nil {
		return FileInfo{}, fmt.Errorf("stat `%s`: %w", name, err)
	}

	var info FileInfo
	if err := directory.Lookup(fs.dirFS(), InoRoot, name, &info); err != nil {
		return FileInfo{}, fmt.Errorf("stat `%s`: %w", name, err)
	}
	return info, nil
}

// Mkdir always fails; the root is the only directory.
func (fs *FileSystem) Mkdir(name string) error {
	return fmt.Errorf("mkdir `%s`: %w", name, DirsUnsupportedErr)
}

// Rm always fails; space is never reclaimed.
func (fs *FileSystem) Rm(name string) error {
	return fmt.Errorf("rm `%s`: %w", name, RemoveUnsupportedErr)
}
