package io

import (
	"fmt"
	"os"

	. "github.com/weberc2/sfs/pkg/types"
)

// FileVolume is a volume backed by a regular file or a block device.
type FileVolume struct {
	file *os.File
	size Byte
}

// OpenFileVolume opens (creating if necessary) the file at `path` as a volume
// of `size` bytes. Files shorter than `size` are extended with zeroes.
func OpenFileVolume(path string, size Byte) (*FileVolume, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening volume `%s`: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening volume `%s`: %w", path, err)
	}

	if info.Mode().IsRegular() && Byte(info.Size()) < size {
		if err := file.Truncate(int64(size)); err != nil {
			file.Close()
			return nil, fmt.Errorf(
				"opening volume `%s`: extending to `%d` bytes: %w",
				path,
				size,
				err,
			)
		}
	}

	return &FileVolume{file: file, size: size}, nil
}

func (volume *FileVolume) ReadAt(offset Byte, buffer []byte) error {
	if err := checkBounds(volume.size, offset, len(buffer)); err != nil {
		return fmt.Errorf("reading file `%s`: %w", volume.file.Name(), err)
	}
	if _, err := volume.file.ReadAt(buffer, int64(offset)); err != nil {
		return fmt.Errorf(
			"reading file `%s` at offset `%d`: %w",
			volume.file.Name(),
			offset,
			err,
		)
	}
	return nil
}

func (volume *FileVolume) WriteAt(offset Byte, buffer []byte) error {
	if err := checkBounds(volume.size, offset, len(buffer)); err != nil {
		return fmt.Errorf("writing file `%s`: %w", volume.file.Name(), err)
	}
	if _, err := volume.file.WriteAt(buffer, int64(offset)); err != nil {
		return fmt.Errorf(
			"writing file `%s` at offset `%d`: %w",
			volume.file.Name(),
			offset,
			err,
		)
	}
	return nil
}

func (volume *FileVolume) Size() Byte { return volume.size }

func (volume *FileVolume) Sync() error { return volume.file.Sync() }

func (volume *FileVolume) Close() error { return volume.file.Close() }
