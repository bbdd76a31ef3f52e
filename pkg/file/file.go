package file

import (
	"fmt"
	"io"

	"github.com/weberc2/sfs/pkg/alloc"
	"github.com/weberc2/sfs/pkg/directory"
	"github.com/weberc2/sfs/pkg/math"
	. "github.com/weberc2/sfs/pkg/types"
)

type FileSystem = directory.FileSystem

// Write writes `p` at the handle's cursor and advances it. Either all of `p`
// is written or, for oversized writes and exhausted data regions, none of it.
func Write(fs *FileSystem, h *Handle, p []byte) (int, error) {
	if err := refresh(fs, h); err != nil {
		return 0, fmt.Errorf("writing to file `%d`: %w", h.inode.Ino, err)
	}

	end := h.cursor + Byte(len(p))
	if end > fs.Geometry.MaxFileSize() {
		return 0, fmt.Errorf(
			"writing `%d` bytes to file `%d` at offset `%d`: limit is "+
				"`%d` bytes: %w",
			len(p),
			h.inode.Ino,
			h.cursor,
			fs.Geometry.MaxFileSize(),
			FileTooLargeErr,
		)
	}

	if err := grow(fs, &h.inode, end); err != nil {
		return 0, fmt.Errorf(
			"writing `%d` bytes to file `%d`: %w",
			len(p),
			h.inode.Ino,
			err,
		)
	}

	var written int
	for written < len(p) {
		block, offset := position(fs, &h.inode, h.cursor)
		n := int(math.Min(fs.Geometry.BlockSize-offset, Byte(len(p)-written)))
		if err := fs.Disk.Write(block, offset, p[written:written+n]); err != nil {
			return written, fmt.Errorf(
				"writing to file `%d` at offset `%d`: %w",
				h.inode.Ino,
				h.cursor,
				err,
			)
		}
		written += n
		h.cursor += Byte(n)
	}

	h.inode.Size = math.Max(h.inode.Size, h.cursor)
	if err := fs.InodeStore.Put(&h.inode); err != nil {
		return written, fmt.Errorf("writing to file `%d`: %w", h.inode.Ino, err)
	}
	return written, nil
}

// grow allocates the data blocks `inode` needs to hold `size` bytes. Every
// needed block is accounted for before any is allocated.
func grow(fs *FileSystem, inode *Inode, size Byte) error {
	needed := int(math.DivRoundUp(size, fs.Geometry.BlockSize)) -
		len(inode.Blocks)
	if needed <= 0 {
		return nil
	}
	if free := fs.BlockAllocator.FreeBlocks(); free < needed {
		return fmt.Errorf(
			"need `%d` blocks; `%d` free: %w",
			needed,
			free,
			alloc.OutOfBlocksErr,
		)
	}

	for i := 0; i < needed; i++ {
		block, err := fs.BlockAllocator.AllocBlock()
		if err != nil {
			return fmt.Errorf("growing file `%d`: %w", inode.Ino, err)
		}
		if err := fs.Disk.ZeroBlock(block); err != nil {
			return fmt.Errorf("growing file `%d`: %w", inode.Ino, err)
		}
		inode.Blocks = append(inode.Blocks, block)
	}

	if err := fs.InodeStore.Put(inode); err != nil {
		return fmt.Errorf("growing file `%d`: %w", inode.Ino, err)
	}
	return nil
}

// Read fills `p` from the handle's cursor and advances it. Reading past the
// end of the file is an error and reads nothing.
func Read(fs *FileSystem, h *Handle, p []byte) (int, error) {
	if err := refresh(fs, h); err != nil {
		return 0, fmt.Errorf("reading from file `%d`: %w", h.inode.Ino, err)
	}

	if h.cursor+Byte(len(p)) > h.inode.Size {
		return 0, fmt.Errorf(
			"reading `%d` bytes from file `%d` at offset `%d`: size is "+
				"`%d`: %w",
			len(p),
			h.inode.Ino,
			h.cursor,
			h.inode.Size,
			ReadTooLongErr,
		)
	}

	var read int
	for read < len(p) {
		block, offset := position(fs, &h.inode, h.cursor)
		n := int(math.Min(fs.Geometry.BlockSize-offset, Byte(len(p)-read)))
		if err := fs.Disk.Read(block, offset, p[read:read+n]); err != nil {
			return read, fmt.Errorf(
				"reading from file `%d` at offset `%d`: %w",
				h.inode.Ino,
				h.cursor,
				err,
			)
		}
		read += n
		h.cursor += Byte(n)
	}
	return read, nil
}

// Seek moves the cursor relative to the start of the file, the cursor, or the
// end of the file, per `io.Seek*`. As with `io.Seeker`, the target is always
// the reference point plus `offset`, so seeking back from the end takes a
// negative offset: `Seek(-3, io.SeekEnd)` on a 10-byte file lands on 7, and
// `Seek(3, io.SeekEnd)` is out of range. The target must lie within the file.
func Seek(fs *FileSystem, h *Handle, offset Byte, whence int) (Byte, error) {
	if err := refresh(fs, h); err != nil {
		return h.cursor, fmt.Errorf("seeking file `%d`: %w", h.inode.Ino, err)
	}

	var target Byte
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = h.cursor + offset
	case io.SeekEnd:
		target = h.inode.Size + offset
	default:
		return h.cursor, fmt.Errorf(
			"seeking file `%d`: whence `%d`: %w",
			h.inode.Ino,
			whence,
			BadWhenceErr,
		)
	}

	if target < 0 || target > h.inode.Size {
		return h.cursor, fmt.Errorf(
			"seeking file `%d` to `%d`: size is `%d`: %w",
			h.inode.Ino,
			target,
			h.inode.Size,
			SeekOutOfRangeErr,
		)
	}
	h.cursor = target
	return target, nil
}

// refresh reloads the handle's inode so handles sharing a file see each
// other's writes.
func refresh(fs *FileSystem, h *Handle) error {
	return fs.InodeStore.Get(h.inode.Ino, &h.inode)
}

// position maps a byte offset within a file onto a block and an offset within
// that block. The offset must be backed by an allocated block.
func position(fs *FileSystem, inode *Inode, offset Byte) (Block, Byte) {
	return inode.Blocks[offset/fs.Geometry.BlockSize],
		offset % fs.Geometry.BlockSize
}

var (
	FileTooLargeErr   = NewError(InvalidArgumentErr, "file too large")
	ReadTooLongErr    = NewError(InvalidArgumentErr, "read past end of file")
	SeekOutOfRangeErr = NewError(InvalidArgumentErr, "seek out of range")
	BadWhenceErr      = NewError(InvalidArgumentErr, "bad whence")
)
