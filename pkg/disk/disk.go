package disk

import (
	"fmt"
	stdio "io"

	"github.com/weberc2/sfs/pkg/io"
	. "github.com/weberc2/sfs/pkg/types"
)

// Disk addresses a volume as a sequence of equal-sized blocks.
type Disk struct {
	Volume    io.Volume
	BlockSize Byte
	Blocks    Block
}

func New(volume io.Volume, blockSize Byte, blocks Block) *Disk {
	return &Disk{Volume: volume, BlockSize: blockSize, Blocks: blocks}
}

// NewMemory returns a disk backed by a zeroed in-memory buffer.
func NewMemory(blockSize Byte, blocks Block) *Disk {
	return New(
		io.NewBuffer(make([]byte, Byte(blocks)*blockSize)),
		blockSize,
		blocks,
	)
}

// Size is the size of the disk in bytes.
func (d *Disk) Size() Byte { return Byte(d.Blocks) * d.BlockSize }

// Read fills `p` from `block` starting at `offset` bytes into the block. The
// range must lie within the block.
func (d *Disk) Read(block Block, offset Byte, p []byte) error {
	if err := d.check(block, offset, p); err != nil {
		return fmt.Errorf("reading block `%d`: %w", block, err)
	}
	if err := d.Volume.ReadAt(d.address(block, offset), p); err != nil {
		return fmt.Errorf("reading block `%d`: %w", block, err)
	}
	return nil
}

// Write copies `p` into `block` starting at `offset` bytes into the block. The
// range must lie within the block.
func (d *Disk) Write(block Block, offset Byte, p []byte) error {
	if err := d.check(block, offset, p); err != nil {
		return fmt.Errorf("writing block `%d`: %w", block, err)
	}
	if err := d.Volume.WriteAt(d.address(block, offset), p); err != nil {
		return fmt.Errorf("writing block `%d`: %w", block, err)
	}
	return nil
}

// ZeroBlock clears a single block.
func (d *Disk) ZeroBlock(block Block) error {
	if err := d.Write(block, 0, make([]byte, d.BlockSize)); err != nil {
		return fmt.Errorf("zeroing block: %w", err)
	}
	return nil
}

// Zero clears every block on the disk.
func (d *Disk) Zero() error {
	zeroes := make([]byte, d.BlockSize)
	for block := Block(0); block < d.Blocks; block++ {
		if err := d.Write(block, 0, zeroes); err != nil {
			return fmt.Errorf("zeroing disk: %w", err)
		}
	}
	return nil
}

// Dump writes the raw contents of the disk to `w`, block by block.
func (d *Disk) Dump(w stdio.Writer) error {
	buf := make([]byte, d.BlockSize)
	for block := Block(0); block < d.Blocks; block++ {
		if err := d.Read(block, 0, buf); err != nil {
			return fmt.Errorf("dumping disk: %w", err)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("dumping disk: block `%d`: %w", block, err)
		}
	}
	return nil
}

// Load replaces the contents of the disk with exactly `Size()` bytes from
// `r`. The whole image is read before any block is written, so a short or
// failing reader leaves the disk untouched.
func (d *Disk) Load(r stdio.Reader) error {
	image := make([]byte, d.Size())
	if n, err := stdio.ReadFull(r, image); err != nil {
		if err == stdio.EOF || err == stdio.ErrUnexpectedEOF {
			return fmt.Errorf(
				"loading disk: image is `%d` of `%d` bytes: %w",
				n,
				d.Size(),
				ShortImageErr,
			)
		}
		return fmt.Errorf("loading disk: %w", err)
	}

	for block := Block(0); block < d.Blocks; block++ {
		start := d.address(block, 0)
		if err := d.Write(block, 0, image[start:start+d.BlockSize]); err != nil {
			return fmt.Errorf("loading disk: %w", err)
		}
	}
	return nil
}

func (d *Disk) address(block Block, offset Byte) Byte {
	return Byte(block)*d.BlockSize + offset
}

func (d *Disk) check(block Block, offset Byte, p []byte) error {
	if block >= d.Blocks {
		return fmt.Errorf(
			"block `%d` of `%d`: %w",
			block,
			d.Blocks,
			OutOfBoundsErr,
		)
	}
	if offset < 0 || offset+Byte(len(p)) > d.BlockSize {
		return fmt.Errorf(
			"`%d` bytes at offset `%d` in a `%d` byte block: %w",
			len(p),
			offset,
			d.BlockSize,
			OutOfBoundsErr,
		)
	}
	return nil
}

var (
	OutOfBoundsErr = NewError(InvalidArgumentErr, "block access out of bounds")
	ShortImageErr  = NewError(CorruptionErr, "disk image is too short")
)
