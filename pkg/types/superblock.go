package types

// SuperblockMagic identifies an SFS volume.
const SuperblockMagic uint16 = 466

// Superblock is the file system metadata stored in block 0.
type Superblock struct {
	InodeBlocks uint8
	DataBlocks  uint8
	UsedInodes  uint8
	UsedData    uint8
}
