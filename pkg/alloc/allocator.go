// Package alloc hands out data blocks and inodes. Allocation is monotonic:
// nothing is ever freed.
package alloc

import . "github.com/weberc2/sfs/pkg/types"

var (
	OutOfBlocksErr = NewError(ResourceExhaustedErr, "out of data blocks")
	OutOfInodesErr = NewError(ResourceExhaustedErr, "out of inodes")
)
