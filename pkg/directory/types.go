package directory

import (
	. "github.com/weberc2/sfs/pkg/types"
)

var (
	EntryNotFoundErr = NewError(NotFoundErr, "directory entry not found")
	DirFullErr       = NewError(ResourceExhaustedErr, "directory is full")
	NotADirErr       = NewError(InvalidArgumentErr, "not a directory")
)
