package sfs

import (
	"github.com/weberc2/sfs/pkg/alloc"
	"github.com/weberc2/sfs/pkg/directory"
	"github.com/weberc2/sfs/pkg/disk"
	"github.com/weberc2/sfs/pkg/encode"
	"github.com/weberc2/sfs/pkg/file"
	"github.com/weberc2/sfs/pkg/inode/store"
	. "github.com/weberc2/sfs/pkg/types"
)

type BadMagicErr = encode.BadMagicErr

var (
	NotMountedErr       = NewError(InvalidArgumentErr, "file system not mounted")
	GeometryMismatchErr = NewError(
		CorruptionErr,
		"superblock doesn't match the configured geometry",
	)
	CorruptRootErr = NewError(CorruptionErr, "root inode is not a directory")
	NameTooLongErr = NewError(InvalidArgumentErr, "file name too long")
	EmptyNameErr   = NewError(InvalidArgumentErr, "empty file name")
	ExistsErr      = NewError(InvalidArgumentErr, "file exists")
	IsDirErr       = NewError(InvalidArgumentErr, "is a directory")
	VolumeSizeErr  = NewError(
		InvalidArgumentErr,
		"volume size doesn't match geometry",
	)
	DirsUnsupportedErr = NewError(
		UnsupportedErr,
		"directories other than the root are not supported",
	)
	RemoveUnsupportedErr = NewError(
		UnsupportedErr,
		"removing files is not supported",
	)

	FileNotFoundErr     = directory.EntryNotFoundErr
	DirFullErr          = directory.DirFullErr
	TooManyOpenFilesErr = file.TooManyOpenFilesErr
	BadDescriptorErr    = file.BadDescriptorErr
	FileTooLargeErr     = file.FileTooLargeErr
	ReadTooLongErr      = file.ReadTooLongErr
	SeekOutOfRangeErr   = file.SeekOutOfRangeErr
	BadWhenceErr        = file.BadWhenceErr
	OutOfBlocksErr      = alloc.OutOfBlocksErr
	OutOfInodesErr      = alloc.OutOfInodesErr
	OutOfBoundsErr      = disk.OutOfBoundsErr
	InodeOutOfRangeErr  = store.InodeOutOfRangeErr
	CorruptInodeErr     = store.CorruptInodeErr
)
