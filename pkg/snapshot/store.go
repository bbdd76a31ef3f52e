// Package snapshot stores raw file system images so a volume can be dumped
// and later mounted from a saved image.
package snapshot

import (
	"fmt"
	"io"

	"github.com/weberc2/sfs/pkg/types"
)

// Store holds named snapshot images.
type Store interface {
	Put(name string, data io.ReadSeeker) error
	Get(name string) (io.ReadCloser, error)
	List(prefix string) ([]string, error)
	Delete(name string) error
}

var (
	_ Store = (*MemStore)(nil)
	_ Store = (*DirStore)(nil)
	_ Store = (*S3Store)(nil)
	_ Store = (*PGStore)(nil)
	_ Store = (*GzipStore)(nil)
)

type NotFoundErr struct {
	Name string
}

func (err *NotFoundErr) Error() string {
	return fmt.Sprintf("snapshot not found: %s", err.Name)
}

func (err *NotFoundErr) Unwrap() error { return types.NotFoundErr }

var (
	ChecksumErr = types.NewError(
		types.CorruptionErr,
		"snapshot checksum mismatch",
	)
	InvalidNameErr = types.NewError(
		types.InvalidArgumentErr,
		"invalid snapshot name",
	)
)
