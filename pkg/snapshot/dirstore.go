package snapshot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirStore keeps each snapshot as a file in a local directory.
type DirStore struct {
	Dir string
}

func (ds *DirStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("snapshot `%s`: %w", name, InvalidNameErr)
	}
	return filepath.Join(ds.Dir, name), nil
}

func (ds *DirStore) Put(name string, data io.ReadSeeker) error {
	path, err := ds.path(name)
	if err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}
	if err := os.MkdirAll(ds.Dir, 0755); err != nil {
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}

	// write to a temporary file so readers never see a partial image
	tmp, err := ioutil.TempFile(ds.Dir, ".tmp-"+name+"-")
	if err != nil {
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("putting snapshot `%s`: %w", name, err)
	}
	return nil
}

func (ds *DirStore) Get(name string) (io.ReadCloser, error) {
	path, err := ds.path(name)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundErr{Name: name}
		}
		return nil, fmt.Errorf("getting snapshot `%s`: %w", name, err)
	}
	return f, nil
}

func (ds *DirStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(ds.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing snapshots in `%s`: %w", ds.Dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (ds *DirStore) Delete(name string) error {
	path, err := ds.path(name)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundErr{Name: name}
		}
		return fmt.Errorf("deleting snapshot `%s`: %w", name, err)
	}
	return nil
}
