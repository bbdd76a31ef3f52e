package snapshot

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// gzipSuffix marks compressed images in the underlying store.
const gzipSuffix = ".gz"

// GzipStore compresses snapshot images before handing them to another store.
// Images are kept under `<name>.gz`; checksum sidecars are tiny and are
// stored as-is. Uncompressed images already in the store stay readable, so
// compression can be turned on for an existing store.
type GzipStore struct {
	Store
}

func (gs *GzipStore) Put(name string, data io.ReadSeeker) error {
	if isChecksum(name) {
		return gs.Store.Put(name, data)
	}

	var b bytes.Buffer
	w, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("creating gzip writer: %w", err)
	}
	w.Name = name
	if _, err := io.Copy(w, data); err != nil {
		return fmt.Errorf("compressing snapshot `%s`: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("compressing snapshot `%s`: %w", name, err)
	}
	if err := gs.Store.Put(name+gzipSuffix, bytes.NewReader(b.Bytes())); err != nil {
		return err
	}

	// drop any uncompressed copy so reads can't return a stale image
	if err := gs.Store.Delete(name); err != nil && !isNotFound(err) {
		return fmt.Errorf("replacing uncompressed snapshot `%s`: %w", name, err)
	}
	return nil
}

// gzipReadCloser closes both the decompressor and the underlying object.
type gzipReadCloser struct {
	*gzip.Reader
	body io.ReadCloser
}

func (grc *gzipReadCloser) Close() error {
	if err := grc.Reader.Close(); err != nil {
		grc.body.Close()
		return err
	}
	return grc.body.Close()
}

func (gs *GzipStore) Get(name string) (io.ReadCloser, error) {
	if isChecksum(name) {
		return gs.Store.Get(name)
	}

	body, err := gs.Store.Get(name + gzipSuffix)
	if err != nil {
		if isNotFound(err) {
			return gs.Store.Get(name)
		}
		return nil, fmt.Errorf("getting snapshot `%s`: %w", name, err)
	}
	r, err := gzip.NewReader(body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("decompressing snapshot `%s`: %w", name, err)
	}
	return &gzipReadCloser{Reader: r, body: body}, nil
}

// List reports snapshot names without the compression suffix.
func (gs *GzipStore) List(prefix string) ([]string, error) {
	keys, err := gs.Store.List(prefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(keys))
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSuffix(key, gzipSuffix)
		if _, found := seen[name]; !found {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (gs *GzipStore) Delete(name string) error {
	if isChecksum(name) {
		return gs.Store.Delete(name)
	}

	err := gs.Store.Delete(name + gzipSuffix)
	if err == nil || !isNotFound(err) {
		return err
	}
	return gs.Store.Delete(name)
}

func isChecksum(name string) bool {
	return strings.HasSuffix(name, checksumSuffix)
}

func isNotFound(err error) bool {
	var notFound *NotFoundErr
	return errors.As(err, &notFound)
}
