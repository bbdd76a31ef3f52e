package snapshot

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/blake2b"
)

// checksumSuffix names the object holding an image's BLAKE2b-256 digest.
const checksumSuffix = ".b2sum"

// Dumper writes a raw image of a file system.
type Dumper interface {
	Dump(w io.Writer) error
}

// Name normalizes a user-supplied snapshot name. Empty names get a random
// one.
func Name(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return uuid.New().String()
}

// Save dumps `fs` into `store` under the normalized form of `name` alongside
// its checksum, and returns the name used.
func Save(store Store, fs Dumper, name string) (string, error) {
	name = Name(name)

	var image bytes.Buffer
	if err := fs.Dump(&image); err != nil {
		return "", fmt.Errorf("saving snapshot `%s`: %w", name, err)
	}

	sum := blake2b.Sum256(image.Bytes())
	if err := store.Put(name, bytes.NewReader(image.Bytes())); err != nil {
		return "", fmt.Errorf("saving snapshot `%s`: %w", name, err)
	}
	if err := store.Put(
		name+checksumSuffix,
		strings.NewReader(hex.EncodeToString(sum[:])),
	); err != nil {
		return "", fmt.Errorf("saving snapshot `%s`: checksum: %w", name, err)
	}
	return name, nil
}

// Load fetches the image `name` from `store` and verifies it against its
// checksum.
func Load(store Store, name string) (io.Reader, error) {
	image, err := readAll(store, name)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot `%s`: %w", name, err)
	}

	wanted, err := readAll(store, name+checksumSuffix)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot `%s`: checksum: %w", name, err)
	}

	sum := blake2b.Sum256(image)
	if found := hex.EncodeToString(sum[:]); found != strings.TrimSpace(
		string(wanted),
	) {
		return nil, fmt.Errorf(
			"loading snapshot `%s`: wanted `%s`; found `%s`: %w",
			name,
			wanted,
			found,
			ChecksumErr,
		)
	}
	return bytes.NewReader(image), nil
}

// Names lists the snapshots in `store` whose names begin with `prefix`,
// omitting checksum objects.
func Names(store Store, prefix string) ([]string, error) {
	all, err := store.List(prefix)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	names := []string{}
	for _, name := range all {
		if !strings.HasSuffix(name, checksumSuffix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Remove deletes a snapshot and its checksum.
func Remove(store Store, name string) error {
	if err := store.Delete(name); err != nil {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	if err := store.Delete(name + checksumSuffix); err != nil {
		return fmt.Errorf("removing snapshot `%s`: checksum: %w", name, err)
	}
	return nil
}

func readAll(store Store, name string) ([]byte, error) {
	body, err := store.Get(name)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ioutil.ReadAll(body)
}
