package snapshot

import (
	"bytes"
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"sync"
)

// MemStore keeps snapshots in memory.
type MemStore struct {
	mutex   sync.Mutex
	objects map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{objects: map[string][]byte{}}
}

func (ms *MemStore) Put(name string, data io.ReadSeeker) error {
	var b bytes.Buffer
	if _, err := io.Copy(&b, data); err != nil {
		return err
	}
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.objects[name] = b.Bytes()
	return nil
}

func (ms *MemStore) Get(name string) (io.ReadCloser, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	data, found := ms.objects[name]
	if !found {
		return nil, &NotFoundErr{Name: name}
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

func (ms *MemStore) List(prefix string) ([]string, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	var out []string
	for name := range ms.objects {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (ms *MemStore) Delete(name string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	if _, found := ms.objects[name]; !found {
		return &NotFoundErr{Name: name}
	}
	delete(ms.objects, name)
	return nil
}
