package store

import (
	"fmt"

	. "github.com/weberc2/sfs/pkg/types"
)

var _ InodeStore = (*CachingInodeStore)(nil)

// CachingInodeStore keeps recently used inodes in front of a backend store.
// Writes go through to the backend before the cache sees them, so evicted
// inodes are always already persisted.
type CachingInodeStore struct {
	backend  InodeStore
	capacity int
	cache    *Cache
}

func NewCachingInodeStore(backend InodeStore, capacity int) *CachingInodeStore {
	return &CachingInodeStore{
		backend:  backend,
		capacity: capacity,
		cache:    NewCache(capacity),
	}
}

func (cis *CachingInodeStore) Put(inode *Inode) error {
	if err := cis.backend.Put(inode); err != nil {
		// the backend may hold a partial write; don't trust the cached copy
		var stale Inode
		cis.cache.Remove(inode.Ino, &stale)
		return fmt.Errorf("caching inode store: put `%d`: %w", inode.Ino, err)
	}
	cis.remember(inode)
	return nil
}

func (cis *CachingInodeStore) Get(ino Ino, output *Inode) error {
	if cis.cache.Get(ino, output) {
		return nil
	}
	if err := cis.backend.Get(ino, output); err != nil {
		return fmt.Errorf("caching inode store: get `%d`: %w", ino, err)
	}
	cis.remember(output)
	return nil
}

func (cis *CachingInodeStore) remember(inode *Inode) {
	var evicted Inode
	cis.cache.Push(inode, &evicted)
}

// Invalidate forgets every cached inode. Call it whenever the backend's
// volume changes underneath the store.
func (cis *CachingInodeStore) Invalidate() {
	cis.cache = NewCache(cis.capacity)
}
