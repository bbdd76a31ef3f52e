package store

import (
	. "github.com/weberc2/sfs/pkg/types"
)

// Cache is a fixed-capacity LRU cache of inodes. Inodes are copied in and
// out so callers never share block lists with the cache.
type Cache struct {
	head      *entry
	tail      *entry
	lookup    map[Ino]*entry
	allocator allocator
}

func NewCache(capacity int) *Cache {
	return &Cache{
		lookup:    make(map[Ino]*entry),
		allocator: newAllocator(capacity),
	}
}

func (c *Cache) Get(ino Ino, out *Inode) bool {
	e, exists := c.lookup[ino]
	if !exists {
		return false
	}

	c.moveFront(e)
	*out = e.value.Clone()
	return true
}

func (c *Cache) Remove(ino Ino, removed *Inode) bool {
	e := c.lookup[ino]
	if e == nil {
		return false
	}

	c.unlink(e)
	delete(c.lookup, ino)
	*removed = e.value
	c.allocator.release(e)
	return true
}

// Push inserts or refreshes `inode`. If the cache was full, the least
// recently used inode is written to `evicted` and `evict` is true.
func (c *Cache) Push(inode *Inode, evicted *Inode) (evict bool) {
	if e, exists := c.lookup[inode.Ino]; exists {
		e.value = inode.Clone()
		c.moveFront(e)
		return false
	}

	e := c.allocator.alloc()
	if e == nil {
		// zero-capacity caches hold nothing
		if c.tail == nil {
			return false
		}
		e = c.tail
		c.unlink(e)
		delete(c.lookup, e.value.Ino)
		*evicted = e.value
		evict = true
	}

	e.value = inode.Clone()
	c.lookup[inode.Ino] = e
	c.pushFront(e)
	return
}

// Len is the number of cached inodes.
func (c *Cache) Len() int { return len(c.lookup) }

func (c *Cache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}

	e.prev = nil
	e.next = nil
}

func (c *Cache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) moveFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

type entry struct {
	prev  *entry
	next  *entry
	value Inode
}
