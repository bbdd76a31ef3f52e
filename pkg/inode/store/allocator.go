package store

// allocator implements a simple allocation pool with a fixed capacity.
// Released entries are reused before the pool grows.
type allocator struct {
	length int
	pool   []entry
	free   []*entry
}

func newAllocator(capacity int) allocator {
	return allocator{length: 0, pool: make([]entry, capacity)}
}

func (a *allocator) alloc() *entry {
	if n := len(a.free); n > 0 {
		ret := a.free[n-1]
		a.free = a.free[:n-1]
		return ret
	}
	if a.length >= len(a.pool) {
		return nil
	}
	ret := &a.pool[a.length]
	a.length++
	return ret
}

func (a *allocator) release(e *entry) {
	*e = entry{}
	a.free = append(a.free, e)
}
