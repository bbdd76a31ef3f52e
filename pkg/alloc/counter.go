package alloc

import "sync"

// Counter is a monotonic allocator: it hands out `used`, `used+1`, ... until
// it reaches its capacity. Nothing is ever reclaimed.
type Counter struct {
	mutex    sync.Mutex
	used     uint64
	capacity uint64
}

func NewCounter(used, capacity uint64) *Counter {
	return &Counter{used: used, capacity: capacity}
}

func (c *Counter) Alloc() (uint64, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.used >= c.capacity {
		return 0, false
	}
	handle := c.used
	c.used++
	return handle, true
}

// Used is the number of handles allocated so far, which is also the next
// handle.
func (c *Counter) Used() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.used
}

func (c *Counter) Capacity() uint64 { return c.capacity }

// Free is the number of handles left to allocate.
func (c *Counter) Free() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.capacity - c.used
}
