package world

import "sync/atomic"

// ObjectID is an opaque handle, globally unique within a server process.
// Allocation is monotonic; ids are never reused until the process restarts.
type ObjectID uint32

// IDAllocator hands out strictly increasing ObjectIDs. In production the
// starting point is seeded from the persistence port's
// AllocateNewObjectID so a restarted server never collides with ids
// already committed to storage.
type IDAllocator struct {
	next atomic.Uint32
}

// NewIDAllocator starts the allocator so the first Next() call returns start.
func NewIDAllocator(start uint32) *IDAllocator {
	a := &IDAllocator{}
	if start == 0 {
		start = 1
	}
	a.next.Store(start - 1)
	return a
}

// Next returns the next strictly increasing id. Safe for concurrent use,
// though in this server only the router and cmd/realmd's monster spawner
// call it.
func (a *IDAllocator) Next() ObjectID {
	return ObjectID(a.next.Add(1))
}
