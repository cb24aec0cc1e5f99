package ecs

import "github.com/kamstrup/intmap"

// allocator hands out and recycles entity indices. Entity lifecycle
// policy itself lives outside the query layer; Registry keeps this
// minimal allocator only so there is something for views to iterate
// over.
//
// Freed indices are recycled from a free list, and each index carries
// a generation counter bumped on every destroy so a stale handle from
// a destroyed entity never aliases its replacement.
type allocator struct {
	generations *intmap.Map[uint32, uint32]
	free        []uint32
	next        uint32
}

func newAllocator() *allocator {
	return &allocator{
		generations: intmap.New[uint32, uint32](256),
		next:        0,
	}
}

// create allocates a fresh or recycled entity handle.
func (a *allocator) create() Entity {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = a.next
		a.next++
	}

	gen, ok := a.generations.Get(index)
	if !ok {
		gen = 1
		a.generations.Put(index, gen)
	}
	return NewEntity(index, gen)
}

// alive reports whether e's generation matches the index's current one.
func (a *allocator) alive(e Entity) bool {
	gen, ok := a.generations.Get(e.Index())
	return ok && gen == e.Generation()
}

// destroy retires e's index, bumping its generation so stale handles
// referring to the old occupant never compare alive again.
func (a *allocator) destroy(e Entity) {
	if !a.alive(e) {
		return
	}
	index := e.Index()
	next := e.Generation() + 1
	if next == 0 {
		// generation wrapped; skip 0 since NullEntity reserves it
		next = 1
	}
	a.generations.Put(index, next)
	a.free = append(a.free, index)
}
