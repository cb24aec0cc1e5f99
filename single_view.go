package ecs

import "iter"

// View1 iterates a single pool's dense *entity* array — the same pool a
// RawView walks, but yielding entities instead of components. Use Get
// to fetch the component for a yielded entity.
type View1[T any] struct {
	pool *Pool[T]
}

// SingleView creates a View1 over T's pool, creating the pool on first use.
func SingleView[T any](r *Registry) View1[T] {
	return View1[T]{pool: poolFor[T](r)}
}

// Len returns the number of entities in the view.
func (v View1[T]) Len() int { return v.pool.Len() }

// Empty reports whether the view has no entities.
func (v View1[T]) Empty() bool { return v.pool.Empty() }

// Contains reports pool membership.
func (v View1[T]) Contains(e Entity) bool { return v.pool.Has(e) }

// Get returns a reference to e's component. Requires Contains(e).
func (v View1[T]) Get(e Entity) *T { return v.pool.Get(e) }

// At returns the entity at presentation index i (0 = most recently
// assigned survivor).
func (v View1[T]) At(i int) Entity {
	e, _ := v.pool.At(i)
	return e
}

// Data exposes the pool's entity array in physical order.
func (v View1[T]) Data() []Entity { return v.pool.Data() }

// Each invokes f once per entity, in presentation order.
func (v View1[T]) Each(f func(e Entity)) {
	v.pool.EachEntity(f)
}

// All returns a range-over-func iterator over (entity, component)
// pairs, in presentation order.
func (v View1[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := v.pool.Len() - 1; i >= 0; i-- {
			if !yield(v.pool.set.dense[i], &v.pool.components[i]) {
				return
			}
		}
	}
}

// View1Iterator is the result of Find: a cursor over a single-component
// view's presentation order, starting at a located entity and able to
// sweep forward to End.
type View1Iterator[T any] struct {
	view View1[T]
	pos  int // presentation index; pos == view.Len() means End()
}

// Find positions an iterator at e, or at End() if the view doesn't
// contain e.
func (v View1[T]) Find(e Entity) View1Iterator[T] {
	if !v.pool.Has(e) {
		return View1Iterator[T]{view: v, pos: v.Len()}
	}
	physPos := v.pool.set.sparse[e.Index()]
	return View1Iterator[T]{view: v, pos: physicalIndex(physPos, v.Len())}
}

// End reports whether the iterator has advanced past the last entity.
func (it View1Iterator[T]) End() bool {
	return it.pos < 0 || it.pos >= it.view.Len()
}

// Entity returns the entity the iterator currently refers to. Invalid
// when End() is true.
func (it View1Iterator[T]) Entity() Entity {
	return it.view.At(it.pos)
}

// Next advances the iterator by one presentation position.
func (it View1Iterator[T]) Next() View1Iterator[T] {
	return View1Iterator[T]{view: it.view, pos: it.pos + 1}
}
