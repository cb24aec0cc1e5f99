package ecs

import "iter"

// RawView iterates a single pool's dense component array directly,
// without entity identities in the loop body — the cheapest of the
// four view kinds when only component values matter.
type RawView[T any] struct {
	pool *Pool[T]
}

// RawViewOf creates a RawView over T's pool, creating the pool on first use.
func RawViewOf[T any](r *Registry) RawView[T] {
	return RawView[T]{pool: poolFor[T](r)}
}

// Len returns the number of components in the view.
func (v RawView[T]) Len() int { return v.pool.Len() }

// Empty reports whether the view has no components.
func (v RawView[T]) Empty() bool { return v.pool.Empty() }

// At returns a reference to the component at presentation index i
// (0 = most recently assigned survivor).
func (v RawView[T]) At(i int) *T {
	_, c := v.pool.At(i)
	return c
}

// Each invokes f once per component, in presentation order. Mutating
// *component through f is supported and observable.
func (v RawView[T]) Each(f func(component *T)) {
	v.pool.Each(f)
}

// Data exposes the pool's parallel entity array, in physical order.
func (v RawView[T]) Data() []Entity { return v.pool.Data() }

// Raw exposes the pool's component array, in physical order.
func (v RawView[T]) Raw() []T { return v.pool.Raw() }

// All returns a range-over-func iterator over the component values, in
// presentation order — the idiomatic counterpart to Each.
func (v RawView[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := v.pool.Len() - 1; i >= 0; i-- {
			if !yield(&v.pool.components[i]) {
				return
			}
		}
	}
}
