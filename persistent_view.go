package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// PersistentView is a view whose matching entity set is precomputed as
// a dedicated sparse set `I` and kept coherent with every relevant
// pool mutation. Unlike a multi-component view it does no per-query
// filtering: iteration simply walks `I`.
//
// Signature identity is a sorted-type-list hash over the include and
// exclude lists, so two requests for the same (include, exclude) pair
// in any order resolve to the same view.
type PersistentView struct {
	registry *Registry
	include  []reflect.Type
	exclude  []reflect.Type
	index    *entitySet
}

func sortedTypeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	sort.Strings(names)
	return names
}

func signatureKey(include, exclude []reflect.Type) uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a 64-bit offset basis
	const prime uint64 = 1099511628211

	mix := func(s string) {
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= prime
		}
		h ^= 0xff // separator between fields
		h *= prime
	}
	for _, n := range sortedTypeNames(include) {
		mix(n)
	}
	h ^= 0xaa // separator between include/exclude halves
	h *= prime
	for _, n := range sortedTypeNames(exclude) {
		mix(n)
	}
	return h
}

// persistentViewFor returns the registry's persistent view for the
// given (include, exclude) signature, creating and wiring its
// subscriptions on first request. Subsequent requests for the exact
// same signature return the same *PersistentView.
func persistentViewFor(r *Registry, include, exclude []reflect.Type) *PersistentView {
	key := signatureKey(include, exclude)
	if existing, ok := r.persisted[key]; ok {
		return existing
	}

	pv := &PersistentView{
		registry: r,
		include:  include,
		exclude:  exclude,
		index:    newEntitySet(),
	}
	r.persisted[key] = pv

	for _, t := range include {
		id := r.types.idFor(t)
		r.subscribe(id, subscription{view: pv, include: true})
	}
	for _, t := range exclude {
		id := r.types.idFor(t)
		r.subscribe(id, subscription{view: pv, include: false})
	}

	// Backfill: a freshly constructed view must reflect entities that
	// already match, not just future mutations.
	if len(include) > 0 {
		driver := r.pools[include[0]]
		if driver != nil {
			for i := 0; i < driver.len(); i++ {
				e := driver.entityAt(i)
				if pv.matches(e) {
					pv.index.Insert(e)
				}
			}
		}
	}

	return pv
}

// matches reports whether e currently satisfies every include type and
// no exclude type.
func (pv *PersistentView) matches(e Entity) bool {
	for _, t := range pv.include {
		if !pv.registry.poolHasType(t, e) {
			return false
		}
	}
	for _, t := range pv.exclude {
		if pv.registry.poolHasType(t, e) {
			return false
		}
	}
	return true
}

// Contains reports membership in the precomputed index.
func (pv *PersistentView) Contains(e Entity) bool {
	return pv.index.Has(e)
}

// Size returns the exact number of matching entities.
func (pv *PersistentView) Size() int {
	return pv.index.Len()
}

// Empty reports whether Size() == 0.
func (pv *PersistentView) Empty() bool {
	return pv.index.Len() == 0
}

// Data exposes the index's dense entity array in physical (append)
// order, mirroring Pool.Data(). This order is not semantically
// meaningful beyond what maintenance events and Sort produce;
// EachPersistentViewN iterates the presentation (reversed) order
// instead.
func (pv *PersistentView) Data() []Entity {
	return pv.index.Data()
}

// PersistentView1 returns (creating on first call) the persistent view
// over the single include type T1.
func PersistentView1[T1 any](r *Registry, exclude ...reflect.Type) *PersistentView {
	return persistentViewFor(r, []reflect.Type{typeOf[T1]()}, exclude)
}

// PersistentView2 returns the persistent view over include types T1, T2.
func PersistentView2[T1, T2 any](r *Registry, exclude ...reflect.Type) *PersistentView {
	return persistentViewFor(r, []reflect.Type{typeOf[T1](), typeOf[T2]()}, exclude)
}

// PersistentView3 returns the persistent view over include types T1, T2, T3.
func PersistentView3[T1, T2, T3 any](r *Registry, exclude ...reflect.Type) *PersistentView {
	return persistentViewFor(r, []reflect.Type{typeOf[T1](), typeOf[T2](), typeOf[T3]()}, exclude)
}

// Exclude names a component type for a persistent view's exclude list,
// e.g. PersistentView1[Position](r, Exclude[Frozen]()).
func Exclude[T any]() reflect.Type {
	return typeOf[T]()
}

// PersistentViewGet returns a reference to e's U component via the
// view's backing registry. Requires pv.Contains(e).
func PersistentViewGet[U any](pv *PersistentView, e Entity) *U {
	return Get[U](pv.registry, e)
}

// EachPersistentView1 invokes f once per entity in the view, in
// presentation order (the reverse of the index's physical/append
// order).
func EachPersistentView1[T1 any](pv *PersistentView, f func(e Entity, c1 *T1)) {
	pool1 := poolFor[T1](pv.registry)
	for i := len(pv.index.dense) - 1; i >= 0; i-- {
		e := pv.index.dense[i]
		f(e, pool1.Get(e))
	}
}

// EachPersistentView2 invokes f once per entity in the view, in
// presentation order.
func EachPersistentView2[T1, T2 any](pv *PersistentView, f func(e Entity, c1 *T1, c2 *T2)) {
	pool1 := poolFor[T1](pv.registry)
	pool2 := poolFor[T2](pv.registry)
	for i := len(pv.index.dense) - 1; i >= 0; i-- {
		e := pv.index.dense[i]
		f(e, pool1.Get(e), pool2.Get(e))
	}
}

// EachPersistentView3 invokes f once per entity in the view, in
// presentation order.
func EachPersistentView3[T1, T2, T3 any](pv *PersistentView, f func(e Entity, c1 *T1, c2 *T2, c3 *T3)) {
	pool1 := poolFor[T1](pv.registry)
	pool2 := poolFor[T2](pv.registry)
	pool3 := poolFor[T3](pv.registry)
	for i := len(pv.index.dense) - 1; i >= 0; i-- {
		e := pv.index.dense[i]
		f(e, pool1.Get(e), pool2.Get(e), pool3.Get(e))
	}
}

// PersistentViewComponents2 bundles the pair of references
// PersistentViewAll2 yields alongside each entity.
type PersistentViewComponents2[T1, T2 any] struct {
	C1 *T1
	C2 *T2
}

// PersistentViewComponents3 bundles the triple of references
// PersistentViewAll3 yields alongside each entity.
type PersistentViewComponents3[T1, T2, T3 any] struct {
	C1 *T1
	C2 *T2
	C3 *T3
}

// PersistentViewAll1 returns a range-over-func iterator over the view's
// entities and their T1 component, in presentation order — the
// idiomatic counterpart to EachPersistentView1.
func PersistentViewAll1[T1 any](pv *PersistentView) iter.Seq2[Entity, *T1] {
	pool1 := poolFor[T1](pv.registry)
	return func(yield func(Entity, *T1) bool) {
		for i := len(pv.index.dense) - 1; i >= 0; i-- {
			e := pv.index.dense[i]
			if !yield(e, pool1.Get(e)) {
				return
			}
		}
	}
}

// PersistentViewAll2 returns a range-over-func iterator over the view's
// entities and their components, in presentation order.
func PersistentViewAll2[T1, T2 any](pv *PersistentView) iter.Seq2[Entity, PersistentViewComponents2[T1, T2]] {
	pool1 := poolFor[T1](pv.registry)
	pool2 := poolFor[T2](pv.registry)
	return func(yield func(Entity, PersistentViewComponents2[T1, T2]) bool) {
		for i := len(pv.index.dense) - 1; i >= 0; i-- {
			e := pv.index.dense[i]
			c := PersistentViewComponents2[T1, T2]{C1: pool1.Get(e), C2: pool2.Get(e)}
			if !yield(e, c) {
				return
			}
		}
	}
}

// PersistentViewAll3 returns a range-over-func iterator over the view's
// entities and their components, in presentation order.
func PersistentViewAll3[T1, T2, T3 any](pv *PersistentView) iter.Seq2[Entity, PersistentViewComponents3[T1, T2, T3]] {
	pool1 := poolFor[T1](pv.registry)
	pool2 := poolFor[T2](pv.registry)
	pool3 := poolFor[T3](pv.registry)
	return func(yield func(Entity, PersistentViewComponents3[T1, T2, T3]) bool) {
		for i := len(pv.index.dense) - 1; i >= 0; i-- {
			e := pv.index.dense[i]
			c := PersistentViewComponents3[T1, T2, T3]{C1: pool1.Get(e), C2: pool2.Get(e), C3: pool3.Get(e)}
			if !yield(e, c) {
				return
			}
		}
	}
}

// SortPersistentView reorders the view's index to match the current
// physical order of pool(U).Data(). Precondition: U is one of the
// view's include types, so every entity in the index is necessarily
// also in pool(U) (true by construction).
func SortPersistentView[U any](pv *PersistentView) {
	pool := poolFor[U](pv.registry)
	order := pool.Data()

	newDense := make([]Entity, 0, pv.index.Len())
	for _, e := range order {
		if pv.index.Has(e) {
			newDense = append(newDense, e)
		}
	}

	for i, e := range newDense {
		pv.index.sparse[e.Index()] = i
	}
	pv.index.dense = newDense
}
