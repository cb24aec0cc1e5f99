package ecs

import "sort"

// erasedPool is the type-agnostic view of a Pool[T] the registry and
// the runtime/persistent views need: membership, erase-on-destroy, and
// enough of the dense array to drive a join.
type erasedPool interface {
	has(e Entity) bool
	erase(e Entity)
	len() int
	// entityAt returns the entity at physical (append-order) dense
	// position i — the same convention entitySet.At uses.
	entityAt(i int) Entity
}

// Pool is the sparse-set component storage for one component type T: a
// pair of arrays (sparse index → dense position, dense position →
// entity) with a parallel dense array of component values, co-indexed
// with the entity array.
type Pool[T any] struct {
	set        *entitySet
	components []T
}

// NewPool creates an empty component pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		set:        newEntitySet(),
		components: make([]T, 0, alignment),
	}
}

// Has reports pool membership in O(1).
func (p *Pool[T]) Has(e Entity) bool {
	return p.set.Has(e)
}

// Insert adds e with component value v. Requires !Has(e).
func (p *Pool[T]) Insert(e Entity, v T) *T {
	if p.set.Has(e) {
		panicRequiresAbsent("Insert")
	}
	p.set.Insert(e)
	p.components = append(p.components, v)
	return &p.components[len(p.components)-1]
}

// Erase performs a swap-and-pop removal, keeping components co-indexed
// with the entity array. Requires Has(e).
func (p *Pool[T]) Erase(e Entity) {
	if !p.set.Has(e) {
		panicRequiresPresent("Erase")
	}
	pos := p.set.sparse[e.Index()]
	last := len(p.components) - 1
	p.components[pos] = p.components[last]
	p.components = p.components[:last]
	p.set.Erase(e)
}

// Get returns a reference to e's component value. Requires Has(e).
func (p *Pool[T]) Get(e Entity) *T {
	idx := e.Index()
	if int(idx) >= len(p.set.sparse) {
		panicRequiresPresent("Get")
	}
	pos := p.set.sparse[idx]
	if pos == invalidIndex {
		panicRequiresPresent("Get")
	}
	return &p.components[pos]
}

// Len returns the number of entities in the pool.
func (p *Pool[T]) Len() int {
	return p.set.Len()
}

// Empty reports whether the pool has no entities.
func (p *Pool[T]) Empty() bool {
	return p.Len() == 0
}

// Data exposes the dense entity array in physical (append) order,
// length Len(). Mirrors entitySet.Data / the classic sparse-set data()
// contract.
func (p *Pool[T]) Data() []Entity {
	return p.set.Data()
}

// Raw exposes the dense component array in physical (append) order,
// co-indexed with Data(). Pool-only operation.
func (p *Pool[T]) Raw() []T {
	return p.components
}

// At returns the (entity, component) pair at presentation index i: 0 is
// the most recently inserted surviving entity (reverse-insertion
// order).
func (p *Pool[T]) At(i int) (Entity, *T) {
	pos := physicalIndex(i, len(p.set.dense))
	return p.set.dense[pos], &p.components[pos]
}

// Each invokes f with a reference to every component, in presentation
// (reverse-insertion) order.
func (p *Pool[T]) Each(f func(component *T)) {
	for i := len(p.components) - 1; i >= 0; i-- {
		f(&p.components[i])
	}
}

// EachEntity invokes f with every entity, in presentation order.
func (p *Pool[T]) EachEntity(f func(e Entity)) {
	for i := len(p.set.dense) - 1; i >= 0; i-- {
		f(p.set.dense[i])
	}
}

// Sort reorders both dense arrays consistently according to cmp and
// updates the sparse array. cmp follows sort.Interface's Less
// convention: cmp(a, b) reports whether a should sort before b in the
// pool's *presentation* order (Each/At), i.e. after Sort, presentation
// order is ascending by cmp.
//
// Presentation order is the reverse of physical (append) order, so the
// physical array this stores is the reverse of the target
// presentation: physical[0] holds the cmp-largest element.
func (p *Pool[T]) Sort(cmp func(a, b T) bool) {
	n := len(p.components)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// idx ascending by cmp: idx[0] is cmp-smallest.
	sort.Slice(idx, func(i, j int) bool {
		return cmp(p.components[idx[i]], p.components[idx[j]])
	})

	newDense := make([]Entity, n)
	newComponents := make([]T, n)
	for newPos := 0; newPos < n; newPos++ {
		oldPos := idx[n-1-newPos]
		newDense[newPos] = p.set.dense[oldPos]
		newComponents[newPos] = p.components[oldPos]
		p.set.sparse[newDense[newPos].Index()] = newPos
	}
	p.set.dense = newDense
	p.components = newComponents
}

func (p *Pool[T]) has(e Entity) bool   { return p.Has(e) }
func (p *Pool[T]) erase(e Entity)      { p.Erase(e) }
func (p *Pool[T]) len() int            { return p.Len() }
func (p *Pool[T]) entityAt(i int) Entity {
	return p.set.dense[i]
}
