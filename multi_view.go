package ecs

import "iter"

// selectDriver picks the index of the smallest pool among lens,
// breaking ties by leftmost position. A strict `<` comparison while
// scanning left to right is sufficient: the first pool to reach a given
// minimum keeps the title unless a later one is strictly smaller.
func selectDriver(lens []int) int {
	driver := 0
	best := lens[0]
	for i := 1; i < len(lens); i++ {
		if lens[i] < best {
			driver = i
			best = lens[i]
		}
	}
	return driver
}

// View2 joins two component pools on the fly: iteration is driven by
// whichever of the two is smaller, filtered against the other.
type View2[T1, T2 any] struct {
	p1, p2 *Pool[T1]
	q2     *Pool[T2]
	driver int
}

// hack: Go generics can't express "Pool[T1], Pool[T2]" cleanly with a
// shared field name across arities without repetition; each ViewN below
// spells its pools out explicitly instead of trying to share a base.

// MultiView2 builds a join view over T1 and T2, creating their pools on
// first use.
func MultiView2[T1, T2 any](r *Registry) View2[T1, T2] {
	p1 := poolFor[T1](r)
	p2 := poolFor[T2](r)
	return View2[T1, T2]{p1: p1, q2: p2, driver: selectDriver([]int{p1.Len(), p2.Len()})}
}

// Contains reports whether e is present in every joined pool.
func (v View2[T1, T2]) Contains(e Entity) bool {
	return v.p1.Has(e) && v.q2.Has(e)
}

// Get returns references to e's components. Requires Contains(e).
func (v View2[T1, T2]) Get(e Entity) (*T1, *T2) {
	return v.p1.Get(e), v.q2.Get(e)
}

// Size returns the driving pool's size, an upper bound on the number of
// matches.
func (v View2[T1, T2]) Size() int { return v.driverLen() }

func (v View2[T1, T2]) driverLen() int {
	if v.driver == 0 {
		return v.p1.Len()
	}
	return v.q2.Len()
}

func (v View2[T1, T2]) driverEntityAt(physPos int) Entity {
	if v.driver == 0 {
		return v.p1.entityAt(physPos)
	}
	return v.q2.entityAt(physPos)
}

func (v View2[T1, T2]) driverPhysPos(e Entity) int {
	if v.driver == 0 {
		return v.p1.set.sparse[e.Index()]
	}
	return v.q2.set.sparse[e.Index()]
}

func (v View2[T1, T2]) matchesOthers(e Entity) bool {
	if v.driver == 0 {
		return v.q2.Has(e)
	}
	return v.p1.Has(e)
}

// Empty is accurate (equivalent to begin() == end()), unlike Size().
func (v View2[T1, T2]) Empty() bool {
	for i := v.driverLen() - 1; i >= 0; i-- {
		if v.matchesOthers(v.driverEntityAt(i)) {
			return false
		}
	}
	return true
}

// Each invokes f once per matching entity, driven by the smaller pool's
// presentation order and filtered against the other.
func (v View2[T1, T2]) Each(f func(e Entity, c1 *T1, c2 *T2)) {
	for i := v.driverLen() - 1; i >= 0; i-- {
		e := v.driverEntityAt(i)
		if v.matchesOthers(e) {
			f(e, v.p1.Get(e), v.q2.Get(e))
		}
	}
}

// View2Components bundles the pair of references View2.All yields
// alongside each matching entity.
type View2Components[T1, T2 any] struct {
	C1 *T1
	C2 *T2
}

// All returns a range-over-func iterator over matching entities and
// their components, in the same presentation order as Each — the
// idiomatic counterpart to Each.
func (v View2[T1, T2]) All() iter.Seq2[Entity, View2Components[T1, T2]] {
	return func(yield func(Entity, View2Components[T1, T2]) bool) {
		for i := v.driverLen() - 1; i >= 0; i-- {
			e := v.driverEntityAt(i)
			if v.matchesOthers(e) {
				if !yield(e, View2Components[T1, T2]{C1: v.p1.Get(e), C2: v.q2.Get(e)}) {
					return
				}
			}
		}
	}
}

// View2Iterator is the result of Find: a cursor over the driving pool's
// fixed scan order, honouring the join filter while advancing.
type View2Iterator[T1, T2 any] struct {
	view View2[T1, T2]
	pos  int // presentation index into the driving pool
}

// Find positions an iterator at e if the view contains it, End()
// otherwise.
func (v View2[T1, T2]) Find(e Entity) View2Iterator[T1, T2] {
	if !v.Contains(e) {
		return View2Iterator[T1, T2]{view: v, pos: v.driverLen()}
	}
	pos := physicalIndex(v.driverPhysPos(e), v.driverLen())
	return View2Iterator[T1, T2]{view: v, pos: pos}
}

func (it View2Iterator[T1, T2]) End() bool {
	return it.pos < 0 || it.pos >= it.view.driverLen()
}

func (it View2Iterator[T1, T2]) Entity() Entity {
	return it.view.driverEntityAt(physicalIndex(it.pos, it.view.driverLen()))
}

// Next sweeps forward through the driving pool's remaining presentation
// slots until it finds the next entity that satisfies the join filter,
// or reaches End().
func (it View2Iterator[T1, T2]) Next() View2Iterator[T1, T2] {
	pos := it.pos + 1
	n := it.view.driverLen()
	for pos < n {
		e := it.view.driverEntityAt(physicalIndex(pos, n))
		if it.view.matchesOthers(e) {
			break
		}
		pos++
	}
	return View2Iterator[T1, T2]{view: it.view, pos: pos}
}

// View3 joins three component pools on the fly.
type View3[T1, T2, T3 any] struct {
	p1     *Pool[T1]
	p2     *Pool[T2]
	p3     *Pool[T3]
	driver int
}

// MultiView3 builds a join view over T1, T2, T3.
func MultiView3[T1, T2, T3 any](r *Registry) View3[T1, T2, T3] {
	p1 := poolFor[T1](r)
	p2 := poolFor[T2](r)
	p3 := poolFor[T3](r)
	return View3[T1, T2, T3]{p1: p1, p2: p2, p3: p3, driver: selectDriver([]int{p1.Len(), p2.Len(), p3.Len()})}
}

func (v View3[T1, T2, T3]) Contains(e Entity) bool {
	return v.p1.Has(e) && v.p2.Has(e) && v.p3.Has(e)
}

func (v View3[T1, T2, T3]) Get(e Entity) (*T1, *T2, *T3) {
	return v.p1.Get(e), v.p2.Get(e), v.p3.Get(e)
}

func (v View3[T1, T2, T3]) Size() int { return v.driverLen() }

func (v View3[T1, T2, T3]) driverLen() int {
	switch v.driver {
	case 0:
		return v.p1.Len()
	case 1:
		return v.p2.Len()
	default:
		return v.p3.Len()
	}
}

func (v View3[T1, T2, T3]) driverEntityAt(physPos int) Entity {
	switch v.driver {
	case 0:
		return v.p1.entityAt(physPos)
	case 1:
		return v.p2.entityAt(physPos)
	default:
		return v.p3.entityAt(physPos)
	}
}

func (v View3[T1, T2, T3]) driverPhysPos(e Entity) int {
	switch v.driver {
	case 0:
		return v.p1.set.sparse[e.Index()]
	case 1:
		return v.p2.set.sparse[e.Index()]
	default:
		return v.p3.set.sparse[e.Index()]
	}
}

func (v View3[T1, T2, T3]) matchesOthers(e Entity) bool {
	switch v.driver {
	case 0:
		return v.p2.Has(e) && v.p3.Has(e)
	case 1:
		return v.p1.Has(e) && v.p3.Has(e)
	default:
		return v.p1.Has(e) && v.p2.Has(e)
	}
}

func (v View3[T1, T2, T3]) Empty() bool {
	for i := v.driverLen() - 1; i >= 0; i-- {
		if v.matchesOthers(v.driverEntityAt(i)) {
			return false
		}
	}
	return true
}

func (v View3[T1, T2, T3]) Each(f func(e Entity, c1 *T1, c2 *T2, c3 *T3)) {
	for i := v.driverLen() - 1; i >= 0; i-- {
		e := v.driverEntityAt(i)
		if v.matchesOthers(e) {
			f(e, v.p1.Get(e), v.p2.Get(e), v.p3.Get(e))
		}
	}
}

// View3Components bundles the triple of references View3.All yields
// alongside each matching entity.
type View3Components[T1, T2, T3 any] struct {
	C1 *T1
	C2 *T2
	C3 *T3
}

// All returns a range-over-func iterator over matching entities and
// their components, in the same presentation order as Each.
func (v View3[T1, T2, T3]) All() iter.Seq2[Entity, View3Components[T1, T2, T3]] {
	return func(yield func(Entity, View3Components[T1, T2, T3]) bool) {
		for i := v.driverLen() - 1; i >= 0; i-- {
			e := v.driverEntityAt(i)
			if v.matchesOthers(e) {
				c := View3Components[T1, T2, T3]{C1: v.p1.Get(e), C2: v.p2.Get(e), C3: v.p3.Get(e)}
				if !yield(e, c) {
					return
				}
			}
		}
	}
}

// View3Iterator is the result of View3.Find.
type View3Iterator[T1, T2, T3 any] struct {
	view View3[T1, T2, T3]
	pos  int
}

func (v View3[T1, T2, T3]) Find(e Entity) View3Iterator[T1, T2, T3] {
	if !v.Contains(e) {
		return View3Iterator[T1, T2, T3]{view: v, pos: v.driverLen()}
	}
	pos := physicalIndex(v.driverPhysPos(e), v.driverLen())
	return View3Iterator[T1, T2, T3]{view: v, pos: pos}
}

func (it View3Iterator[T1, T2, T3]) End() bool {
	return it.pos < 0 || it.pos >= it.view.driverLen()
}

func (it View3Iterator[T1, T2, T3]) Entity() Entity {
	return it.view.driverEntityAt(physicalIndex(it.pos, it.view.driverLen()))
}

func (it View3Iterator[T1, T2, T3]) Next() View3Iterator[T1, T2, T3] {
	pos := it.pos + 1
	n := it.view.driverLen()
	for pos < n {
		e := it.view.driverEntityAt(physicalIndex(pos, n))
		if it.view.matchesOthers(e) {
			break
		}
		pos++
	}
	return View3Iterator[T1, T2, T3]{view: it.view, pos: pos}
}

// View4 joins four component pools on the fly. Arity is capped at four;
// beyond that, code generation or a different join strategy is a better
// fit than more hand-written ViewN types.
type View4[T1, T2, T3, T4 any] struct {
	p1     *Pool[T1]
	p2     *Pool[T2]
	p3     *Pool[T3]
	p4     *Pool[T4]
	driver int
}

// MultiView4 builds a join view over T1, T2, T3, T4.
func MultiView4[T1, T2, T3, T4 any](r *Registry) View4[T1, T2, T3, T4] {
	p1 := poolFor[T1](r)
	p2 := poolFor[T2](r)
	p3 := poolFor[T3](r)
	p4 := poolFor[T4](r)
	driver := selectDriver([]int{p1.Len(), p2.Len(), p3.Len(), p4.Len()})
	return View4[T1, T2, T3, T4]{p1: p1, p2: p2, p3: p3, p4: p4, driver: driver}
}

func (v View4[T1, T2, T3, T4]) Contains(e Entity) bool {
	return v.p1.Has(e) && v.p2.Has(e) && v.p3.Has(e) && v.p4.Has(e)
}

func (v View4[T1, T2, T3, T4]) Get(e Entity) (*T1, *T2, *T3, *T4) {
	return v.p1.Get(e), v.p2.Get(e), v.p3.Get(e), v.p4.Get(e)
}

func (v View4[T1, T2, T3, T4]) Size() int { return v.driverLen() }

func (v View4[T1, T2, T3, T4]) driverLen() int {
	switch v.driver {
	case 0:
		return v.p1.Len()
	case 1:
		return v.p2.Len()
	case 2:
		return v.p3.Len()
	default:
		return v.p4.Len()
	}
}

func (v View4[T1, T2, T3, T4]) driverEntityAt(physPos int) Entity {
	switch v.driver {
	case 0:
		return v.p1.entityAt(physPos)
	case 1:
		return v.p2.entityAt(physPos)
	case 2:
		return v.p3.entityAt(physPos)
	default:
		return v.p4.entityAt(physPos)
	}
}

func (v View4[T1, T2, T3, T4]) driverPhysPos(e Entity) int {
	switch v.driver {
	case 0:
		return v.p1.set.sparse[e.Index()]
	case 1:
		return v.p2.set.sparse[e.Index()]
	case 2:
		return v.p3.set.sparse[e.Index()]
	default:
		return v.p4.set.sparse[e.Index()]
	}
}

func (v View4[T1, T2, T3, T4]) matchesOthers(e Entity) bool {
	switch v.driver {
	case 0:
		return v.p2.Has(e) && v.p3.Has(e) && v.p4.Has(e)
	case 1:
		return v.p1.Has(e) && v.p3.Has(e) && v.p4.Has(e)
	case 2:
		return v.p1.Has(e) && v.p2.Has(e) && v.p4.Has(e)
	default:
		return v.p1.Has(e) && v.p2.Has(e) && v.p3.Has(e)
	}
}

func (v View4[T1, T2, T3, T4]) Empty() bool {
	for i := v.driverLen() - 1; i >= 0; i-- {
		if v.matchesOthers(v.driverEntityAt(i)) {
			return false
		}
	}
	return true
}

func (v View4[T1, T2, T3, T4]) Each(f func(e Entity, c1 *T1, c2 *T2, c3 *T3, c4 *T4)) {
	for i := v.driverLen() - 1; i >= 0; i-- {
		e := v.driverEntityAt(i)
		if v.matchesOthers(e) {
			f(e, v.p1.Get(e), v.p2.Get(e), v.p3.Get(e), v.p4.Get(e))
		}
	}
}

// View4Components bundles the quadruple of references View4.All yields
// alongside each matching entity.
type View4Components[T1, T2, T3, T4 any] struct {
	C1 *T1
	C2 *T2
	C3 *T3
	C4 *T4
}

// All returns a range-over-func iterator over matching entities and
// their components, in the same presentation order as Each.
func (v View4[T1, T2, T3, T4]) All() iter.Seq2[Entity, View4Components[T1, T2, T3, T4]] {
	return func(yield func(Entity, View4Components[T1, T2, T3, T4]) bool) {
		for i := v.driverLen() - 1; i >= 0; i-- {
			e := v.driverEntityAt(i)
			if v.matchesOthers(e) {
				c := View4Components[T1, T2, T3, T4]{
					C1: v.p1.Get(e), C2: v.p2.Get(e), C3: v.p3.Get(e), C4: v.p4.Get(e),
				}
				if !yield(e, c) {
					return
				}
			}
		}
	}
}
