package ecs

import "iter"

// RuntimeView joins an arbitrary, run-time-chosen list of component
// types — the dynamically-typed counterpart to View2/3/4, for tooling
// and serialization code that only knows which components it wants as
// a []TypeID. Pools are resolved once at construction instead of
// walking reflect.Type on every step.
type RuntimeView struct {
	registry *Registry
	ids      []TypeID
	pools    []erasedPool // pools[i] is the pool for ids[i]; nil if never created
	driver   int           // index into ids/pools; -1 if the view is empty by construction
}

// NewRuntimeView resolves ids against r's pools and picks a driving pool
// by size, leftmost-tie-break (the same rule as the static multi-views).
//
// Two edge cases make the view permanently empty: an empty ids list,
// and any id whose pool doesn't exist yet (a type nothing has ever
// been assigned to can't match anything, now or after this view was
// built).
func NewRuntimeView(r *Registry, ids []TypeID) *RuntimeView {
	v := &RuntimeView{registry: r, ids: append([]TypeID(nil), ids...), driver: -1}
	if len(ids) == 0 {
		return v
	}
	pools := make([]erasedPool, len(ids))
	lens := make([]int, len(ids))
	for i, id := range ids {
		t, ok := r.types.typeFor(id)
		if !ok {
			return v // unknown type id: permanently empty
		}
		pool, ok := r.pools[t]
		if !ok {
			return v // type registered but no pool ever created: permanently empty
		}
		pools[i] = pool
		lens[i] = pool.len()
	}
	v.pools = pools
	v.driver = selectDriver(lens)
	return v
}

// Contains reports whether e carries every one of the view's types.
func (v *RuntimeView) Contains(e Entity) bool {
	if v.driver < 0 {
		return false
	}
	for _, pool := range v.pools {
		if !pool.has(e) {
			return false
		}
	}
	return true
}

// Size returns the driving pool's size, an upper bound on matches.
func (v *RuntimeView) Size() int {
	if v.driver < 0 {
		return 0
	}
	return v.pools[v.driver].len()
}

// Empty reports whether the view matches no entity at all.
func (v *RuntimeView) Empty() bool {
	if v.driver < 0 {
		return true
	}
	n := v.pools[v.driver].len()
	for i := n - 1; i >= 0; i-- {
		if v.matchesAllButDriver(v.pools[v.driver].entityAt(i)) {
			return false
		}
	}
	return true
}

func (v *RuntimeView) matchesAllButDriver(e Entity) bool {
	for i, pool := range v.pools {
		if i == v.driver {
			continue
		}
		if !pool.has(e) {
			return false
		}
	}
	return true
}

// Each invokes f once per matching entity, driven by the smallest pool's
// presentation order.
func (v *RuntimeView) Each(f func(e Entity)) {
	if v.driver < 0 {
		return
	}
	driver := v.pools[v.driver]
	n := driver.len()
	for i := n - 1; i >= 0; i-- {
		e := driver.entityAt(i)
		if v.matchesAllButDriver(e) {
			f(e)
		}
	}
}

// All returns a range-over-func iterator over matching entities, in the
// same presentation order as Each — the idiomatic counterpart to Each.
// Runtime views don't type-erase component access, so callers recover
// components via the registry using the known type ids, same as Each.
func (v *RuntimeView) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if v.driver < 0 {
			return
		}
		driver := v.pools[v.driver]
		n := driver.len()
		for i := n - 1; i >= 0; i-- {
			e := driver.entityAt(i)
			if v.matchesAllButDriver(e) {
				if !yield(e) {
					return
				}
			}
		}
	}
}
