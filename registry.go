package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// subscription is one persistent view's stake in a single component
// type: whether that type is one of the view's include types or one of
// its exclude types determines how the view's index reacts to an
// assign/remove of that type.
type subscription struct {
	view    *PersistentView
	include bool
}

// Registry owns one component pool per registered type, the stable
// type-id table, the entity allocator, and the persistent-view
// subscription/dispatch table. It mediates every mutation and vends
// views; a view never outlives it.
type Registry struct {
	pools     map[reflect.Type]erasedPool
	types     *typeTable
	alloc     *allocator
	persisted map[uint64]*PersistentView // keyed by signature hash
	subs      *intmap.Map[int, []subscription]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pools:     make(map[reflect.Type]erasedPool),
		types:     newTypeTable(),
		alloc:     newAllocator(),
		persisted: make(map[uint64]*PersistentView),
		subs:      intmap.New[int, []subscription](64),
	}
}

// Create allocates a new entity handle, reduced to the minimal surface
// views need — see allocator.go.
func (r *Registry) Create() Entity {
	return r.alloc.create()
}

// Destroy retires e, erasing it from every pool that contains it, which
// in turn fans out to persistent-index maintenance exactly as a
// `Remove[T]` would.
func (r *Registry) Destroy(e Entity) {
	if !r.alloc.alive(e) {
		return
	}
	for t, pool := range r.pools {
		if pool.has(e) {
			pool.erase(e)
			r.notifyRemove(t, e)
		}
	}
	r.alloc.destroy(e)
}

// Alive reports whether e is a live (non-recycled, non-destroyed) handle.
func (r *Registry) Alive(e Entity) bool {
	return r.alloc.alive(e)
}

// poolFor returns (creating if necessary) the typed pool for T.
func poolFor[T any](r *Registry) *Pool[T] {
	t := typeOf[T]()
	if existing, ok := r.pools[t]; ok {
		return existing.(*Pool[T])
	}
	p := NewPool[T]()
	r.pools[t] = p
	r.types.idFor(t)
	return p
}

// Reserve ensures a pool for T exists without inserting anything.
// n is ignored: the pool's sparse array grows in aligned blocks and its
// dense arrays grow by append, whatever capacity was requested.
func Reserve[T any](r *Registry, n int) {
	poolFor[T](r)
}

// TypeOf returns T's stable type id, assigning one on first use.
func TypeOf[T any](r *Registry) TypeID {
	return r.types.idFor(typeOf[T]())
}

// Assign attaches component value v to e, creating T's pool on first
// use. Requires the pool does not already contain e.
func Assign[T any](r *Registry, e Entity, v T) *T {
	pool := poolFor[T](r)
	ref := pool.Insert(e, v)
	r.notifyAssign(typeOf[T](), e)
	return ref
}

// Remove detaches T from e. Requires Has[T](r, e).
func Remove[T any](r *Registry, e Entity) {
	pool := poolFor[T](r)
	pool.Erase(e)
	r.notifyRemove(typeOf[T](), e)
}

// Get returns a reference to e's T component. Requires Has[T](r, e).
func Get[T any](r *Registry, e Entity) *T {
	return poolFor[T](r).Get(e)
}

// Has reports whether e carries a T component.
func Has[T any](r *Registry, e Entity) bool {
	t := typeOf[T]()
	pool, ok := r.pools[t]
	return ok && pool.has(e)
}

// Sort reorders T's pool according to cmp. Invalidates iterators over
// T's pool and the ordering of any persistent view including T until
// that view's own Sort is called again.
func Sort[T any](r *Registry, cmp func(a, b T) bool) {
	poolFor[T](r).Sort(cmp)
}

// poolHasType checks membership by reflect.Type, used by persistent-
// view signature matching where the type list isn't known at compile
// time.
func (r *Registry) poolHasType(t reflect.Type, e Entity) bool {
	pool, ok := r.pools[t]
	return ok && pool.has(e)
}

// poolLenByType returns a type's pool size and true, or 0 and false if
// the pool doesn't exist.
func (r *Registry) poolLenByType(t reflect.Type) (int, bool) {
	pool, ok := r.pools[t]
	if !ok {
		return 0, false
	}
	return pool.len(), true
}

func (r *Registry) subscribe(id TypeID, sub subscription) {
	existing, _ := r.subs.Get(int(id))
	r.subs.Put(int(id), append(existing, sub))
}

func (r *Registry) notifyAssign(t reflect.Type, e Entity) {
	id := r.types.idFor(t)
	subs, ok := r.subs.Get(int(id))
	if !ok {
		return
	}
	for _, sub := range subs {
		if sub.include {
			if !sub.view.index.Has(e) && sub.view.matches(e) {
				sub.view.index.Insert(e)
			}
		} else {
			if sub.view.index.Has(e) {
				sub.view.index.Erase(e)
			}
		}
	}
}

func (r *Registry) notifyRemove(t reflect.Type, e Entity) {
	id := r.types.idFor(t)
	subs, ok := r.subs.Get(int(id))
	if !ok {
		return
	}
	for _, sub := range subs {
		if sub.include {
			if sub.view.index.Has(e) {
				sub.view.index.Erase(e)
			}
		} else {
			if !sub.view.index.Has(e) && sub.view.matches(e) {
				sub.view.index.Insert(e)
			}
		}
	}
}
