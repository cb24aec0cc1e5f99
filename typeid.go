package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// TypeID is the stable small integer identifier assigned to a component
// type on first use. Runtime views are parameterised by a slice of
// these.
type TypeID int

// typeTable assigns and resolves TypeIDs. The forward direction
// (reflect.Type -> TypeID) is a plain map since reflect.Type is already
// a cheap comparable interface value; the reverse direction is the one
// every runtime-view lookup needs hot, and is kept in an int-keyed
// github.com/kamstrup/intmap.Map.
type typeTable struct {
	forward map[reflect.Type]TypeID
	reverse *intmap.Map[int, reflect.Type]
	next    TypeID
}

func newTypeTable() *typeTable {
	return &typeTable{
		forward: make(map[reflect.Type]TypeID),
		reverse: intmap.New[int, reflect.Type](64),
	}
}

// idFor returns the stable id for t, assigning one on first use.
func (tt *typeTable) idFor(t reflect.Type) TypeID {
	if id, ok := tt.forward[t]; ok {
		return id
	}
	id := tt.next
	tt.next++
	tt.forward[t] = id
	tt.reverse.Put(int(id), t)
	return id
}

// typeFor resolves a previously assigned id back to its reflect.Type.
// ok is false for an id that was never assigned. An id can be assigned
// (by TypeOf) before its pool exists, so runtime views check for the
// pool separately.
func (tt *typeTable) typeFor(id TypeID) (reflect.Type, bool) {
	return tt.reverse.Get(int(id))
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
