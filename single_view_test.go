package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tskopec/ecsview"
)

type svTag struct{ N int }

func TestSingleViewContainsAndGet(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.Create()
	ecs.Assign(r, e, svTag{N: 5})

	view := ecs.SingleView[svTag](r)
	require.True(t, view.Contains(e))
	require.Equal(t, 5, view.Get(e).N)
}

// Find-then-iterate: find(e) != end() iff contains(e), and advancing
// from find(e) to end() visits every entity that follows e exactly
// once.
func TestSingleViewFindThenIterate(t *testing.T) {
	r := ecs.NewRegistry()
	ea := r.Create()
	eb := r.Create()
	ec := r.Create()
	ecs.Assign(r, ea, svTag{N: 0})
	ecs.Assign(r, eb, svTag{N: 1})
	ecs.Assign(r, ec, svTag{N: 2})
	// presentation order is reverse insertion: ec, eb, ea

	view := ecs.SingleView[svTag](r)
	it := view.Find(eb)
	require.False(t, it.End())
	require.Equal(t, eb, it.Entity())

	it = it.Next()
	require.False(t, it.End())
	require.Equal(t, ea, it.Entity())

	it = it.Next()
	require.True(t, it.End())
}

func TestSingleViewFindAbsentIsEnd(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.Create()
	ecs.Assign(r, e, svTag{})
	missing := r.Create()

	view := ecs.SingleView[svTag](r)
	it := view.Find(missing)
	require.True(t, it.End())
}

func TestSingleViewAllIterator(t *testing.T) {
	r := ecs.NewRegistry()
	ea := r.Create()
	eb := r.Create()
	ecs.Assign(r, ea, svTag{N: 0})
	ecs.Assign(r, eb, svTag{N: 1})
	// presentation order is reverse insertion: eb, ea

	var entities []ecs.Entity
	var values []int
	for e, c := range ecs.SingleView[svTag](r).All() {
		entities = append(entities, e)
		values = append(values, c.N)
	}
	require.Equal(t, []ecs.Entity{eb, ea}, entities)
	require.Equal(t, []int{1, 0}, values)
}
