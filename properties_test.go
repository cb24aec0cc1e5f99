package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tskopec/ecsview"
)

type propA struct{ V int }
type propB struct{ V int }
type propC struct{ V int }

// Persistent-index completeness: for every persistent view (Inc, Exc)
// and every entity e, e is in the index iff e satisfies every include
// type and no exclude type — checked against a brute-force scan after
// a sequence of mixed mutations.
func TestPersistentIndexCompleteness(t *testing.T) {
	r := ecs.NewRegistry()
	pv := ecs.PersistentView2[propA, propB](r, ecs.Exclude[propC]())

	entities := make([]ecs.Entity, 12)
	for i := range entities {
		entities[i] = r.Create()
	}
	ecs.Assign(r, entities[0], propA{})
	ecs.Assign(r, entities[0], propB{})

	ecs.Assign(r, entities[1], propA{})
	ecs.Assign(r, entities[1], propB{})
	ecs.Assign(r, entities[1], propC{})

	ecs.Assign(r, entities[2], propA{})

	for i := 3; i < 8; i++ {
		ecs.Assign(r, entities[i], propA{})
		ecs.Assign(r, entities[i], propB{})
	}
	ecs.Assign(r, entities[5], propC{})
	ecs.Remove[propC](r, entities[5])

	for _, e := range entities {
		want := ecs.Has[propA](r, e) && ecs.Has[propB](r, e) && !ecs.Has[propC](r, e)
		require.Equal(t, want, pv.Contains(e), "entity %v completeness mismatch", e)
	}
}

func TestMultiView3DrivenByJoinOfThree(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, propA{V: 1})
	ecs.Assign(r, e0, propB{V: 2})
	ecs.Assign(r, e0, propC{V: 3})

	e1 := r.Create()
	ecs.Assign(r, e1, propA{V: 9})
	ecs.Assign(r, e1, propB{V: 9}) // missing propC: should not match

	view := ecs.MultiView3[propA, propB, propC](r)
	require.True(t, view.Contains(e0))
	require.False(t, view.Contains(e1))

	a, b, c := view.Get(e0)
	require.Equal(t, 1, a.V)
	require.Equal(t, 2, b.V)
	require.Equal(t, 3, c.V)

	count := 0
	view.Each(func(e ecs.Entity, a *propA, b *propB, c *propC) { count++ })
	require.Equal(t, 1, count)
}

func TestMultiView3AllIterator(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, propA{V: 1})
	ecs.Assign(r, e0, propB{V: 2})
	ecs.Assign(r, e0, propC{V: 3})

	e1 := r.Create()
	ecs.Assign(r, e1, propA{V: 9})
	ecs.Assign(r, e1, propB{V: 9}) // missing propC: should not match

	count := 0
	for e, c := range ecs.MultiView3[propA, propB, propC](r).All() {
		count++
		require.Equal(t, e0, e)
		require.Equal(t, 1, c.C1.V)
		require.Equal(t, 2, c.C2.V)
		require.Equal(t, 3, c.C3.V)
	}
	require.Equal(t, 1, count)
}

func TestMultiView4AllIterator(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, propA{V: 1})
	ecs.Assign(r, e0, propB{V: 2})
	ecs.Assign(r, e0, propC{V: 3})
	type propD struct{ V int }
	ecs.Assign(r, e0, propD{V: 4})

	e1 := r.Create()
	ecs.Assign(r, e1, propA{V: 9})
	ecs.Assign(r, e1, propB{V: 9}) // missing propC/propD: should not match

	count := 0
	for e, c := range ecs.MultiView4[propA, propB, propC, propD](r).All() {
		count++
		require.Equal(t, e0, e)
		require.Equal(t, 1, c.C1.V)
		require.Equal(t, 2, c.C2.V)
		require.Equal(t, 3, c.C3.V)
		require.Equal(t, 4, c.C4.V)
	}
	require.Equal(t, 1, count)
}
