package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tskopec/ecsview"
)

type pvInt struct{ V int }
type pvChar struct{ C byte }
type pvUint struct{ V uint }

// S1 — Persistent view basics.
func TestPersistentViewS1(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, pvChar{})

	e1 := r.Create()
	ecs.Assign(r, e1, pvInt{})
	ecs.Assign(r, e1, pvChar{})

	pv := ecs.PersistentView2[pvInt, pvChar](r)
	require.Equal(t, 1, pv.Size())
	require.True(t, pv.Contains(e1))
	require.False(t, pv.Contains(e0))

	ecs.Assign(r, e0, pvInt{})
	require.Equal(t, 2, pv.Size())
	require.True(t, pv.Contains(e0))

	ecs.Remove[pvInt](r, e0)
	require.Equal(t, 1, pv.Size())
	require.False(t, pv.Contains(e0))
	require.True(t, pv.Contains(e1))
}

// S2 — Exclude maintenance.
func TestPersistentViewS2Exclude(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, pvInt{V: 0})
	e1 := r.Create()
	ecs.Assign(r, e1, pvInt{V: 1})
	ecs.Assign(r, e1, pvChar{})

	pv := ecs.PersistentView1[pvInt](r, ecs.Exclude[pvChar]())
	require.Equal(t, 1, pv.Size())
	require.True(t, pv.Contains(e0))

	e2 := r.Create()
	ecs.Assign(r, e2, pvInt{V: 2})
	e3 := r.Create()
	ecs.Assign(r, e3, pvInt{V: 3})
	ecs.Assign(r, e3, pvChar{})

	require.Equal(t, 2, pv.Size())
	require.True(t, pv.Contains(e0))
	require.True(t, pv.Contains(e2))

	ecs.Assign(r, e0, pvChar{})
	ecs.Assign(r, e2, pvChar{})
	require.True(t, pv.Empty())

	ecs.Remove[pvChar](r, e1)
	ecs.Remove[pvChar](r, e3)
	require.Equal(t, 2, pv.Size())
	require.True(t, pv.Contains(e1))
	require.True(t, pv.Contains(e3))
}

// S6 — Destroy reindex.
func TestPersistentViewS6DestroyReindex(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, pvInt{})
	ecs.Assign(r, e0, pvUint{})
	e1 := r.Create()
	ecs.Assign(r, e1, pvInt{})
	ecs.Assign(r, e1, pvUint{})

	pv := ecs.PersistentView2[pvInt, pvUint](r)
	require.Equal(t, 2, pv.Size())

	r.Destroy(e0)
	require.Equal(t, 1, pv.Size())
	require.True(t, pv.Contains(e1))

	fresh := r.Create()
	ecs.Assign(r, fresh, pvInt{})
	require.Equal(t, 1, pv.Size())
	require.True(t, pv.Contains(e1))
	require.False(t, pv.Contains(fresh))
}

// S5 — Sort propagation.
func TestPersistentViewS5SortPropagation(t *testing.T) {
	r := ecs.NewRegistry()
	entities := make([]ecs.Entity, 3)
	for i := range entities {
		e := r.Create()
		entities[i] = e
		ecs.Assign(r, e, pvUint{V: uint(i)})
		ecs.Assign(r, e, pvInt{V: i})
	}

	pv := ecs.PersistentView2[pvUint, pvInt](r)

	var before []int
	ecs.EachPersistentView2(pv, func(e ecs.Entity, u *pvUint, v *pvInt) {
		before = append(before, v.V)
	})
	require.Equal(t, []int{2, 1, 0}, before)

	ecs.Sort[pvUint](r, func(a, b pvUint) bool { return a.V < b.V })
	ecs.SortPersistentView[pvUint](pv)

	var after []int
	ecs.EachPersistentView2(pv, func(e ecs.Entity, u *pvUint, v *pvInt) {
		after = append(after, v.V)
	})
	require.Equal(t, []int{0, 1, 2}, after)
}

func TestPersistentViewAllIterators(t *testing.T) {
	r := ecs.NewRegistry()
	e0 := r.Create()
	ecs.Assign(r, e0, pvInt{V: 1})
	ecs.Assign(r, e0, pvChar{C: 'x'})
	ecs.Assign(r, e0, pvUint{V: 7})

	pv1 := ecs.PersistentView1[pvInt](r)
	count1 := 0
	for e, c := range ecs.PersistentViewAll1[pvInt](pv1) {
		count1++
		require.Equal(t, e0, e)
		require.Equal(t, 1, c.V)
	}
	require.Equal(t, 1, count1)

	pv2 := ecs.PersistentView2[pvInt, pvChar](r)
	count2 := 0
	for e, c := range ecs.PersistentViewAll2[pvInt, pvChar](pv2) {
		count2++
		require.Equal(t, e0, e)
		require.Equal(t, 1, c.C1.V)
		require.Equal(t, byte('x'), c.C2.C)
	}
	require.Equal(t, 1, count2)

	pv3 := ecs.PersistentView3[pvInt, pvChar, pvUint](r)
	count3 := 0
	for e, c := range ecs.PersistentViewAll3[pvInt, pvChar, pvUint](pv3) {
		count3++
		require.Equal(t, e0, e)
		require.Equal(t, 1, c.C1.V)
		require.Equal(t, byte('x'), c.C2.C)
		require.Equal(t, uint(7), c.C3.V)
	}
	require.Equal(t, 1, count3)
}

// Multi-view / persistent-view agreement: for the same include list
// and empty exclude list, the entity sets agree.
func TestMultiViewPersistentViewAgreement(t *testing.T) {
	r := ecs.NewRegistry()
	var inBoth []ecs.Entity
	for i := 0; i < 20; i++ {
		e := r.Create()
		ecs.Assign(r, e, pvInt{V: i})
		if i%2 == 0 {
			ecs.Assign(r, e, pvChar{})
			inBoth = append(inBoth, e)
		}
	}

	pv := ecs.PersistentView2[pvInt, pvChar](r)
	mv := ecs.MultiView2[pvInt, pvChar](r)

	require.Equal(t, len(inBoth), pv.Size())
	require.Equal(t, len(inBoth), mv.Size())
	for _, e := range inBoth {
		require.True(t, pv.Contains(e))
		require.True(t, mv.Contains(e))
	}
}
