package ecs_test

import (
	"testing"

	"github.com/plus3/hive/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReturnsLiveHandle(t *testing.T) {
	w := ecs.NewWorld()

	e := w.Create()
	assert.True(t, w.IsAlive(e))
	assert.False(t, e.IsZero())
	assert.NotZero(t, e.Gen&ecs.GenAliveBit)
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.Create()
	assert.Equal(t, uint32(0), e1.Idx)
	assert.Equal(t, ecs.GenAliveBit|1, e1.Gen)

	w.Destroy(e1)
	e2 := w.Create()

	assert.Equal(t, e1.Idx, e2.Idx)
	assert.Equal(t, ecs.GenAliveBit|2, e2.Gen)
	assert.Equal(t, e1.ID+1, e2.ID)
	assert.False(t, w.IsAlive(e1))
	assert.True(t, w.IsAlive(e2))
}

func TestEntityIDStrictlyIncreasing(t *testing.T) {
	w := ecs.NewWorld()

	var last uint64
	for i := 0; i < 100; i++ {
		e := w.Create()
		assert.Greater(t, e.ID, last)
		last = e.ID
		if i%3 == 0 {
			w.Destroy(e)
		}
	}
}

func TestAddGetRemoveRoundTrip(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	ecs.Add(w, e, Health{HP: 42})
	got := ecs.TryGet[Health](w, e)
	require.NotNil(t, got)
	assert.Equal(t, 42, got.HP)
	assert.True(t, ecs.Has[Health](w, e))

	ecs.Remove[Health](w, e)
	assert.False(t, ecs.Has[Health](w, e))
	assert.Nil(t, ecs.TryGet[Health](w, e))
}

func TestAddTwiceKeepsExistingPayload(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	first := ecs.Add(w, e, Health{HP: 10})
	second := ecs.Add(w, e, Health{HP: 99})

	assert.Same(t, first, second)
	assert.Equal(t, 10, second.HP)
}

func TestSwapEraseMovesTail(t *testing.T) {
	w := ecs.NewWorld()
	a := w.Create()
	b := w.Create()
	c := w.Create()

	ecs.Add(w, a, Health{HP: 10})
	ecs.Add(w, b, Health{HP: 20})
	ecs.Add(w, c, Health{HP: 30})

	ecs.Remove[Health](w, a)

	assert.False(t, ecs.Has[Health](w, a))
	assert.Equal(t, 20, ecs.Get[Health](w, b).HP)
	assert.Equal(t, 30, ecs.Get[Health](w, c).HP)
}

func TestMutationThroughReturnedPointer(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	pos := ecs.Add(w, e, Position{X: 1, Y: 2})
	pos.X = 7

	assert.Equal(t, float32(7), ecs.Get[Position](w, e).X)
}

func TestAddOnStaleHandlePanics(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()
	w.Destroy(e)

	assert.Panics(t, func() {
		ecs.Add(w, e, Health{HP: 1})
	})
}

func TestGetMissingComponentPanics(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	assert.Panics(t, func() {
		ecs.Get[Velocity](w, e)
	})
}

func TestStaleHandleSilentOps(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()
	ecs.Add(w, e, Health{HP: 5})
	w.Destroy(e)

	// None of these may panic on a stale handle.
	w.Destroy(e)
	ecs.Remove[Health](w, e)
	assert.False(t, ecs.Has[Health](w, e))
	assert.Nil(t, ecs.TryGet[Health](w, e))
}

func TestDestroyReleasesComponents(t *testing.T) {
	w := ecs.NewWorld()
	a := w.Create()
	b := w.Create()
	ecs.Add(w, a, Health{HP: 1})
	ecs.Add(w, b, Health{HP: 2})

	w.Destroy(a)

	// b's component survives a's swap-erase.
	assert.Equal(t, 2, ecs.Get[Health](w, b).HP)

	seen := 0
	ecs.Each(w, func(e ecs.Entity, h *Health) {
		seen++
		assert.Equal(t, b, e)
	})
	assert.Equal(t, 1, seen)
}

func TestResolveIdxGen(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	assert.Equal(t, e, w.ResolveIdxGen(e.Idx, e.Gen))

	w.Destroy(e)
	assert.True(t, w.ResolveIdxGen(e.Idx, e.Gen).IsZero())
	assert.True(t, w.ResolveIdxGen(9999, e.Gen).IsZero())
}

func TestTryGetIdxGenSkipsIDCheck(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()
	ecs.Add(w, e, Health{HP: 33})

	// Full validation rejects a forged id; idx+gen access does not check it.
	forged := ecs.Entity{ID: e.ID + 1000, Idx: e.Idx, Gen: e.Gen}
	assert.Nil(t, ecs.TryGet[Health](w, forged))

	got := ecs.TryGetIdxGen[Health](w, e.Idx, e.Gen)
	require.NotNil(t, got)
	assert.Equal(t, 33, got.HP)

	w.Destroy(e)
	assert.Nil(t, ecs.TryGetIdxGen[Health](w, e.Idx, e.Gen))
}

func TestFindByID(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()

	assert.Equal(t, e, w.FindByID(e.ID))
	assert.True(t, w.FindByID(e.ID+5000).IsZero())

	w.Destroy(e)
	assert.True(t, w.FindByID(e.ID).IsZero())
}

func TestAddMissingComponents(t *testing.T) {
	w := ecs.NewWorld()
	src := w.Create()
	dst := w.Create()

	ecs.Add(w, src, Position{X: 10, Y: 20})
	ecs.Add(w, src, Health{HP: 42})
	ecs.Add(w, dst, Position{X: 1, Y: 2})

	w.AddMissingComponents(dst, src)

	// Existing components are not overwritten, missing ones are copied.
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.Get[Position](w, dst))
	assert.Equal(t, 42, ecs.Get[Health](w, dst).HP)

	// Copies are independent of the source.
	ecs.Get[Health](w, src).HP = 7
	assert.Equal(t, 42, ecs.Get[Health](w, dst).HP)
}

func TestAddMissingComponentsStaleHandles(t *testing.T) {
	w := ecs.NewWorld()
	src := w.Create()
	dst := w.Create()
	ecs.Add(w, src, Health{HP: 1})
	w.Destroy(src)

	w.AddMissingComponents(dst, src)
	assert.False(t, ecs.Has[Health](w, dst))
}

func TestManyEntitiesAcrossBlocks(t *testing.T) {
	w := ecs.NewWorld()

	entities := make([]ecs.Entity, 10000)
	for i := range entities {
		entities[i] = w.Create()
		ecs.Add(w, entities[i], Health{HP: i})
	}
	for i, e := range entities {
		assert.Equal(t, i, ecs.Get[Health](w, e).HP)
	}

	for i, e := range entities {
		if i%2 == 0 {
			w.Destroy(e)
		}
	}
	for i, e := range entities {
		if i%2 == 0 {
			assert.False(t, w.IsAlive(e))
		} else {
			assert.Equal(t, i, ecs.Get[Health](w, e).HP)
		}
	}
}
