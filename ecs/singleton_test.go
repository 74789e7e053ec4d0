package ecs_test

import (
	"testing"

	"github.com/plus3/hive/ecs"
	"github.com/stretchr/testify/assert"
)

type worldClock struct {
	Tick uint64
}

func TestSingletonGetOrCreate(t *testing.T) {
	w := ecs.NewWorld()

	clock := ecs.NewSingleton(w, worldClock{Tick: 5})
	assert.Equal(t, uint64(5), clock.Get().Tick)

	// A second accessor shares the same instance; the initializer is
	// ignored once the singleton exists.
	again := ecs.NewSingleton(w, worldClock{Tick: 999})
	assert.Same(t, clock.Get(), again.Get())

	clock.Get().Tick++
	assert.Equal(t, uint64(6), again.Get().Tick)
}

func TestSingletonZeroValueDefault(t *testing.T) {
	w := ecs.NewWorld()

	s := ecs.NewSingleton[worldClock](w)
	assert.Equal(t, uint64(0), s.Get().Tick)
}

func TestSingletonPerWorld(t *testing.T) {
	w1 := ecs.NewWorld()
	w2 := ecs.NewWorld()

	s1 := ecs.NewSingleton(w1, worldClock{Tick: 1})
	s2 := ecs.NewSingleton(w2, worldClock{Tick: 2})

	assert.NotSame(t, s1.Get(), s2.Get())
	assert.Equal(t, uint64(1), s1.Get().Tick)
	assert.Equal(t, uint64(2), s2.Get().Tick)
}
