package ecs

import "reflect"

// Singleton provides access to a single world-scoped instance of T that is
// not attached to any entity. Use it for global simulation state or
// configuration. Singletons live outside the entity store and are not
// captured by snapshots.
type Singleton[T any] struct {
	ptr *T
}

// NewSingleton returns the world's singleton accessor for T, creating the
// instance on first use. If initializer is provided and the singleton does
// not exist yet, it is created with that value; otherwise a zero value is
// used. The instance is guaranteed to exist after the call.
func NewSingleton[T any](w *World, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if w.singletons == nil {
		w.singletons = make(map[reflect.Type]any)
	}
	if existing, ok := w.singletons[t]; ok {
		return &Singleton[T]{ptr: existing.(*T)}
	}
	var value T
	if len(initializer) > 0 {
		value = initializer[0]
	}
	ptr := &value
	w.singletons[t] = ptr
	return &Singleton[T]{ptr: ptr}
}

// Get returns a pointer to the singleton instance. The pointer is stable for
// the life of the world.
func (s *Singleton[T]) Get() *T {
	return s.ptr
}
