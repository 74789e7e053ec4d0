package ecs

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentID is a small dense id assigned to each component type in
// registration order. Assignment is process-wide: a type keeps its id for
// the life of the process, across all Worlds.
type ComponentID uint16

// iface mirrors the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns a process-unique key for a reflect.Type using the type's
// runtime data pointer.
func typeKey(t reflect.Type) uint64 {
	ptr := (*iface)(unsafe.Pointer(&t)).data
	return uint64(uintptr(ptr))
}

var componentIDs = struct {
	mu   sync.RWMutex
	ids  *intmap.Map[uint64, uint32]
	next ComponentID
}{
	ids: intmap.New[uint64, uint32](MaxComponents),
}

// ComponentIDOf returns the dense id for component type T, assigning one on
// first use. Panics once more than MaxComponents distinct types have been
// seen.
func ComponentIDOf[T any]() ComponentID {
	key := typeKey(reflect.TypeFor[T]())

	componentIDs.mu.RLock()
	id, ok := componentIDs.ids.Get(key)
	componentIDs.mu.RUnlock()
	if ok {
		return ComponentID(id)
	}

	componentIDs.mu.Lock()
	defer componentIDs.mu.Unlock()
	if id, ok := componentIDs.ids.Get(key); ok {
		return ComponentID(id)
	}
	if componentIDs.next >= MaxComponents {
		panic(fmt.Sprintf("ecs: component type limit (%d) exceeded by %v", MaxComponents, reflect.TypeFor[T]()))
	}
	assigned := componentIDs.next
	componentIDs.next++
	componentIDs.ids.Put(key, uint32(assigned))
	return assigned
}

// slotKey ties a pool entry back to its owning arena slot. The gen value is
// captured at insertion and compared against the arena's current gen during
// iteration to filter entries whose slot was reused.
type slotKey struct {
	entityIdx uint32
	gen       uint32
}

// entry is one dense pool element: the owning slot plus the payload.
type entry[T any] struct {
	key  slotKey
	data T
}
