package ecs

import "github.com/kamstrup/intmap"

// Snapshot is an opaque deep copy of a world's entities and components.
// Snapshots are independent of the world and of each other; restoring from
// one leaves it reusable. The in-memory layout is not a serialization
// format. Component payloads are copied by value, so reference-typed fields
// inside components share backing between the world and the snapshot.
type Snapshot struct {
	arena        entityArena
	pools        [MaxComponents]poolStore
	nextEntityID uint64
}

// Snapshot captures the arena, every pool, and the entity-id counter.
// Proxies are not part of the captured state.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		arena:        w.arena.clone(),
		nextEntityID: w.nextEntityID,
	}
	for i, p := range w.pools {
		if p != nil {
			snap.pools[i] = p.clone()
		}
	}
	return snap
}

// Restore replaces the world's state with a deep copy of the snapshot. Every
// live proxy is invalidated first: they hold pointers into the storage being
// replaced and must be re-acquired with GetProxy. Singletons are host state
// and are left untouched.
func (w *World) Restore(snap *Snapshot) {
	for i := uint32(0); i < w.arena.len(); i++ {
		w.invalidateProxyAll(w.arena.at(i))
	}

	w.arena = snap.arena.clone()
	for i := range w.pools {
		if snap.pools[i] != nil {
			w.pools[i] = snap.pools[i].clone()
		} else {
			w.pools[i] = nil
		}
	}
	w.nextEntityID = snap.nextEntityID

	w.byID = intmap.New[uint64, uint32](256)
	for i := uint32(0); i < w.arena.len(); i++ {
		meta := w.arena.at(i)
		if meta.gen&GenAliveBit != 0 {
			w.byID.Put(meta.entityID, i)
		}
	}
}
