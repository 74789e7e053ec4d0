package ecs

import "slices"

// PrefabEntry is one initial component value for Instantiate. Build entries
// with Comp; the payload is captured by value.
type PrefabEntry struct {
	cid     ComponentID
	emplace func(w *World, meta *entityMeta) uint32
}

// Comp wraps an initial component value into a PrefabEntry.
func Comp[T any](v T) PrefabEntry {
	return PrefabEntry{
		cid: ComponentIDOf[T](),
		emplace: func(w *World, meta *entityMeta) uint32 {
			return getPool[T](w).emplace(meta.entityIdx, meta.gen, v)
		},
	}
}

// Instantiate creates an entity and attaches every prefab entry in one pass.
// Entries are sorted ascending by component id first, so the signature and
// the idx vector come out in canonical order without per-component inserts.
// Duplicate component ids in a prefab are a programmer error and panic.
func (w *World) Instantiate(entries ...PrefabEntry) Entity {
	e := w.Create()
	if len(entries) == 0 {
		return e
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b PrefabEntry) int {
		return int(a.cid) - int(b.cid)
	})

	meta := w.arena.at(e.Idx)
	for i, en := range sorted {
		if i > 0 && sorted[i-1].cid == en.cid {
			panic("ecs: duplicate component type in prefab")
		}
		meta.sig.set(en.cid)
		meta.idx = append(meta.idx, en.emplace(w, meta))
	}
	return e
}
