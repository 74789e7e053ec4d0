package ecs

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// World owns the entity arena and the component pools. It is not
// thread-safe; exactly one goroutine may mutate it.
type World struct {
	arena        entityArena
	pools        [MaxComponents]poolStore
	nextEntityID uint64
	// byID maps the stable 64-bit entity id to its arena slot, for
	// FindByID. Maintained on create, destroy and restore.
	byID       *intmap.Map[uint64, uint32]
	singletons map[reflect.Type]any
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		arena: newEntityArena(),
		byID:  intmap.New[uint64, uint32](256),
	}
}

// Create allocates a new entity with a fresh id and an empty signature.
func (w *World) Create() Entity {
	idx := w.arena.alloc()
	meta := w.arena.at(idx)
	w.nextEntityID++
	meta.entityID = w.nextEntityID
	meta.entityIdx = idx
	meta.gen = meta.gen&GenMask | GenAliveBit
	meta.sig = signature{}
	meta.idx = meta.idx[:0]
	w.byID.Put(meta.entityID, idx)
	return Entity{ID: meta.entityID, Idx: idx, Gen: meta.gen}
}

// Destroy removes the entity and all its components. Stale handles are
// ignored. The slot's generation is bumped so the handle never validates
// again, then the slot goes back on the free list.
func (w *World) Destroy(e Entity) {
	meta := w.validate(e)
	if meta == nil {
		return
	}

	w.invalidateProxyAll(meta)

	i := 0
	meta.sig.forEachSet(func(cid ComponentID) {
		di := meta.idx[i]
		i++
		if p := w.pools[cid]; p != nil {
			p.eraseDense(di, w)
		}
	})

	meta.sig = signature{}
	meta.idx = meta.idx[:0]
	meta.gen = (meta.gen + 1) & GenMask
	w.byID.Del(e.ID)
	w.arena.free(e.Idx)
}

// IsAlive reports whether the handle still addresses a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.validate(e) != nil
}

// ResolveIdxGen reconstructs a full handle from (idx, gen). Returns the zero
// Entity when the slot is out of range, dead, or on a different generation.
// Useful for compact references that omit the 64-bit id.
func (w *World) ResolveIdxGen(idx, gen uint32) Entity {
	if idx >= w.arena.len() {
		return Entity{}
	}
	meta := w.arena.at(idx)
	if meta.gen&GenAliveBit == 0 || meta.gen != gen {
		return Entity{}
	}
	return Entity{ID: meta.entityID, Idx: idx, Gen: gen}
}

// FindByID resolves a stable entity id back to a live handle, or the zero
// Entity when no live entity carries that id.
func (w *World) FindByID(id uint64) Entity {
	idx, ok := w.byID.Get(id)
	if !ok {
		return Entity{}
	}
	meta := w.arena.at(idx)
	if meta.gen&GenAliveBit == 0 || meta.entityID != id {
		return Entity{}
	}
	return Entity{ID: id, Idx: idx, Gen: meta.gen}
}

// AddMissingComponents copies onto dst every component present on src but
// absent on dst. Components dst already has are left untouched. The copies
// are independent of src's storage.
func (w *World) AddMissingComponents(dst, src Entity) {
	dstMeta := w.validate(dst)
	srcMeta := w.validate(src)
	if dstMeta == nil || srcMeta == nil {
		return
	}

	i := 0
	srcMeta.sig.forEachSet(func(cid ComponentID) {
		srcDi := srcMeta.idx[i]
		i++
		if dstMeta.sig.test(cid) {
			return
		}
		p := w.pools[cid]
		if p == nil {
			return
		}
		pos := dstMeta.sig.rank(cid)
		dstMeta.sig.set(cid)
		di := p.cloneDense(dstMeta.entityIdx, dstMeta.gen, srcDi)
		dstMeta.idx = slices.Insert(dstMeta.idx, pos, di)
		w.notifyProxyPtr(dstMeta, cid, p.componentPtr(di))
	})
}

// Add attaches component T to e, returning a pointer to the stored payload.
// Adding a component the entity already has returns the existing payload
// without overwriting it. Panics on a dead or stale handle.
func Add[T any](w *World, e Entity, v T) *T {
	meta := w.validate(e)
	if meta == nil {
		panic("ecs: add on dead or stale entity handle")
	}
	cid := ComponentIDOf[T]()
	p := getPool[T](w)
	if meta.sig.test(cid) {
		return &p.items.at(int(meta.idx[meta.sig.rank(cid)])).data
	}

	pos := meta.sig.rank(cid)
	meta.sig.set(cid)
	di := p.emplace(e.Idx, e.Gen, v)
	meta.idx = slices.Insert(meta.idx, pos, di)
	w.notifyProxyPtr(meta, cid, unsafe.Pointer(p.items.at(int(di))))
	return &p.items.at(int(di)).data
}

// Remove detaches component T from e. Stale handles and absent components
// are ignored.
func Remove[T any](w *World, e Entity) {
	meta := w.validate(e)
	if meta == nil {
		return
	}
	cid := ComponentIDOf[T]()
	if !meta.sig.test(cid) {
		return
	}

	pos := meta.sig.rank(cid)
	di := meta.idx[pos]
	w.pools[cid].eraseDense(di, w)
	meta.idx = slices.Delete(meta.idx, pos, pos+1)
	meta.sig.reset(cid)
	w.notifyProxyMissing(meta, cid)
}

// Has reports whether e is alive and carries component T.
func Has[T any](w *World, e Entity) bool {
	meta := w.validate(e)
	if meta == nil {
		return false
	}
	return meta.sig.test(ComponentIDOf[T]())
}

// TryGet returns a pointer to e's T payload, or nil when the handle is stale
// or the component absent. The pointer stays valid until the component is
// removed or its pool swap-erases over it; use a proxy to hold it longer.
func TryGet[T any](w *World, e Entity) *T {
	en := tryGetEntry[T](w, e)
	if en == nil {
		return nil
	}
	return &en.data
}

// Get is TryGet with a hard-fail contract: the component must be present.
func Get[T any](w *World, e Entity) *T {
	ptr := TryGet[T](w, e)
	if ptr == nil {
		panic("ecs: get of missing component")
	}
	return ptr
}

// TryGetIdxGen is TryGet for references cached as (idx, gen) only, skipping
// the entity-id check.
func TryGetIdxGen[T any](w *World, idx, gen uint32) *T {
	if idx >= w.arena.len() {
		return nil
	}
	meta := w.arena.at(idx)
	if meta.gen&GenAliveBit == 0 || meta.gen != gen {
		return nil
	}
	cid := ComponentIDOf[T]()
	if !meta.sig.test(cid) {
		return nil
	}
	p := poolIfExists[T](w)
	if p == nil {
		return nil
	}
	return &p.items.at(int(meta.idx[meta.sig.rank(cid)])).data
}

func tryGetEntry[T any](w *World, e Entity) *entry[T] {
	meta := w.validate(e)
	if meta == nil {
		return nil
	}
	cid := ComponentIDOf[T]()
	if !meta.sig.test(cid) {
		return nil
	}
	p := poolIfExists[T](w)
	if p == nil {
		return nil
	}
	return p.items.at(int(meta.idx[meta.sig.rank(cid)]))
}

// validate returns the arena slot for e iff the handle is live: alive bit
// set, generation equal, and entity id equal. All three must match.
func (w *World) validate(e Entity) *entityMeta {
	if e.Idx >= w.arena.len() {
		return nil
	}
	meta := w.arena.at(e.Idx)
	if meta.gen&GenAliveBit == 0 || meta.gen != e.Gen || meta.entityID != e.ID {
		return nil
	}
	return meta
}

// denseMoved is the swap-erase callback: the entry for cid now lives at di.
// Patches the moved entry's owner and re-points any live proxy.
func (w *World) denseMoved(di, entityIdx, gen uint32, cid ComponentID) {
	if entityIdx >= w.arena.len() {
		return
	}
	meta := w.arena.at(entityIdx)
	if meta.gen&GenAliveBit == 0 || meta.gen != gen {
		return
	}
	pos := meta.sig.rank(cid)
	if pos < len(meta.idx) {
		meta.idx[pos] = di
	}
	if p := w.pools[cid]; p != nil {
		w.notifyProxyPtr(meta, cid, p.componentPtr(di))
	}
}

func getPool[T any](w *World) *pool[T] {
	cid := ComponentIDOf[T]()
	if w.pools[cid] == nil {
		w.pools[cid] = &pool[T]{cid: cid}
	}
	return w.pools[cid].(*pool[T])
}

func poolIfExists[T any](w *World) *pool[T] {
	if p := w.pools[ComponentIDOf[T]()]; p != nil {
		return p.(*pool[T])
	}
	return nil
}
