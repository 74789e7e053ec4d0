package ecs

import (
	"slices"
	"weak"
)

const arenaBlockSize = 4096

// entityMeta is one arena slot. While the slot is dead its entityID field
// doubles as the free-list next pointer.
type entityMeta struct {
	entityID  uint64
	entityIdx uint32
	gen       uint32
	sig       signature
	// idx holds one dense index per set bit of sig, in ascending
	// component-id order. Position for component c is sig.rank(c).
	idx []uint32
	// proxy is a non-owning back-reference; not carried into snapshots.
	proxy weak.Pointer[EntityProxy]
}

// entityArena is a slotted allocator of entityMeta. Slots never move once
// allocated; dead slots are strung on a free list and reused.
type entityArena struct {
	blocks   []*[arenaBlockSize]entityMeta
	bump     uint32
	freeHead uint32
}

func newEntityArena() entityArena {
	return entityArena{freeHead: invalidIndex}
}

func (a *entityArena) len() uint32 {
	return a.bump
}

// alloc returns a slot index, popping the free list when possible. A freshly
// constructed slot starts at gen 1 with the alive bit unset.
func (a *entityArena) alloc() uint32 {
	if a.freeHead != invalidIndex {
		idx := a.freeHead
		a.freeHead = uint32(a.at(idx).entityID)
		return idx
	}
	idx := a.bump
	block := int(idx / arenaBlockSize)
	if block == len(a.blocks) {
		a.blocks = append(a.blocks, new([arenaBlockSize]entityMeta))
	}
	meta := a.at(idx)
	meta.entityIdx = idx
	meta.gen = 1
	a.bump++
	return idx
}

// free pushes the slot onto the free list. The caller is responsible for
// having bumped gen first; free itself does not touch it.
func (a *entityArena) free(idx uint32) {
	a.at(idx).entityID = uint64(a.freeHead)
	a.freeHead = idx
}

// at returns the slot by pointer. The pointer stays valid for the life of
// the arena; slots never move.
func (a *entityArena) at(idx uint32) *entityMeta {
	return &a.blocks[idx/arenaBlockSize][idx%arenaBlockSize]
}

// clone deep-copies the arena: same ids, gens, signatures, idx vectors and
// free list, with proxy back-references dropped.
func (a *entityArena) clone() entityArena {
	out := entityArena{bump: a.bump, freeHead: a.freeHead}
	out.blocks = make([]*[arenaBlockSize]entityMeta, len(a.blocks))
	for i, b := range a.blocks {
		nb := new([arenaBlockSize]entityMeta)
		*nb = *b
		out.blocks[i] = nb
	}
	for i := uint32(0); i < out.bump; i++ {
		meta := out.at(i)
		meta.idx = slices.Clone(meta.idx)
		meta.proxy = weak.Pointer[EntityProxy]{}
	}
	return out
}
