package ecs

// Each iterates every live entity holding component T, in pool insertion
// order. Entries whose arena slot died or was reused are skipped. The pool
// length is captured up front, so entries appended by fn are not visited in
// the same pass. Removing from T's own pool inside fn is unsupported
// (swap-erase reorders the tail); buffer such mutations through Commands.
func Each[T any](w *World, fn func(Entity, *T)) {
	p := poolIfExists[T](w)
	if p == nil {
		return
	}
	count := p.items.len()
	for i := 0; i < count; i++ {
		en := p.items.at(i)
		meta := w.arena.at(en.key.entityIdx)
		if meta.gen&GenAliveBit == 0 || meta.gen != en.key.gen {
			continue
		}
		fn(Entity{ID: meta.entityID, Idx: en.key.entityIdx, Gen: en.key.gen}, &en.data)
	}
}

// Query2 iterates entities holding both A and B, driving off A's pool. The
// two types must be distinct. Yields nothing when either pool has never been
// created. Iteration caveats match Each.
func Query2[A, B any](w *World, fn func(Entity, *A, *B)) {
	pa := poolIfExists[A](w)
	pb := poolIfExists[B](w)
	if pa == nil || pb == nil {
		return
	}
	assertUnique(pa.cid, pb.cid)

	var required signature
	required.set(pa.cid)
	required.set(pb.cid)

	count := pa.items.len()
	for i := 0; i < count; i++ {
		en := pa.items.at(i)
		meta := w.arena.at(en.key.entityIdx)
		if meta.gen&GenAliveBit == 0 || meta.gen != en.key.gen {
			continue
		}
		if !meta.sig.containsAll(&required) {
			continue
		}
		e := Entity{ID: meta.entityID, Idx: en.key.entityIdx, Gen: en.key.gen}
		fn(e, &en.data, queryGet(meta, pb))
	}
}

// Query3 is Query2 over three component types.
func Query3[A, B, C any](w *World, fn func(Entity, *A, *B, *C)) {
	pa := poolIfExists[A](w)
	pb := poolIfExists[B](w)
	pc := poolIfExists[C](w)
	if pa == nil || pb == nil || pc == nil {
		return
	}
	assertUnique(pa.cid, pb.cid, pc.cid)

	var required signature
	required.set(pa.cid)
	required.set(pb.cid)
	required.set(pc.cid)

	count := pa.items.len()
	for i := 0; i < count; i++ {
		en := pa.items.at(i)
		meta := w.arena.at(en.key.entityIdx)
		if meta.gen&GenAliveBit == 0 || meta.gen != en.key.gen {
			continue
		}
		if !meta.sig.containsAll(&required) {
			continue
		}
		e := Entity{ID: meta.entityID, Idx: en.key.entityIdx, Gen: en.key.gen}
		fn(e, &en.data, queryGet(meta, pb), queryGet(meta, pc))
	}
}

// Query4 is Query2 over four component types.
func Query4[A, B, C, D any](w *World, fn func(Entity, *A, *B, *C, *D)) {
	pa := poolIfExists[A](w)
	pb := poolIfExists[B](w)
	pc := poolIfExists[C](w)
	pd := poolIfExists[D](w)
	if pa == nil || pb == nil || pc == nil || pd == nil {
		return
	}
	assertUnique(pa.cid, pb.cid, pc.cid, pd.cid)

	var required signature
	required.set(pa.cid)
	required.set(pb.cid)
	required.set(pc.cid)
	required.set(pd.cid)

	count := pa.items.len()
	for i := 0; i < count; i++ {
		en := pa.items.at(i)
		meta := w.arena.at(en.key.entityIdx)
		if meta.gen&GenAliveBit == 0 || meta.gen != en.key.gen {
			continue
		}
		if !meta.sig.containsAll(&required) {
			continue
		}
		e := Entity{ID: meta.entityID, Idx: en.key.entityIdx, Gen: en.key.gen}
		fn(e, &en.data, queryGet(meta, pb), queryGet(meta, pc), queryGet(meta, pd))
	}
}

// queryGet locates a matched entity's payload for a non-driver pool: one
// rank and one indexed load.
func queryGet[T any](meta *entityMeta, p *pool[T]) *T {
	return &p.items.at(int(meta.idx[meta.sig.rank(p.cid)])).data
}

func assertUnique(cids ...ComponentID) {
	for i := 1; i < len(cids); i++ {
		for j := 0; j < i; j++ {
			if cids[i] == cids[j] {
				panic("ecs: query component types must be unique")
			}
		}
	}
}
