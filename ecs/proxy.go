package ecs

import (
	"unsafe"
	"weak"
)

// proxyMissing is the address used as the known-absent cache sentinel.
var proxyMissing byte

func missingTag() unsafe.Pointer {
	return unsafe.Pointer(&proxyMissing)
}

// EntityProxy is a cached entity handle. Each cache slot is nil (never
// resolved), the missing sentinel (known absent), or a pointer into the
// component's pool entry. The world keeps the cache honest: adds, removes,
// swap-erase moves and entity death all notify the proxy, so holders get
// pointer-speed access without manual invalidation.
type EntityProxy struct {
	world  *World
	entity Entity
	alive  bool
	cache  [MaxComponents]unsafe.Pointer
}

// Entity returns the handle this proxy tracks.
func (p *EntityProxy) Entity() Entity {
	return p.entity
}

// IsAlive reports whether the tracked entity is still alive.
func (p *EntityProxy) IsAlive() bool {
	return p.alive && p.world != nil && p.world.IsAlive(p.entity)
}

func (p *EntityProxy) cacheComponent(cid ComponentID, ptr unsafe.Pointer) {
	p.cache[cid] = ptr
}

func (p *EntityProxy) markMissing(cid ComponentID) {
	p.cache[cid] = missingTag()
}

func (p *EntityProxy) markDead() {
	p.cache = [MaxComponents]unsafe.Pointer{}
	p.alive = false
	p.world = nil
	p.entity = Entity{}
}

// ProxyTryGet returns the proxied entity's T payload, or nil when the entity
// is dead or the component absent. A cached pointer is reused after checking
// that the pointed-to entry still belongs to the proxied entity; otherwise
// the world is consulted and the result cached.
func ProxyTryGet[T any](p *EntityProxy) *T {
	if p == nil || !p.alive || p.world == nil {
		return nil
	}
	cid := ComponentIDOf[T]()
	slot := p.cache[cid]
	if slot == missingTag() {
		return nil
	}
	if slot != nil {
		en := (*entry[T])(slot)
		if en.key == (slotKey{entityIdx: p.entity.Idx, gen: p.entity.Gen}) {
			return &en.data
		}
		p.cache[cid] = nil
	}
	en := tryGetEntry[T](p.world, p.entity)
	if en == nil {
		p.cache[cid] = missingTag()
		return nil
	}
	p.cache[cid] = unsafe.Pointer(en)
	return &en.data
}

// ProxyGet is ProxyTryGet with a hard-fail contract on absence.
func ProxyGet[T any](p *EntityProxy) *T {
	ptr := ProxyTryGet[T](p)
	if ptr == nil {
		panic("ecs: proxy get of missing component")
	}
	return ptr
}

// ProxyHas reports whether the proxied entity currently has component T.
func ProxyHas[T any](p *EntityProxy) bool {
	return ProxyTryGet[T](p) != nil
}

// GetProxy returns the shared proxy for e, creating one if the arena slot
// holds no live back-reference. Returns nil for a dead or stale handle. All
// callers holding the proxy see the same cache.
func (w *World) GetProxy(e Entity) *EntityProxy {
	meta := w.validate(e)
	if meta == nil {
		return nil
	}
	if px := meta.proxy.Value(); px != nil && px.alive {
		return px
	}
	px := &EntityProxy{world: w, entity: e, alive: true}
	meta.proxy = weak.Make(px)
	return px
}

func (w *World) notifyProxyPtr(meta *entityMeta, cid ComponentID, ptr unsafe.Pointer) {
	if px := meta.proxy.Value(); px != nil {
		px.cacheComponent(cid, ptr)
	}
}

func (w *World) notifyProxyMissing(meta *entityMeta, cid ComponentID) {
	if px := meta.proxy.Value(); px != nil {
		px.markMissing(cid)
	}
}

func (w *World) invalidateProxyAll(meta *entityMeta) {
	if px := meta.proxy.Value(); px != nil {
		px.markDead()
	}
	meta.proxy = weak.Pointer[EntityProxy]{}
}
