package ecs

// PoolStats describes one component pool.
type PoolStats struct {
	Component  ComponentID
	EntryCount int
}

// WorldStats is a point-in-time summary of a world's storage.
type WorldStats struct {
	EntityCount int // alive entities
	ArenaSlots  int // slots ever allocated
	FreeSlots   int // slots currently on the free list
	PoolCount   int
	Pools       []PoolStats
	LiveProxies int
}

// CollectStats walks the arena and pools and returns a summary. Intended for
// diagnostics and reports, not hot paths.
func (w *World) CollectStats() WorldStats {
	var stats WorldStats
	stats.ArenaSlots = int(w.arena.len())
	for i := uint32(0); i < w.arena.len(); i++ {
		meta := w.arena.at(i)
		if meta.gen&GenAliveBit == 0 {
			continue
		}
		stats.EntityCount++
		if meta.proxy.Value() != nil {
			stats.LiveProxies++
		}
	}
	stats.FreeSlots = stats.ArenaSlots - stats.EntityCount

	for cid, p := range w.pools {
		if p == nil {
			continue
		}
		stats.PoolCount++
		stats.Pools = append(stats.Pools, PoolStats{
			Component:  ComponentID(cid),
			EntryCount: p.length(),
		})
	}
	return stats
}
