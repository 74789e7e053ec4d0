/*
Package ecs provides a data-oriented entity-component store for games and
simulations.

Entities are addressed through generational handles that stay safe across
slot recycling. Each component type lives in its own dense pool, and every
entity carries a signature bitset plus a compact index vector that maps a
component id to its pool slot with a single popcount. Cached handles
(proxies) memoize component pointers and are kept valid by the store itself
as pools swap-erase and entities die.

Basic usage:

	w := ecs.NewWorld()

	player := w.Create()
	ecs.Add(w, player, Position{X: 10, Y: 20})
	ecs.Add(w, player, Health{HP: 100})

	ecs.Query2(w, func(e ecs.Entity, pos *Position, h *Health) {
		pos.X += 1
	})

	w.Destroy(player)

The World is not thread-safe; it expects a single mutator.
*/
package ecs
