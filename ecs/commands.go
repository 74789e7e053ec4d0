package ecs

// Commands buffers structural mutations so they can be applied after
// iteration finishes. Each and Query* must not remove from the pool they are
// driving; queueing the mutation here and flushing once the pass is done is
// the supported pattern.
type Commands struct {
	destroys []Entity
	removes  []pendingOp
	adds     []pendingOp
	spawns   [][]PrefabEntry
	defers   []func()
}

type pendingOp struct {
	entity Entity
	apply  func(w *World)
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// Spawn queues an Instantiate with the given prefab entries.
func (c *Commands) Spawn(entries ...PrefabEntry) {
	c.spawns = append(c.spawns, entries)
}

// Defer queues an arbitrary function, run after all queued mutations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// CmdAdd queues adding component T to e. The value is captured now; the add
// happens at Flush.
func CmdAdd[T any](c *Commands, e Entity, v T) {
	c.adds = append(c.adds, pendingOp{entity: e, apply: func(w *World) {
		Add(w, e, v)
	}})
}

// CmdRemove queues removing component T from e.
func CmdRemove[T any](c *Commands, e Entity) {
	c.removes = append(c.removes, pendingOp{entity: e, apply: func(w *World) {
		Remove[T](w, e)
	}})
}

// Flush applies the buffer to w and resets it. Destroys run first; queued
// adds and removes targeting an entity that is no longer alive (destroyed in
// this flush or earlier) are dropped rather than applied to a stale handle.
func (c *Commands) Flush(w *World) {
	for _, e := range c.destroys {
		w.Destroy(e)
	}
	for _, op := range c.removes {
		if w.IsAlive(op.entity) {
			op.apply(w)
		}
	}
	for _, op := range c.adds {
		if w.IsAlive(op.entity) {
			op.apply(w)
		}
	}
	for _, entries := range c.spawns {
		w.Instantiate(entries...)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.destroys = c.destroys[:0]
	c.removes = c.removes[:0]
	c.adds = c.adds[:0]
	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]
}
