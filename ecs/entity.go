package ecs

// MaxComponents is the ceiling on distinct component types per process.
const MaxComponents = 128

const (
	// GenAliveBit is set in the high bit of Entity.Gen while the entity is alive.
	GenAliveBit uint32 = 0x80000000
	// GenMask selects the 31-bit generation counter below the alive bit.
	GenMask uint32 = 0x7FFFFFFF
)

const invalidIndex = ^uint32(0)

// Entity is a handle addressing one entity in a World.
//
// ID is monotonically increasing and unique for the life of the World; it is
// the stable identity, suitable for ordering and as a map key. Idx is the
// slot in the entity arena and is reused after destroy. Gen combines a 31-bit
// generation counter with the alive bit; together with Idx it detects stale
// handles. The zero Entity is the universal null handle.
type Entity struct {
	ID  uint64
	Idx uint32
	Gen uint32
}

// IsZero reports whether e is the null handle.
func (e Entity) IsZero() bool {
	return e == Entity{}
}
