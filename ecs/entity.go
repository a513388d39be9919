package ecs

import "fmt"

// Entity is a generational handle: slot in the low half, generation in the
// high half. A destroyed slot is reused with a bumped generation so stale
// handles fail IsAlive. Slot 0 is reserved, which keeps the zero Entity
// invalid.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID           { return entityID(e & 0xffffffff) }
func (e Entity) generation() generation { return generation(e >> 32) }

// String renders the handle as slot#generation, as used in log lines.
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
