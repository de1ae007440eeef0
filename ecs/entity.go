package ecs

import "fmt"

// Entity packs an 8-bit generation (upper bits) and a 24-bit slot index (lower bits)
type Entity uint32

const (
	slotBits = 24
	slotMask = 1<<slotBits - 1

	// MaxSlots is the number of distinct slots an Entity can address
	MaxSlots = 1 << slotBits
)

// NewEntity creates an Entity from a generation and slot index.
// Slot bits above the 24-bit range are discarded.
func NewEntity(generation uint8, slot uint32) Entity {
	return Entity(uint32(generation)<<slotBits | slot&slotMask)
}

// Generation extracts the generation from the entity
func (e Entity) Generation() uint8 {
	return uint8(e >> slotBits)
}

// Slot extracts the slot index from the entity
func (e Entity) Slot() uint32 {
	return uint32(e) & slotMask
}

// NextGeneration returns the handle for the same slot with its generation
// bumped by one. The generation wraps from 255 back to 0, so a handle held
// across 256 reuses of its slot aliases the live one.
func (e Entity) NextGeneration() Entity {
	return NewEntity(e.Generation()+1, e.Slot())
}

func (e Entity) String() string {
	return fmt.Sprintf("%d(gen:%d)", e.Slot(), e.Generation())
}
