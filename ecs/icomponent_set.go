package ecs

// componentSet is the type-erased view of a SparseSet the Manager holds for
// each registered component type.
type componentSet interface {
	TypeID() TypeID
	Len() int
	containsSlot(slot uint32) bool
	removeSlot(slot uint32) bool
}

var _ componentSet = (*SparseSet[struct{}])(nil)
