package ecs

import "iter"

const noPosition int32 = -1

// SparseSet stores components of type T keyed by entity slot index.
// Components are densely packed: dense[i] is the slot owning components[i],
// and sparse[slot] holds that position.
type SparseSet[T any] struct {
	typeID     TypeID
	sparse     []int32
	dense      []uint32
	components []T
}

// NewSparseSet creates an empty set for components of type T.
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{typeID: TypeIDOf[T]()}
}

// TypeID returns the registry id of T.
func (s *SparseSet[T]) TypeID() TypeID {
	return s.typeID
}

// Len returns the number of attached components.
func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}

// position returns the dense position of slot, or false if the slot is not
// attached. The dense back-reference is rechecked so a stale sparse entry
// never resolves.
func (s *SparseSet[T]) position(slot uint32) (int32, bool) {
	if int(slot) >= len(s.sparse) {
		return noPosition, false
	}
	pos := s.sparse[slot]
	if pos < 0 || int(pos) >= len(s.dense) || s.dense[pos] != slot {
		return noPosition, false
	}
	return pos, true
}

// Contains reports whether slot has a component in this set.
func (s *SparseSet[T]) Contains(slot uint32) bool {
	_, ok := s.position(slot)
	return ok
}

// Insert attaches value to slot. An existing component is left untouched
// and false is returned.
func (s *SparseSet[T]) Insert(slot uint32, value T) bool {
	if s.Contains(slot) {
		return false
	}

	if int(slot) >= len(s.sparse) {
		grown := make([]int32, 2*(int(slot)+1))
		n := copy(grown, s.sparse)
		for i := n; i < len(grown); i++ {
			grown[i] = noPosition
		}
		s.sparse = grown
	}

	s.sparse[slot] = int32(len(s.dense))
	s.dense = append(s.dense, slot)
	s.components = append(s.components, value)
	return true
}

// Remove detaches the component for slot by moving the last component into
// its position. Returns false if slot had no component.
func (s *SparseSet[T]) Remove(slot uint32) bool {
	pos, ok := s.position(slot)
	if !ok {
		return false
	}

	last := int32(len(s.dense) - 1)
	if pos != last {
		moved := s.dense[last]
		s.dense[pos] = moved
		s.components[pos] = s.components[last]
		s.sparse[moved] = pos
	}

	var zero T
	s.components[last] = zero
	s.dense = s.dense[:last]
	s.components = s.components[:last]
	s.sparse[slot] = noPosition
	return true
}

// Get returns a pointer to the component for slot, or nil if absent.
//
// The pointer aliases the set's internal storage and is only valid until the
// next Insert or Remove on this set: growth may reallocate the backing array
// and swap-removal may move a different component into the same address.
func (s *SparseSet[T]) Get(slot uint32) *T {
	pos, ok := s.position(slot)
	if !ok {
		return nil
	}
	return &s.components[pos]
}

// Slots returns the packed slot indices in storage order.
// The slice is owned by the set and must not be modified.
func (s *SparseSet[T]) Slots() []uint32 {
	return s.dense
}

// All iterates over slot/component pairs in storage order. The set must not
// be mutated while iterating.
func (s *SparseSet[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range s.dense {
			if !yield(s.dense[i], &s.components[i]) {
				return
			}
		}
	}
}

func (s *SparseSet[T]) containsSlot(slot uint32) bool {
	return s.Contains(slot)
}

func (s *SparseSet[T]) removeSlot(slot uint32) bool {
	return s.Remove(slot)
}
