package ecs

import (
	"io"
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// slotState tracks one entity slot: the generation of its current (or most
// recent) occupant, and where that occupant sits in Manager.reserved.
type slotState struct {
	generation uint8
	reserved   int32
}

// Manager owns the entity pool and one SparseSet per component type.
// It is not safe for concurrent use; wrap the whole Manager in a lock if it
// must be shared between goroutines.
type Manager struct {
	reserved  []Entity
	destroyed []Entity
	slots     []slotState

	sets     *intmap.Map[TypeID, componentSet]
	setOrder []componentSet

	log logrus.FieldLogger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report rejected operations at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithCapacity pre-sizes the entity pool for n entities.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		m.reserved = make([]Entity, 0, n)
		m.slots = make([]slotState, 0, n)
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sets: intmap.New[TypeID, componentSet](32),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		m.log = discard
	}
	return m
}

// CreateEntity returns a new live entity, reusing the most recently freed
// slot (with its generation bumped) when one is available.
func (m *Manager) CreateEntity() Entity {
	var e Entity
	if n := len(m.destroyed) - 1; n >= 0 {
		e = m.destroyed[n].NextGeneration()
		m.destroyed = m.destroyed[:n]
	} else {
		slot := len(m.slots)
		if slot >= MaxSlots {
			panic("ecs: entity slot space exhausted")
		}
		e = NewEntity(0, uint32(slot))
		m.slots = append(m.slots, slotState{})
	}

	m.slots[e.Slot()] = slotState{
		generation: e.Generation(),
		reserved:   int32(len(m.reserved)),
	}
	m.reserved = append(m.reserved, e)
	return e
}

// IsEntityCreated reports whether e is the current live occupant of its slot.
func (m *Manager) IsEntityCreated(e Entity) bool {
	slot := e.Slot()
	if int(slot) >= len(m.slots) {
		return false
	}
	state := m.slots[slot]
	return state.reserved != noPosition && state.generation == e.Generation()
}

// DestroyEntity frees e and detaches all of its components. Returns false if
// e is unknown or stale.
func (m *Manager) DestroyEntity(e Entity) bool {
	if !m.IsEntityCreated(e) {
		m.log.WithField("entity", e).Debug("destroy rejected: entity not live")
		return false
	}

	slot := e.Slot()
	idx := m.slots[slot].reserved
	last := len(m.reserved) - 1
	if int(idx) != last {
		moved := m.reserved[last]
		m.reserved[idx] = moved
		m.slots[moved.Slot()].reserved = idx
	}
	m.reserved = m.reserved[:last]
	m.slots[slot].reserved = noPosition

	// The generation is bumped when the slot is handed out again.
	m.destroyed = append(m.destroyed, e)

	for _, set := range m.setOrder {
		if set.containsSlot(slot) {
			set.removeSlot(slot)
		}
	}
	return true
}

// Len returns the number of live entities.
func (m *Manager) Len() int {
	return len(m.reserved)
}

// Entities iterates over live entities in no particular order. The Manager
// must not be mutated while iterating.
func (m *Manager) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range m.reserved {
			if !yield(e) {
				return
			}
		}
	}
}

// Emplace attaches value as e's T component. Returns false without changing
// anything if e is not live or already has a T.
func Emplace[T any](m *Manager, e Entity, value T) bool {
	if !m.IsEntityCreated(e) {
		m.log.WithFields(logrus.Fields{
			"entity":    e,
			"component": TypeName(TypeIDOf[T]()),
		}).Debug("emplace rejected: entity not live")
		return false
	}

	set := setFor[T](m, true)
	if !set.Insert(e.Slot(), value) {
		m.log.WithFields(logrus.Fields{
			"entity":    e,
			"component": TypeName(set.TypeID()),
		}).Debug("emplace rejected: component already attached")
		return false
	}
	return true
}

// Has reports whether e is live and has a T component.
func Has[T any](m *Manager, e Entity) bool {
	if !m.IsEntityCreated(e) {
		return false
	}
	set := setFor[T](m, false)
	return set != nil && set.Contains(e.Slot())
}

// Get returns e's T component, or nil if e is not live or has no T.
//
// The pointer is only valid until the next Emplace, Remove or DestroyEntity
// that touches the T set; do not hold it across those calls.
func Get[T any](m *Manager, e Entity) *T {
	if !m.IsEntityCreated(e) {
		return nil
	}
	set := setFor[T](m, false)
	if set == nil {
		return nil
	}
	return set.Get(e.Slot())
}

// Remove detaches e's T component. Returns false if e is not live or has no T.
func Remove[T any](m *Manager, e Entity) bool {
	if !m.IsEntityCreated(e) {
		return false
	}
	set := setFor[T](m, false)
	return set != nil && set.Remove(e.Slot())
}

// Set returns the storage for T, or nil if no T has been attached yet.
func Set[T any](m *Manager) *SparseSet[T] {
	return setFor[T](m, false)
}

func setFor[T any](m *Manager, create bool) *SparseSet[T] {
	id := TypeIDOf[T]()
	raw, ok := m.sets.Get(id)
	if !ok {
		if !create {
			return nil
		}
		set := NewSparseSet[T]()
		m.sets.Put(id, set)
		m.setOrder = append(m.setOrder, set)
		return set
	}

	set, ok := raw.(*SparseSet[T])
	if !ok || set.TypeID() != id {
		panic(eris.Wrapf(ErrTypeMismatch, "set for %s holds %T", TypeName(id), raw))
	}
	return set
}
