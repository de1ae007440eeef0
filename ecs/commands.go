package ecs

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Commands buffers structural changes so they can be applied to a Manager
// once no component pointers from Get are held any more.
type Commands struct {
	creates  []createCommand
	destroys []Entity
	emplaces []componentCommand
	removes  []componentCommand
	defers   []func()
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	then func(Entity)
}

type componentCommand struct {
	entity Entity
	apply  func(*Manager) error
}

// Create queues an entity creation. then, if not nil, receives the new entity
// during Flush.
func (c *Commands) Create(then func(Entity)) {
	c.creates = append(c.creates, createCommand{then: then})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// Defer queues a function to run after all other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// EmplaceLater queues attaching value as e's T component.
func EmplaceLater[T any](c *Commands, e Entity, value T) {
	c.emplaces = append(c.emplaces, componentCommand{
		entity: e,
		apply: func(m *Manager) error {
			if Emplace(m, e, value) {
				return nil
			}
			if !m.IsEntityCreated(e) {
				return eris.Wrapf(ErrStaleEntity, "emplace %s on %v", TypeName(TypeIDOf[T]()), e)
			}
			return eris.Wrapf(ErrDuplicateComponent, "emplace %s on %v", TypeName(TypeIDOf[T]()), e)
		},
	})
}

// RemoveLater queues detaching e's T component.
func RemoveLater[T any](c *Commands, e Entity) {
	c.removes = append(c.removes, componentCommand{
		entity: e,
		apply: func(m *Manager) error {
			if Remove[T](m, e) {
				return nil
			}
			if !m.IsEntityCreated(e) {
				return eris.Wrapf(ErrStaleEntity, "remove %s from %v", TypeName(TypeIDOf[T]()), e)
			}
			return eris.Wrapf(ErrNoComponent, "remove %s from %v", TypeName(TypeIDOf[T]()), e)
		},
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.emplaces) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to m and resets the buffer.
// Destroys run first, then removes, emplaces, creates and finally defers.
// Component commands aimed at an entity destroyed in the same flush are
// dropped. Every rejected command is reported in the returned error.
//
// Commands queued by Create callbacks or Defer functions during Flush stay
// pending for the next Flush.
func (c *Commands) Flush(m *Manager) error {
	creates, destroys, emplaces, removes, defers := c.creates, c.destroys, c.emplaces, c.removes, c.defers
	c.creates, c.destroys, c.emplaces, c.removes, c.defers = nil, nil, nil, nil, nil

	var errs []error
	destroyed := make(map[Entity]bool, len(destroys))

	for _, e := range destroys {
		if !m.DestroyEntity(e) {
			errs = append(errs, eris.Wrapf(ErrStaleEntity, "destroy %v", e))
			continue
		}
		destroyed[e] = true
	}

	for _, cmd := range removes {
		if destroyed[cmd.entity] {
			continue
		}
		if err := cmd.apply(m); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range emplaces {
		if destroyed[cmd.entity] {
			continue
		}
		if err := cmd.apply(m); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range creates {
		e := m.CreateEntity()
		if cmd.then != nil {
			cmd.then(e)
		}
	}

	for _, fn := range defers {
		fn()
	}

	return errors.Join(errs...)
}
