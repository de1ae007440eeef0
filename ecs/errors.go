package ecs

import "github.com/rotisserie/eris"

var (
	// ErrStaleEntity is reported for handles that are unknown or whose slot
	// has since been destroyed or reused.
	ErrStaleEntity = eris.New("entity is not live")

	// ErrDuplicateComponent is reported when a component type is attached to
	// an entity that already has one.
	ErrDuplicateComponent = eris.New("component already attached")

	// ErrNoComponent is reported when removing a component the entity does
	// not have.
	ErrNoComponent = eris.New("component not attached")

	// ErrTypeMismatch signals a set stored under the wrong TypeID. It is an
	// internal defect and is raised by panic, never returned.
	ErrTypeMismatch = eris.New("component set type mismatch")
)
