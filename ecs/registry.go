package ecs

import (
	"reflect"
	"sync"
)

// TypeID identifies a component type for the lifetime of the process.
type TypeID uint32

var typeRegistry = struct {
	sync.RWMutex
	ids   map[reflect.Type]TypeID
	types []reflect.Type
}{
	ids: make(map[reflect.Type]TypeID),
}

// TypeIDOf returns the TypeID for T, assigning the next unused id the first
// time T is seen. Ids start at 1 and are never reused.
func TypeIDOf[T any]() TypeID {
	return typeIDFor(reflect.TypeFor[T]())
}

func typeIDFor(t reflect.Type) TypeID {
	typeRegistry.RLock()
	id, ok := typeRegistry.ids[t]
	typeRegistry.RUnlock()
	if ok {
		return id
	}

	typeRegistry.Lock()
	defer typeRegistry.Unlock()

	if id, ok := typeRegistry.ids[t]; ok {
		return id
	}

	typeRegistry.types = append(typeRegistry.types, t)
	id = TypeID(len(typeRegistry.types))
	typeRegistry.ids[t] = id
	return id
}

// TypeName returns the Go type name registered under id, or "" if id was
// never assigned.
func TypeName(id TypeID) string {
	typeRegistry.RLock()
	defer typeRegistry.RUnlock()

	if id == 0 || int(id) > len(typeRegistry.types) {
		return ""
	}
	return typeRegistry.types[id-1].String()
}
