package ecpps

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrEntityNotFound is returned when an operation references an entity
	// ID that is not currently live. Destroying an entity twice reports it.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotFound is returned when a get or remove references a
	// (type, entity) pair with no component attached.
	ErrComponentNotFound = eris.New("component not on entity")

	// ErrComponentAlreadyOnEntity is returned when a component type is
	// attached to an entity that already holds one.
	ErrComponentAlreadyOnEntity = eris.New("component already on entity")

	// ErrInvalidComponent is returned when a component type's name token is
	// unusable: empty, or already claimed by a different concrete type.
	ErrInvalidComponent = eris.New("invalid component type")

	// ErrComponentNotRegistered is returned when a snapshot references a
	// component type the world has never seen.
	ErrComponentNotRegistered = eris.New("must register component")

	// ErrComponentSchemaMismatch is returned when a snapshot's stored
	// component schema does not match the registered component type.
	ErrComponentSchemaMismatch = eris.New("registered component does not match the saved state")

	// ErrStoreLocked is returned when a structural mutation targets a store
	// that is currently being iterated. Use the Enqueue variants to defer
	// the mutation to the next phase boundary instead.
	ErrStoreLocked = eris.New("store is locked for iteration")

	// ErrSystemAlreadyRegistered is returned when a system with the same
	// name has already been registered.
	ErrSystemAlreadyRegistered = eris.New("system already registered")

	// ErrTooManyComponentTypes is returned when a world exceeds the number
	// of distinct component types its masks can index.
	ErrTooManyComponentTypes = eris.New("too many component types")
)
