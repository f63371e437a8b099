package ecpps

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
)

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	Name   string          `json:"name"`
	ID     uint32          `json:"id"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

// GetStore returns the world's store for T, creating it on first use.
// Repeated calls return the same instance. The store's identity is the
// component's Name token, so two distinct Go types claiming the same name
// fail with ErrInvalidComponent.
func GetStore[T Component](w *World) (*Store[T], error) {
	var zero T
	nm := zero.Name()
	if nm == "" {
		return nil, eris.Wrapf(ErrInvalidComponent, "%T has an empty name", zero)
	}
	typ := reflect.TypeOf(zero)
	if st, ok := w.registry.lookup(nm); ok {
		if registered := w.registry.types[nm]; registered != typ {
			return nil, eris.Wrapf(ErrInvalidComponent,
				"name %q is registered to %v, not %v", nm, registered, typ)
		}
		return st.(*Store[T]), nil
	}

	bit, err := w.registry.claimBit()
	if err != nil {
		return nil, err
	}
	schema, err := serializeComponentSchema(zero)
	if err != nil {
		return nil, err
	}
	st := newStore[T](nm, bit, schema)
	w.registry.register(nm, typ, st)
	w.Logger.Debug().
		Str("component_name", nm).
		Uint32("component_id", bit).
		Msg("component store created")
	return st, nil
}

// AddComponent attaches value to id. The entity must be live and must not
// already hold a T.
func AddComponent[T Component](w *World, id EntityID, value T) error {
	if !w.entities.isLive(id) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	st, err := GetStore[T](w)
	if err != nil {
		return err
	}
	if err := st.Insert(id, value); err != nil {
		return err
	}
	w.registry.mark(id, st.bit)
	return nil
}

// RemoveComponent detaches T from id.
func RemoveComponent[T Component](w *World, id EntityID) error {
	st, err := lookupStore[T](w)
	if err != nil {
		return err
	}
	if err := st.Remove(id); err != nil {
		return err
	}
	w.registry.unmark(id, st.bit)
	return nil
}

// GetComponent returns a pointer to the T held by id. The pointer is valid
// only until the next structural mutation of T's store.
func GetComponent[T Component](w *World, id EntityID) (*T, error) {
	st, err := lookupStore[T](w)
	if err != nil {
		return nil, err
	}
	return st.Get(id)
}

// HasComponent reports whether id currently holds a T.
func HasComponent[T Component](w *World, id EntityID) bool {
	var zero T
	st, ok := w.registry.lookup(zero.Name())
	if !ok {
		return false
	}
	return st.has(id)
}

// lookupStore resolves T's store without creating it. A type whose store was
// never created cannot have components attached anywhere, so the absence
// maps to ErrComponentNotFound.
func lookupStore[T Component](w *World) (*Store[T], error) {
	var zero T
	nm := zero.Name()
	st, ok := w.registry.lookup(nm)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "component %s has no store", nm)
	}
	typed, ok := st.(*Store[T])
	if !ok {
		return nil, eris.Wrapf(ErrInvalidComponent,
			"name %q is registered to a different type", nm)
	}
	return typed, nil
}

// serializeComponentSchema captures the component's JSON schema at store
// creation. Snapshots embed it so saved state can be validated against the
// types registered at load time.
func serializeComponentSchema(component Component) (json.RawMessage, error) {
	schema, err := jsonschema.Reflect(component).MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return schema, nil
}
