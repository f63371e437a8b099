package ecpps

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/rotisserie/eris"
)

// maxComponentTypes bounds the distinct component types a world can hold,
// matching the bit capacity of the entity membership masks.
const maxComponentTypes = 64

// storeRegistry lazily creates one store per distinct component type and is
// the fan-out point for whole-entity removal. Stores live for the world's
// lifetime; there is no way to drop one.
type storeRegistry struct {
	stores  map[string]anyStore
	types   map[string]reflect.Type
	ordered []anyStore
	nextBit uint32

	// per-entity component membership, keyed by the stores' bit indices
	masks map[EntityID]mask.Mask
}

func newStoreRegistry() *storeRegistry {
	return &storeRegistry{
		stores: make(map[string]anyStore),
		types:  make(map[string]reflect.Type),
		masks:  make(map[EntityID]mask.Mask),
	}
}

// lookup returns the store registered under name, if any.
func (r *storeRegistry) lookup(name string) (anyStore, bool) {
	st, ok := r.stores[name]
	return st, ok
}

// register installs a newly created store under its name token. The caller
// has already verified the token is free.
func (r *storeRegistry) register(name string, typ reflect.Type, st anyStore) {
	r.stores[name] = st
	r.types[name] = typ
	r.ordered = append(r.ordered, st)
	r.nextBit++
}

// claimBit reserves the next mask bit for a new component type.
func (r *storeRegistry) claimBit() (uint32, error) {
	if r.nextBit >= maxComponentTypes {
		return 0, eris.Wrapf(ErrTooManyComponentTypes, "limit is %d", maxComponentTypes)
	}
	return r.nextBit, nil
}

func (r *storeRegistry) maskOf(id EntityID) mask.Mask {
	return r.masks[id]
}

func (r *storeRegistry) mark(id EntityID, bit uint32) {
	m := r.masks[id]
	m.Mark(bit)
	r.masks[id] = m
}

func (r *storeRegistry) unmark(id EntityID, bit uint32) {
	m := r.masks[id]
	m.Unmark(bit)
	r.masks[id] = m
}

// bitMaskFor builds the membership mask for a set of component names.
// The second return is false if any name has no registered store yet.
func (r *storeRegistry) bitMaskFor(names ...string) (mask.Mask, bool) {
	var m mask.Mask
	complete := true
	for _, nm := range names {
		st, ok := r.stores[nm]
		if !ok {
			complete = false
			continue
		}
		m.Mark(st.componentBit())
	}
	return m, complete
}

// lockedFor reports whether any store currently holding id is mid-iteration.
func (r *storeRegistry) lockedFor(id EntityID) bool {
	m := r.masks[id]
	for _, st := range r.ordered {
		var own mask.Mask
		own.Mark(st.componentBit())
		if m.ContainsAll(own) && st.isLocked() {
			return true
		}
	}
	return false
}

// removeEntity broadcasts removal across every store holding id. Unlike a
// direct Remove on a single store, absence is not an error at this level;
// the membership mask skips stores that never held the entity.
func (r *storeRegistry) removeEntity(id EntityID) error {
	m := r.masks[id]
	for _, st := range r.ordered {
		var own mask.Mask
		own.Mark(st.componentBit())
		if !m.ContainsAll(own) {
			continue
		}
		if err := st.removeEntity(id); err != nil {
			if eris.Is(err, ErrComponentNotFound) {
				continue
			}
			return err
		}
	}
	delete(r.masks, id)
	return nil
}
