package ecpps

import (
	"fmt"
	"iter"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

var _ anyStore = &Store[noopComponent]{}

// Store is the per-type sparse-set container pairing a dense value array
// with a sparse entity index. Insert and lookup are O(1) amortized; removal
// is O(n) because it shifts the dense array to preserve iteration order.
//
// Pointers returned by Get and All are valid only until the next Insert or
// Remove on the same store.
type Store[T Component] struct {
	nm     string
	bit    uint32
	schema json.RawMessage

	dense  []T
	owners []EntityID
	sparse map[EntityID]int

	// lock depth; non-zero while All is mid-iteration
	locks int
}

func newStore[T Component](name string, bit uint32, schema json.RawMessage) *Store[T] {
	return &Store[T]{
		nm:     name,
		bit:    bit,
		schema: schema,
		sparse: make(map[EntityID]int),
	}
}

// Insert attaches a value to id. Ownership of the value transfers to the
// store. An entity may hold at most one component per type.
func (s *Store[T]) Insert(id EntityID, value T) error {
	if s.locks > 0 {
		return eris.Wrapf(ErrStoreLocked, "cannot insert %s for entity %d", s.nm, id)
	}
	if _, ok := s.sparse[id]; ok {
		return eris.Wrapf(ErrComponentAlreadyOnEntity, "component %s, entity %d", s.nm, id)
	}
	s.dense = append(s.dense, value)
	s.owners = append(s.owners, id)
	s.sparse[id] = len(s.dense) - 1
	return nil
}

// Remove detaches the component held by id. The element is removed from the
// dense array by shifting every later element down one slot, so the relative
// order of the survivors is preserved. Systems may rely on that order.
func (s *Store[T]) Remove(id EntityID) error {
	if s.locks > 0 {
		return eris.Wrapf(ErrStoreLocked, "cannot remove %s from entity %d", s.nm, id)
	}
	slot, ok := s.sparse[id]
	if !ok {
		return eris.Wrapf(ErrComponentNotFound, "component %s, entity %d", s.nm, id)
	}
	s.checkSlot(id, slot)

	copy(s.dense[slot:], s.dense[slot+1:])
	copy(s.owners[slot:], s.owners[slot+1:])
	var zero T
	s.dense[len(s.dense)-1] = zero
	s.dense = s.dense[:len(s.dense)-1]
	s.owners = s.owners[:len(s.owners)-1]
	delete(s.sparse, id)

	// Renumber every survivor that sat past the vacated slot.
	for i := slot; i < len(s.owners); i++ {
		s.sparse[s.owners[i]] = i
	}
	return nil
}

// Get returns a pointer to the component held by id. The pointer is
// invalidated by the next structural mutation on this store.
func (s *Store[T]) Get(id EntityID) (*T, error) {
	slot, ok := s.sparse[id]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "component %s, entity %d", s.nm, id)
	}
	s.checkSlot(id, slot)
	return &s.dense[slot], nil
}

// Has reports whether id currently holds this component type.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.sparse[id]
	return ok
}

// Len returns the number of entities holding this component type.
func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Entities returns the dense owner list in storage order. The slice aliases
// store internals and is only valid until the next structural mutation.
func (s *Store[T]) Entities() []EntityID {
	return s.owners
}

// All iterates the store in dense storage order. The store is locked for
// the duration of the loop: direct Insert/Remove calls against it fail with
// ErrStoreLocked until iteration ends. Mutating other stores is safe.
func (s *Store[T]) All() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		s.locks++
		defer func() { s.locks-- }()
		for i := 0; i < len(s.dense); i++ {
			if !yield(s.owners[i], &s.dense[i]) {
				return
			}
		}
	}
}

// checkSlot validates a sparse entry against the dense array. A mismatch
// means the index structure itself is broken, which is unrecoverable.
func (s *Store[T]) checkSlot(id EntityID, slot int) {
	if slot < 0 || slot >= len(s.owners) || s.owners[slot] != id {
		panic(fmt.Sprintf("ecpps: store %q corrupted: entity %d maps to slot %d (dense length %d)",
			s.nm, id, slot, len(s.owners)))
	}
}

// anyStore implementation, used by the registry for fan-out, diagnostics,
// and snapshots.

func (s *Store[T]) componentName() string            { return s.nm }
func (s *Store[T]) componentBit() uint32             { return s.bit }
func (s *Store[T]) componentSchema() json.RawMessage { return s.schema }
func (s *Store[T]) length() int                      { return len(s.dense) }
func (s *Store[T]) has(id EntityID) bool             { return s.Has(id) }
func (s *Store[T]) denseEntities() []EntityID        { return s.owners }
func (s *Store[T]) isLocked() bool                   { return s.locks > 0 }

func (s *Store[T]) removeEntity(id EntityID) error {
	return s.Remove(id)
}

func (s *Store[T]) encodeEntity(id EntityID) (json.RawMessage, error) {
	v, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return Encode(*v)
}

func (s *Store[T]) decodeEntity(id EntityID, raw json.RawMessage) error {
	v, err := Decode[T](raw)
	if err != nil {
		return err
	}
	return s.Insert(id, v)
}

func (s *Store[T]) reset() {
	s.dense = nil
	s.owners = nil
	s.sparse = make(map[EntityID]int)
}

// noopComponent exists only to pin the anyStore conformance check above.
type noopComponent struct{}

func (noopComponent) Name() string { return "noop" }
