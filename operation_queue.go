package ecpps

import (
	"github.com/rotisserie/eris"
)

type operationType int

const (
	opNone operationType = iota
	opAddComponent
	opRemoveComponent
	opDestroyEntity
)

type opKey struct {
	entity    EntityID
	component string
}

type operation struct {
	typ       operationType
	entity    EntityID
	component string
	apply     func(w *World) error
}

// opQueue holds structural mutations raised while their target store was
// locked for iteration. Ops drain in submission order at the update/render
// phase boundaries. A pending destroy swallows later component ops for the
// same entity, and a later component op on the same (entity, type) replaces
// the earlier one.
type opQueue struct {
	ops            []operation
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() *opQueue {
	return &opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) enqueueComponentOp(typ operationType, id EntityID, component string, apply func(w *World) error) {
	if _, destroyed := q.pendingDestroy[id]; destroyed {
		return
	}
	key := opKey{entity: id, component: component}
	if idx, exists := q.pendingMods[key]; exists {
		q.ops[idx].typ = typ
		q.ops[idx].apply = apply
		return
	}
	q.pendingMods[key] = len(q.ops)
	q.ops = append(q.ops, operation{typ: typ, entity: id, component: component, apply: apply})
}

func (q *opQueue) enqueueDestroy(id EntityID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}

	// Cancel any pending component ops for the entity.
	for key, idx := range q.pendingMods {
		if key.entity == id {
			q.ops[idx].typ = opNone
			delete(q.pendingMods, key)
		}
	}
	q.ops = append(q.ops, operation{
		typ:    opDestroyEntity,
		entity: id,
		apply: func(w *World) error {
			if !w.entities.isLive(id) {
				return nil
			}
			return w.DestroyEntity(id)
		},
	})
}

func (q *opQueue) drain(w *World) error {
	if len(q.ops) == 0 {
		return nil
	}
	for i := 0; i < len(q.ops); i++ {
		op := q.ops[i]
		if op.typ == opNone {
			continue
		}
		// The entity may have been destroyed by an earlier op or directly
		// since this was queued.
		if op.typ != opDestroyEntity && !w.entities.isLive(op.entity) {
			w.Logger.Debug().
				Uint32("entity_id", uint32(op.entity)).
				Msg("dropping deferred op for dead entity")
			continue
		}
		if err := op.apply(w); err != nil {
			// Consume the applied prefix and the failed op so a retry
			// resumes with the survivors instead of re-applying them.
			q.keepFrom(i + 1)
			return eris.Wrap(err, "failed to apply deferred operation")
		}
	}
	q.reset()
	return nil
}

// keepFrom discards every op before index from and reindexes the pending
// maps over the survivors.
func (q *opQueue) keepFrom(from int) {
	q.ops = append(q.ops[:0], q.ops[from:]...)
	clear(q.pendingDestroy)
	clear(q.pendingMods)
	for i, op := range q.ops {
		switch op.typ {
		case opAddComponent, opRemoveComponent:
			q.pendingMods[opKey{entity: op.entity, component: op.component}] = i
		case opDestroyEntity:
			q.pendingDestroy[op.entity] = struct{}{}
		}
	}
}

// reset discards every pending operation.
func (q *opQueue) reset() {
	q.ops = q.ops[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// EnqueueAddComponent behaves like AddComponent, but defers the insert to
// the next phase boundary when T's store is locked for iteration.
func EnqueueAddComponent[T Component](w *World, id EntityID, value T) error {
	if !w.entities.isLive(id) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	st, err := GetStore[T](w)
	if err != nil {
		return err
	}
	if !st.isLocked() {
		return AddComponent(w, id, value)
	}
	w.ops.enqueueComponentOp(opAddComponent, id, st.nm, func(w *World) error {
		return AddComponent(w, id, value)
	})
	return nil
}

// EnqueueRemoveComponent behaves like RemoveComponent, but defers the
// removal to the next phase boundary when T's store is locked.
func EnqueueRemoveComponent[T Component](w *World, id EntityID) error {
	st, err := lookupStore[T](w)
	if err != nil {
		return err
	}
	if !st.isLocked() {
		return RemoveComponent[T](w, id)
	}
	w.ops.enqueueComponentOp(opRemoveComponent, id, st.nm, func(w *World) error {
		return RemoveComponent[T](w, id)
	})
	return nil
}

// EnqueueDestroyEntity behaves like DestroyEntity, but defers destruction
// to the next phase boundary when any store holding id is locked. Repeated
// enqueues for the same entity collapse into one destroy.
func (w *World) EnqueueDestroyEntity(id EntityID) error {
	if !w.entities.isLive(id) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	if !w.registry.lockedFor(id) {
		return w.DestroyEntity(id)
	}
	w.ops.enqueueDestroy(id)
	return nil
}
