package ecpps

import (
	"slices"
)

// entityRegistry owns entity ID allocation, recycling, and liveness. It
// never touches component stores; the World sequences cleanup around it.
type entityRegistry struct {
	nextID EntityID
	free   []EntityID
	live   map[EntityID]struct{}
}

func newEntityRegistry() *entityRegistry {
	return &entityRegistry{
		live: make(map[EntityID]struct{}),
	}
}

// create issues the most recently freed ID if any are available, otherwise
// the next unused counter value.
func (r *entityRegistry) create() EntityID {
	var id EntityID
	if n := len(r.free); n > 0 {
		id = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		id = r.nextID
		r.nextID++
	}
	r.live[id] = struct{}{}
	return id
}

func (r *entityRegistry) destroy(id EntityID) error {
	if _, ok := r.live[id]; !ok {
		return ErrEntityNotFound
	}
	delete(r.live, id)
	r.free = append(r.free, id)
	return nil
}

func (r *entityRegistry) isLive(id EntityID) bool {
	_, ok := r.live[id]
	return ok
}

func (r *entityRegistry) liveCount() int {
	return len(r.live)
}

// liveIDs returns the live set in ascending order for deterministic
// diagnostics and snapshots.
func (r *entityRegistry) liveIDs() []EntityID {
	ids := make([]EntityID, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
