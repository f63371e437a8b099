package ecpps

import (
	"github.com/TheBitDrifter/mask"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"
)

type snapshotRow struct {
	Entity EntityID        `json:"entity"`
	Data   json.RawMessage `json:"data"`
}

type snapshotStore struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Rows   []snapshotRow   `json:"rows"`
}

type snapshotEntities struct {
	NextID uint32     `json:"next_id"`
	Free   []EntityID `json:"free"`
	Live   []EntityID `json:"live"`
}

type snapshot struct {
	WorldID  string           `json:"world_id"`
	Entities snapshotEntities `json:"entities"`
	Stores   []snapshotStore  `json:"stores"`
}

// Snapshot captures the full world state as bytes: the entity registry
// (counter, recycle pool, live set) and every store's rows in dense order,
// each store tagged with its component schema. What to do with the bytes is
// the host's business; the world owns no file format.
func (w *World) Snapshot() ([]byte, error) {
	snap := snapshot{
		WorldID: w.cfg.EcppsWorldID,
		Entities: snapshotEntities{
			NextID: uint32(w.entities.nextID),
			Free:   append([]EntityID(nil), w.entities.free...),
			Live:   w.entities.liveIDs(),
		},
	}
	for _, st := range w.registry.ordered {
		if st.isLocked() {
			return nil, eris.Wrapf(ErrStoreLocked, "cannot snapshot store %s", st.componentName())
		}
		sstore := snapshotStore{
			Name:   st.componentName(),
			Schema: st.componentSchema(),
			Rows:   make([]snapshotRow, 0, st.length()),
		}
		for _, id := range st.denseEntities() {
			data, err := st.encodeEntity(id)
			if err != nil {
				return nil, err
			}
			sstore.Rows = append(sstore.Rows, snapshotRow{Entity: id, Data: data})
		}
		snap.Stores = append(snap.Stores, sstore)
	}
	bz, err := json.Marshal(snap)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode snapshot")
	}
	return bz, nil
}

// Restore replaces the world's state with a snapshot previously produced by
// Snapshot. Every component type present in the snapshot must already be
// registered (its store created via GetStore or AddComponent), and its
// current schema must match the one stored with the snapshot. Validation
// happens before any state is discarded.
func (w *World) Restore(bz []byte) error {
	var snap snapshot
	if err := json.Unmarshal(bz, &snap); err != nil {
		return eris.Wrap(err, "failed to decode snapshot")
	}

	for _, sstore := range snap.Stores {
		st, ok := w.registry.lookup(sstore.Name)
		if !ok {
			return eris.Wrapf(ErrComponentNotRegistered, "component %s", sstore.Name)
		}
		if st.isLocked() {
			return eris.Wrapf(ErrStoreLocked, "cannot restore store %s", sstore.Name)
		}
		ok, err := isSchemaValid(sstore.Schema, st.componentSchema())
		if err != nil {
			return err
		}
		if !ok {
			return eris.Wrapf(ErrComponentSchemaMismatch, "component %s", sstore.Name)
		}
	}

	for _, st := range w.registry.ordered {
		st.reset()
	}
	// Operations queued against the old state must not land on the new one.
	w.ops.reset()
	w.registry.masks = make(map[EntityID]mask.Mask)
	w.entities.nextID = EntityID(snap.Entities.NextID)
	w.entities.free = append([]EntityID(nil), snap.Entities.Free...)
	w.entities.live = make(map[EntityID]struct{}, len(snap.Entities.Live))
	for _, id := range snap.Entities.Live {
		w.entities.live[id] = struct{}{}
	}

	for _, sstore := range snap.Stores {
		st, _ := w.registry.lookup(sstore.Name)
		for _, row := range sstore.Rows {
			if err := st.decodeEntity(row.Entity, row.Data); err != nil {
				return err
			}
			w.registry.mark(row.Entity, st.componentBit())
		}
	}
	w.Logger.Info().
		Int("total_entities", w.entities.liveCount()).
		Int("total_stores", len(snap.Stores)).
		Msg("world state restored")
	return nil
}

// isSchemaValid reports whether two component JSON schemas are equivalent.
func isSchemaValid(a, b json.RawMessage) (bool, error) {
	patch, err := jsondiff.CompareJSON(a, b)
	if err != nil {
		return false, eris.Wrap(err, "failed to compare component schemas")
	}
	return patch.String() == "", nil
}
