package ecpps

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// World composes the entity registry, the per-type component stores, and
// the ordered system lists, and drives system execution each frame. A World
// is single threaded; the host loop owns call cadence and may interleave
// Update and Render freely.
type World struct {
	cfg    WorldConfig
	Logger zerolog.Logger

	entities *entityRegistry
	registry *storeRegistry
	ops      *opQueue

	systems           []System
	renderSystems     []RenderSystem
	systemNames       []string
	renderSystemNames []string
	systemsByName     map[string]System
}

// NewWorld creates an empty world. Configuration is read from the
// environment (see WorldConfig) and may be adjusted with options.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, err
	}
	level, err := cfg.logLevel()
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	if cfg.EcppsLogPretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	w := &World{
		cfg:           cfg,
		Logger:        logger,
		entities:      newEntityRegistry(),
		registry:      newStoreRegistry(),
		ops:           newOpQueue(),
		systemsByName: make(map[string]System),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Logger = w.Logger.With().Str("world_id", w.cfg.EcppsWorldID).Logger()
	return w, nil
}

// Config returns the world's resolved configuration.
func (w *World) Config() WorldConfig {
	return w.cfg
}

// CreateEntity issues a new entity ID, recycling the most recently freed ID
// when one is available.
func (w *World) CreateEntity() EntityID {
	id := w.entities.create()
	w.Logger.Debug().Uint32("entity_id", uint32(id)).Msg("entity created")
	return id
}

// DestroyEntity removes id from every component store, then returns the ID
// to the recycle pool. Cleanup strictly precedes the ID becoming reusable,
// so a recycled ID never resurfaces holding stale components.
//
// Destroying an entity held by a store that is mid-iteration fails with
// ErrStoreLocked before anything is removed; use EnqueueDestroyEntity from
// inside iteration instead.
func (w *World) DestroyEntity(id EntityID) error {
	if !w.entities.isLive(id) {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	if w.registry.lockedFor(id) {
		return eris.Wrapf(ErrStoreLocked, "cannot destroy entity %d", id)
	}
	if err := w.registry.removeEntity(id); err != nil {
		return err
	}
	if err := w.entities.destroy(id); err != nil {
		return err
	}
	w.Logger.Debug().Uint32("entity_id", uint32(id)).Msg("entity destroyed")
	return nil
}

// IsLive reports whether id refers to a currently live entity.
func (w *World) IsLive(id EntityID) bool {
	return w.entities.isLive(id)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.liveCount()
}

// Entities returns the live entity IDs in ascending order.
func (w *World) Entities() []EntityID {
	return w.entities.liveIDs()
}

// Update runs one behavior pass: every plain system in registration order,
// then every render system's update hook in registration order. Deferred
// operations drain at the boundary between the two phases and again after
// the pass, in submission order. The first system error stops the pass.
func (w *World) Update() error {
	base := w.Logger
	defer func() { w.Logger = base }()

	for i, sys := range w.systems {
		w.Logger = systemLogger(base, w.systemNames[i])
		if err := sys.Update(w); err != nil {
			return eris.Wrapf(err, "system %s errored during update", w.systemNames[i])
		}
	}
	w.Logger = base
	if err := w.ops.drain(w); err != nil {
		return err
	}
	for i, rs := range w.renderSystems {
		w.Logger = systemLogger(base, w.renderSystemNames[i])
		if err := rs.Update(w); err != nil {
			return eris.Wrapf(err, "system %s errored during update", w.renderSystemNames[i])
		}
	}
	w.Logger = base
	return w.ops.drain(w)
}

// Render runs one presentation pass: every render system in registration
// order. Deferred operations drain after the pass.
func (w *World) Render() error {
	base := w.Logger
	defer func() { w.Logger = base }()

	for i, rs := range w.renderSystems {
		w.Logger = systemLogger(base, w.renderSystemNames[i])
		if err := rs.Render(w); err != nil {
			return eris.Wrapf(err, "system %s errored during render", w.renderSystemNames[i])
		}
	}
	w.Logger = base
	return w.ops.drain(w)
}

// RegisteredComponents describes every component store in creation order.
func (w *World) RegisteredComponents() []ComponentInfo {
	infos := make([]ComponentInfo, 0, len(w.registry.ordered))
	for _, st := range w.registry.ordered {
		infos = append(infos, ComponentInfo{
			Name:   st.componentName(),
			ID:     st.componentBit(),
			Schema: st.componentSchema(),
		})
	}
	return infos
}

// DebugStateElement is one live entity with its components as raw JSON.
type DebugStateElement struct {
	ID         EntityID                   `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
}

// DebugState dumps the entire world state for inspection: every live
// entity with every component it holds.
func (w *World) DebugState() ([]DebugStateElement, error) {
	result := make([]DebugStateElement, 0, w.entities.liveCount())
	for _, id := range w.entities.liveIDs() {
		element := DebugStateElement{
			ID:         id,
			Components: make(map[string]json.RawMessage),
		}
		for _, st := range w.registry.ordered {
			if !st.has(id) {
				continue
			}
			data, err := st.encodeEntity(id)
			if err != nil {
				return nil, err
			}
			element.Components[st.componentName()] = data
		}
		result = append(result, element)
	}
	return result, nil
}
