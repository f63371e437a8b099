package ecpps

import (
	"github.com/TheBitDrifter/mask"
	"github.com/goccy/go-json"
)

// EntityID is an opaque handle for a live entity. The zero value is a valid
// ID. IDs are recycled after destruction, so a retained handle may refer to
// a later, unrelated entity once its owner has been destroyed.
type EntityID uint32

// Component is the interface component types must implement to be stored.
// Name is the stable identity token for the type: it keys the type's store
// and must be unique and reproducible across builds.
type Component interface {
	Name() string
}

// System is a behavior unit driven once per update cycle.
type System interface {
	// Init is called exactly once, at registration, before any Update.
	Init(w *World) error
	Update(w *World) error
}

// RenderSystem is a System that also participates in the presentation pass.
// Render-capable components may carry opaque handles (textures, surfaces);
// only a RenderSystem's Render hook ever dereferences them.
type RenderSystem interface {
	System
	Render(w *World) error
}

// QueryNode filters entities by their component membership mask.
type QueryNode interface {
	Evaluate(m mask.Mask, w *World) bool
}

// anyStore is the type-erased surface the registry uses to manage stores
// uniformly: destroy fan-out, diagnostics, and snapshots.
type anyStore interface {
	componentName() string
	componentBit() uint32
	componentSchema() json.RawMessage
	length() int
	has(id EntityID) bool
	denseEntities() []EntityID
	isLocked() bool
	removeEntity(id EntityID) error
	encodeEntity(id EntityID) (json.RawMessage, error)
	decodeEntity(id EntityID, raw json.RawMessage) error
	reset()
}
