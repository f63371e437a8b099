package ecpps

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// systemName derives a display name for a registered system from its
// concrete type. Names key duplicate detection and are injected into the
// logger while the system runs.
func systemName(sys System) string {
	t := reflect.TypeOf(sys)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// RegisterSystem registers a behavior unit and calls its Init exactly once,
// before it can ever receive an Update or Render call. The system is
// classified by capability: a RenderSystem joins the render list only, any
// other System joins the plain list only. Execution order within each list
// is registration order, and registration is append-only.
func (w *World) RegisterSystem(sys System) error {
	name := systemName(sys)
	if _, ok := w.systemsByName[name]; ok {
		return eris.Wrapf(ErrSystemAlreadyRegistered, "system %s", name)
	}

	if err := sys.Init(w); err != nil {
		return eris.Wrapf(err, "system %s failed to initialize", name)
	}

	w.systemsByName[name] = sys
	if rs, ok := sys.(RenderSystem); ok {
		w.renderSystems = append(w.renderSystems, rs)
		w.renderSystemNames = append(w.renderSystemNames, name)
	} else {
		w.systems = append(w.systems, sys)
		w.systemNames = append(w.systemNames, name)
	}

	w.Logger.Info().
		Str("system", name).
		Bool("render", isRenderSystem(sys)).
		Msg("system registered")
	return nil
}

func isRenderSystem(sys System) bool {
	_, ok := sys.(RenderSystem)
	return ok
}

// SystemNames returns the plain systems' names in execution order.
func (w *World) SystemNames() []string {
	names := make([]string, len(w.systemNames))
	copy(names, w.systemNames)
	return names
}

// RenderSystemNames returns the render systems' names in execution order.
func (w *World) RenderSystemNames() []string {
	names := make([]string, len(w.renderSystemNames))
	copy(names, w.renderSystemNames)
	return names
}
