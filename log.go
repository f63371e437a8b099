package ecpps

import (
	"github.com/rs/zerolog"
)

func loadComponentIntoArrayLogger(info ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Uint32("component_id", info.ID)
	dictLogger = dictLogger.Str("component_name", info.Name)
	return arrayLogger.Dict(dictLogger)
}

func (w *World) loadComponentsToEvent(event *zerolog.Event) *zerolog.Event {
	components := w.RegisteredComponents()
	event.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return event.Array("components", arrayLogger)
}

func (w *World) loadSystemsToEvent(event *zerolog.Event) *zerolog.Event {
	event.Int("total_systems", len(w.systemNames)+len(w.renderSystemNames))
	arrayLogger := zerolog.Arr()
	for _, name := range w.systemNames {
		arrayLogger = arrayLogger.Str(name)
	}
	event.Array("systems", arrayLogger)
	renderArrayLogger := zerolog.Arr()
	for _, name := range w.renderSystemNames {
		renderArrayLogger = renderArrayLogger.Str(name)
	}
	return event.Array("render_systems", renderArrayLogger)
}

// LogState logs everything about the world at the given level: registered
// components, both system lists, and the live entity count.
func (w *World) LogState(level zerolog.Level) {
	event := w.Logger.WithLevel(level)
	event = w.loadComponentsToEvent(event)
	event = w.loadSystemsToEvent(event)
	event.Int("total_entities", w.entities.liveCount())
	event.Send()
}

// systemLogger derives a sub-logger carrying the running system's name.
func systemLogger(logger zerolog.Logger, systemName string) zerolog.Logger {
	return logger.With().Str("system", systemName).Logger()
}
