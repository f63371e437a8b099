package ecpps

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// WorldConfig holds environment-sourced settings for a World. Fields map to
// snake-cased environment variables (ECPPS_WORLD_ID and so on).
type WorldConfig struct {
	// EcppsWorldID tags every log line produced by the world. Defaults to a
	// fresh UUID per world.
	EcppsWorldID string

	// EcppsLogLevel is a zerolog level string ("debug", "info", ...).
	EcppsLogLevel string

	// EcppsLogPretty switches to human-readable console output.
	EcppsLogPretty bool
}

func loadWorldConfig() (WorldConfig, error) {
	var cfg WorldConfig
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load world config from environment")
	}
	if cfg.EcppsWorldID == "" {
		cfg.EcppsWorldID = uuid.NewString()
	}
	if cfg.EcppsLogLevel == "" {
		cfg.EcppsLogLevel = zerolog.InfoLevel.String()
	}
	return cfg, nil
}

func (c WorldConfig) logLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.EcppsLogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", c.EcppsLogLevel)
	}
	return level, nil
}
