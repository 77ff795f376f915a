package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects the resolved run configuration and emits one
// structured event before any model spend, so a run's exact setup can be
// reconstructed from its log alone.
type StartupLogger struct {
	name         string
	initDuration time.Duration

	folders  map[string]string
	config   map[string]string
	features map[string]bool
}

// NewStartupLogger creates a StartupLogger for the given tool name.
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:     name,
		folders:  make(map[string]string),
		config:   make(map[string]string),
		features: make(map[string]bool),
	}
}

// Folder registers a storage folder used by this run.
func (s *StartupLogger) Folder(label, id string) *StartupLogger {
	s.folders[label] = id
	return s
}

// Config registers a non-sensitive configuration key-value pair.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// Feature registers a boolean feature flag.
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// InitDuration records how long setup took before the run started.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// EnvOrDefault returns the value of the named environment variable, or
// defaultVal if the variable is empty or unset.
func EnvOrDefault(envVar, defaultVal string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultVal
}

// Log emits a single structured INFO event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info().Dict("tool", zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv("CAROUSEL_LOG_LEVEL")))

	if len(s.folders) > 0 {
		evt = evt.Dict("folders", dictFromMap(s.folders))
	}
	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}
	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}
	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Run setup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
