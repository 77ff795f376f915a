package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger from the environment.
// CAROUSEL_LOG_LEVEL selects the level (debug, info, warn, error; default
// info); CAROUSEL_LOG_JSON=1 emits raw JSON instead of the console format,
// for runs driven from a scheduler.
func Init() {
	level, err := zerolog.ParseLevel(os.Getenv("CAROUSEL_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("CAROUSEL_LOG_JSON") == "1" {
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
