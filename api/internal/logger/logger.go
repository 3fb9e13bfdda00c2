package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a sub-logger tagged with the given component name.
func New(component string) zerolog.Logger {
	return log.With().
		Str("component", component).
		Logger()
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if _, debug := os.LookupEnv("DEBUG"); debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
