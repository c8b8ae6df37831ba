package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

// Component returns a logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return zerolog.New(output).With().Timestamp().Str("component", name).Logger()
}

// SetLevel sets the global level from a name such as "debug" or "warn".
// Unknown names fall back to info.
func SetLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}
