// Package logger provides the process-wide structured logger backed by zerolog.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	instance = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init configures the logger from the given level and environment. Pretty
// console output is used in development, plain JSON everywhere else.
func Init(level string, pretty bool) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	out := zerolog.New(os.Stdout)
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	instance = out.Level(parseLevel(level)).With().Timestamp().Logger()
	return instance
}

// Get returns the configured logger. Before Init it returns a JSON logger at
// the default level, so library code and tests can log without setup.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
