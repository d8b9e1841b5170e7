// Package logger holds the process-wide zerolog instance.
//
// Call Init exactly once during startup; components that cannot receive the
// logger through their constructor may fall back to Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the output format and verbosity at startup.
type Options struct {
	// Level names the minimum level to emit: trace, debug, info, warn,
	// error or fatal. Anything else means info.
	Level string
	// Pretty switches from JSON lines to a colored console format. Keep it
	// off outside local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the shared logger. Repeated calls keep the first configuration.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	instance = zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	ready = true
	return instance
}

// Get returns the shared logger and panics when Init has not run yet. The
// panic is deliberate: silently logging to a zero-value logger hides output.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get before Init")
	}
	return instance
}

// Reset discards the shared logger so tests can re-run Init.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
