// Package logging provides the zerolog-based structured logger shared by all
// five WaveAlert360 processes.
//
// Initialize once at process startup:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// then log through the package-level helpers or through a context-scoped
// logger obtained with Ctx(ctx).
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string

	// Format is the output format: json or console.
	Format string

	// Caller includes the calling file and line in each record.
	Caller bool

	// Output is the destination writer. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns sane defaults for production use.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Caller: false,
		Output: os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	initLogger(DefaultConfig())
}

// Init (re)configures the global logger. Safe to call more than once; the
// last call wins. Each of the five cmd/ entrypoints calls this once, right
// after loading configuration.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"

	output := cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	log = ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With starts a child-logger builder off the global logger.
func With() zerolog.Context {
	return Logger().With()
}

// WithComponent returns a logger tagged with a component field, one per
// process role (supervisor, updater, resolver, ledservice, dashboard).
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

func Debug() *zerolog.Event { mu.RLock(); defer mu.RUnlock(); return log.Debug() }
func Info() *zerolog.Event  { mu.RLock(); defer mu.RUnlock(); return log.Info() }
func Warn() *zerolog.Event  { mu.RLock(); defer mu.RUnlock(); return log.Warn() }
func Error() *zerolog.Event { mu.RLock(); defer mu.RUnlock(); return log.Error() }
func Fatal() *zerolog.Event { mu.RLock(); defer mu.RUnlock(); return log.Fatal() }

func Err(err error) *zerolog.Event { mu.RLock(); defer mu.RUnlock(); return log.Err(err) }

// NewTestLogger builds a logger writing to w, for use in tests that want to
// assert on log output.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
