package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	cycleIDKey contextKey = "cycle_id"
	loggerKey  contextKey = "logger"
)

// GenerateCycleID creates a short identifier for one poll/monitor cycle
// (resolver poll, updater check, supervisor tick), used to correlate the
// handful of log lines a single cycle emits.
func GenerateCycleID() string {
	return uuid.New().String()[:8]
}

// ContextWithCycleID attaches a cycle identifier to ctx.
func ContextWithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey, id)
}

// ContextWithNewCycleID attaches a freshly generated cycle identifier.
func ContextWithNewCycleID(ctx context.Context) context.Context {
	return ContextWithCycleID(ctx, GenerateCycleID())
}

// CycleIDFromContext returns the cycle identifier stored in ctx, or "".
func CycleIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(cycleIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored in ctx, falling back to the
// global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the cycle ID (if any) attached as a field.
//
//	logging.Ctx(ctx).Info().Msg("poll complete")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := LoggerFromContext(ctx).With().Logger()
	if id := CycleIDFromContext(ctx); id != "" {
		l = l.With().Str("cycle_id", id).Logger()
	}
	return &l
}
