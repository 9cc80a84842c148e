package resolver

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/tomtom215/wavealert360/internal/logging"
)

// AudioSink is the injectable playback boundary: play the file at path,
// synchronously, bounded by a timeout. Implementations never retry; a
// failed play is reported once and left to the next poll cycle.
type AudioSink interface {
	Play(ctx context.Context, path string) error
}

// PlayerSink shells out to an external player binary (mpg123, omxplayer,
// afplay, whatever the appliance image ships) for each clip.
type PlayerSink struct {
	command string
	timeout time.Duration
}

// NewPlayerSink builds a sink that runs command with path appended as
// its sole argument, killed if it outlives timeout.
func NewPlayerSink(command string, timeout time.Duration) *PlayerSink {
	return &PlayerSink{command: command, timeout: timeout}
}

func (p *PlayerSink) Play(ctx context.Context, path string) error {
	playCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(playCtx, p.command, path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play %q with %q: %w", path, p.command, err)
	}
	return nil
}

// SimulatedSink is used whenever no player command is configured or
// Config.Resolver.AudioSimulate is set; it logs the clip it would have
// played instead of spawning a process. Never treated as a fatal
// condition.
type SimulatedSink struct{}

// NewSimulatedSink builds a no-playback sink.
func NewSimulatedSink() *SimulatedSink { return &SimulatedSink{} }

func (s *SimulatedSink) Play(ctx context.Context, path string) error {
	logging.Debug().Str("path", path).Msg("simulated audio playback")
	return nil
}
