package resolver

import (
	"context"
	"fmt"

	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// Dispatcher writes the control token for the LED service and, whenever
// a decision carries an audio_url, fetches and plays the matching clip
// (including a SAFE decision with its own all-clear clip). The token is
// always written before the audio fetch begins: a reader of the control
// path must never observe lights lagging behind an audio cue that
// already started.
type Dispatcher struct {
	controlPath string
	audio       *AudioCache
	sink        AudioSink
}

// NewDispatcher builds a dispatcher writing to controlPath, fetching
// clips through audio and playing them through sink.
func NewDispatcher(controlPath string, audio *AudioCache, sink AudioSink) *Dispatcher {
	return &Dispatcher{controlPath: controlPath, audio: audio, sink: sink}
}

// Dispatch applies decision: writes the control token, then fetches and
// plays an audio clip if one is called for. The returned audio path is
// empty when no audio_url was supplied or when an error is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, decision models.ResolverDecision) (audioPath string, err error) {
	token := models.PatternToken(decision.Level)
	if err := procfile.WriteAtomicFallback(d.controlPath, []byte(token), 0o644); err != nil {
		return "", fmt.Errorf("dispatch control token: %w", err)
	}

	if decision.AudioURL == "" {
		return "", nil
	}

	path, err := d.audio.Fetch(ctx, decision.AudioURL)
	if err != nil {
		// The light pattern is already correct; audio is best-effort on
		// top of it.
		return "", fmt.Errorf("fetch audio for dispatch: %w", err)
	}

	if err := d.sink.Play(ctx, path); err != nil {
		return "", fmt.Errorf("play audio for dispatch: %w", err)
	}
	return path, nil
}
