package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func readControlToken(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read control token: %v", err)
	}
	return string(data)
}

// fakeSink records every path it was asked to play instead of spawning a
// real player, so tests can assert playback happened without one.
type fakeSink struct {
	played []string
}

func (f *fakeSink) Play(ctx context.Context, path string) error {
	f.played = append(f.played, path)
	return nil
}

func TestDispatchSafeWithAudioURLPlaysIt(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("clip"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")
	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	sink := &fakeSink{}
	d := NewDispatcher(controlPath, cache, sink)

	decision := models.ResolverDecision{Level: models.AlertSafe, AudioURL: srv.URL + "/safe.mp3", Source: models.SourceLive}
	audioPath, err := d.Dispatch(t.Context(), decision)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if audioPath == "" {
		t.Error("expected a non-empty audio path for a SAFE decision carrying an audio_url")
	}
	if hits != 1 {
		t.Errorf("audio server hit %d times, want 1 for a SAFE decision with an audio_url", hits)
	}
	if len(sink.played) != 1 {
		t.Fatalf("sink.played = %v, want exactly one playback", sink.played)
	}
	if got := readControlToken(t, controlPath); got != string(models.PatternToken(models.AlertSafe)) {
		t.Errorf("control token = %q, want SAFE pattern token", got)
	}
}

func TestDispatchSafeWithoutAudioURLSkipsFetch(t *testing.T) {
	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")
	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	sink := &fakeSink{}
	d := NewDispatcher(controlPath, cache, sink)

	decision := models.ResolverDecision{Level: models.AlertSafe, Source: models.SourceLive}
	audioPath, err := d.Dispatch(t.Context(), decision)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if audioPath != "" {
		t.Errorf("audioPath = %q, want empty when no audio_url is set", audioPath)
	}
	if len(sink.played) != 0 {
		t.Errorf("sink.played = %v, want no playback when no audio_url is set", sink.played)
	}
	if got := readControlToken(t, controlPath); got != string(models.PatternToken(models.AlertSafe)) {
		t.Errorf("control token = %q, want SAFE pattern token", got)
	}
}

func TestDispatchDangerWithoutAudioURLSkipsFetch(t *testing.T) {
	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")
	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	d := NewDispatcher(controlPath, cache, &fakeSink{})

	decision := models.ResolverDecision{Level: models.AlertDanger, Source: models.SourceLive}
	audioPath, err := d.Dispatch(t.Context(), decision)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if audioPath != "" {
		t.Errorf("audioPath = %q, want empty when no audio_url is set", audioPath)
	}
	if got := readControlToken(t, controlPath); got != string(models.PatternToken(models.AlertDanger)) {
		t.Errorf("control token = %q, want DANGER pattern token", got)
	}
}

func TestDispatchDangerWithAudioURLWritesTokenBeforeFetching(t *testing.T) {
	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")

	var tokenAtRequestTime string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenAtRequestTime = readControlToken(t, controlPath)
		w.Write([]byte("clip-bytes"))
	}))
	defer srv.Close()

	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	sink := &fakeSink{}
	d := NewDispatcher(controlPath, cache, sink)

	decision := models.ResolverDecision{Level: models.AlertDanger, AudioURL: srv.URL + "/siren.mp3", Source: models.SourceLive}
	audioPath, err := d.Dispatch(t.Context(), decision)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if audioPath == "" {
		t.Error("expected a non-empty cached audio path for a DANGER decision with an audio_url")
	}
	if len(sink.played) != 1 || sink.played[0] != audioPath {
		t.Errorf("sink.played = %v, want exactly %q played", sink.played, audioPath)
	}
	want := string(models.PatternToken(models.AlertDanger))
	if tokenAtRequestTime != want {
		t.Errorf("control token at audio request time = %q, want %q written before the fetch", tokenAtRequestTime, want)
	}
}

func TestDispatchPropagatesAudioFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")
	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	d := NewDispatcher(controlPath, cache, &fakeSink{})

	decision := models.ResolverDecision{Level: models.AlertCaution, AudioURL: srv.URL + "/missing.mp3", Source: models.SourceLive}
	if _, err := d.Dispatch(t.Context(), decision); err == nil {
		t.Error("expected an error when the audio fetch fails")
	}
	if got := readControlToken(t, controlPath); got != string(models.PatternToken(models.AlertCaution)) {
		t.Errorf("control token = %q, want CAUTION pattern token even though the audio fetch failed", got)
	}
}

func TestDispatchPropagatesPlaybackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clip-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_token")
	cache := NewAudioCache(filepath.Join(dir, "audio"), 5*time.Second)
	d := NewDispatcher(controlPath, cache, failingSink{})

	decision := models.ResolverDecision{Level: models.AlertDanger, AudioURL: srv.URL + "/siren.mp3", Source: models.SourceLive}
	if _, err := d.Dispatch(t.Context(), decision); err == nil {
		t.Error("expected an error when playback fails")
	}
	if got := readControlToken(t, controlPath); got != string(models.PatternToken(models.AlertDanger)) {
		t.Errorf("control token = %q, want DANGER pattern token even though playback failed", got)
	}
}

type failingSink struct{}

func (failingSink) Play(ctx context.Context, path string) error {
	return os.ErrPermission
}
