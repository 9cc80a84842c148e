package resolver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// AudioCache downloads and caches audio clips by URL, so a repeated
// DANGER/CAUTION decision with the same audio_url doesn't re-fetch it
// every poll. One download in flight at a time per resolver process,
// rate-limited to be a polite client to whatever is serving the clips.
type AudioCache struct {
	dir     string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
}

// NewAudioCache builds a cache rooted at dir, which must already exist
// or be creatable.
func NewAudioCache(dir string, timeout time.Duration) *AudioCache {
	return &AudioCache{
		dir:     dir,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		// One download per 5 seconds, burst of 1: this only ever
		// downloads on an audio_url change, so bursts aren't expected.
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

// Fetch returns the local path to audioURL's cached content, downloading
// it first if not already present.
func (c *AudioCache) Fetch(ctx context.Context, audioURL string) (string, error) {
	if audioURL == "" {
		return "", fmt.Errorf("empty audio url")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache dir: %w", err)
	}

	dest := filepath.Join(c.dir, cacheKey(audioURL))
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		return dest, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	logging.Info().Str("url", audioURL).Msg("downloading audio clip")
	if err := c.download(ctx, audioURL, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (c *AudioCache) download(ctx context.Context, audioURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return fmt.Errorf("build audio request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("audio download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("audio endpoint returned %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read audio body: %w", err)
	}
	if err := procfile.WriteAtomic(dest, body, 0o644); err != nil {
		return fmt.Errorf("write audio cache: %w", err)
	}
	return nil
}

func cacheKey(audioURL string) string {
	sum := sha1.Sum([]byte(audioURL))
	return hex.EncodeToString(sum[:]) + filepath.Ext(audioURL)
}
