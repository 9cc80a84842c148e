// Package resolver implements the alert resolver: each poll it obtains a
// ResolverDecision from the cloud (with weather-API fallback and an LKG
// cache behind that), dispatches a ControlToken to the LED service, and
// plays the matching audio.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wavealert360/internal/metrics"
	"github.com/tomtom215/wavealert360/internal/models"
)

// maxErrorBodySize bounds how much of a non-2xx response body is read
// for logging, to avoid unbounded memory use on a misbehaving endpoint.
const maxErrorBodySize = 64 * 1024

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// CloudResponse is the decoded shape of the cloud alert endpoint.
// Unknown fields are ignored by goccy/go-json by default; a missing
// alert_level normalizes to SAFE in Decision().
type CloudResponse struct {
	AlertLevel       string `json:"alert_level" validate:"omitempty,oneof=SAFE CAUTION DANGER DEMO"`
	LEDColor         string `json:"led_color"`
	AudioURL         string `json:"audio_url" validate:"omitempty,url"`
	DeviceMode       string `json:"device_mode" validate:"omitempty,oneof=LIVE TEST DEMO"`
	DemoPauseSeconds int    `json:"demo_pause_seconds"`
	Timestamp        string `json:"timestamp"`
}

// Decision converts a validated CloudResponse into a ResolverDecision.
func (r CloudResponse) Decision(now time.Time) models.ResolverDecision {
	source := models.SourceLive
	switch r.DeviceMode {
	case "TEST":
		source = models.SourceTest
	case "DEMO":
		source = models.SourceDemo
	}

	d := models.ResolverDecision{
		Level:      models.ParseAlertLevel(r.AlertLevel),
		AudioURL:   r.AudioURL,
		Source:     source,
		ObtainedAt: now,
		DeviceMode: r.DeviceMode,
	}
	if r.DemoPauseSeconds > 0 {
		d.DemoPause = time.Duration(r.DemoPauseSeconds) * time.Second
	}
	return d
}

var validate = validator.New()

// CloudClient calls the cloud alert endpoint through a circuit breaker
// so a degraded upstream fails fast instead of stacking up timeouts.
type CloudClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*CloudResponse]
}

// NewCloudClient builds a client. timeout bounds every request; keep it
// short (10s or less) so a stuck endpoint doesn't stall the poll loop.
func NewCloudClient(baseURL string, timeout time.Duration) *CloudClient {
	const name = "cloud-alert-endpoint"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[*CloudResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(bname string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(bname).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(bname, from.String(), to.String()).Inc()
		},
	})

	return &CloudClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Fetch calls GET {base}/api/alert/{device_identity} and returns the
// validated, decoded response.
func (c *CloudClient) Fetch(ctx context.Context, identity models.DeviceIdentity) (*CloudResponse, error) {
	result, err := c.breaker.Execute(func() (*CloudResponse, error) {
		return c.doFetch(ctx, identity)
	})

	name := "cloud-alert-endpoint"
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	case gobreaker.ErrOpenState == err || gobreaker.ErrTooManyRequests == err:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
	}
	return result, err
}

func (c *CloudClient) doFetch(ctx context.Context, identity models.DeviceIdentity) (*CloudResponse, error) {
	endpoint := fmt.Sprintf("%s/api/alert/%s", c.baseURL, url.PathEscape(identity.MACAddress))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build cloud request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloud request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloud endpoint returned %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}

	var parsed CloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode cloud response: %w", err)
	}
	if err := validate.Struct(parsed); err != nil {
		return nil, fmt.Errorf("invalid cloud response: %w", err)
	}

	return &parsed, nil
}
