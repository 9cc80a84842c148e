package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wavealert360/internal/models"
)

// Hazard keyword lists: a DANGER-tier event name contains "rip
// current", a CAUTION-tier one contains "beach hazard" or "high surf".
// The device's full keyword list normally lives in an external settings
// file; these are the known-important terms worth matching without it.
var dangerKeywords = []string{"rip current"}
var cautionKeywords = []string{"beach hazard", "beach hazards", "high surf"}

// nwsAlertResponse is the minimal shape read out of api.weather.gov's
// /alerts/active endpoint.
type nwsAlertResponse struct {
	Features []struct {
		Properties struct {
			Event    string `json:"event"`
			Headline string `json:"headline"`
			Onset    string `json:"onset"`
			Expires  string `json:"expires"`
		} `json:"properties"`
	} `json:"features"`
}

// WeatherClient queries the National Weather Service's public alerts
// feed, used whenever the cloud fetch returns an error (an open circuit
// breaker included).
type WeatherClient struct {
	baseURL string
	http    *http.Client
}

// NewWeatherClient builds a fallback client.
func NewWeatherClient(baseURL string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Fetch retrieves active alerts for the given lat/lon point and converts
// the most severe matching hazard into a ResolverDecision. No matching
// hazard produces models.AlertSafe; a transport, status or decode
// failure returns an error instead of a decision.
func (w *WeatherClient) Fetch(ctx context.Context, lat, lon float64, now time.Time) (models.ResolverDecision, error) {
	endpoint := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", w.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ResolverDecision{}, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("User-Agent", "wavealert360-resolver")

	resp, err := w.http.Do(req)
	if err != nil {
		return models.ResolverDecision{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.ResolverDecision{}, fmt.Errorf("weather endpoint returned %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	}

	var parsed nwsAlertResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.ResolverDecision{}, fmt.Errorf("decode weather response: %w", err)
	}

	level := detectHazard(parsed, now)
	return models.ResolverDecision{
		Level:      level,
		Source:     models.SourceWeather,
		ObtainedAt: now,
		DeviceMode: "FALLBACK",
	}, nil
}

// detectHazard scans active, currently-in-effect alerts for the hazard
// keywords and returns the most severe level found.
func detectHazard(resp nwsAlertResponse, now time.Time) models.AlertLevel {
	highest := models.AlertSafe
	for _, f := range resp.Features {
		if !alertActive(f.Properties.Onset, f.Properties.Expires, now) {
			continue
		}
		event := strings.ToLower(f.Properties.Event + " " + f.Properties.Headline)
		if containsAny(event, dangerKeywords) {
			return models.AlertDanger
		}
		if containsAny(event, cautionKeywords) && highest == models.AlertSafe {
			highest = models.AlertCaution
		}
	}
	return highest
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// alertActive reports whether now falls within [onset, expires]. Either
// timestamp being unparsable is treated as "active" rather than
// discarding a possibly-real hazard over a formatting quirk.
func alertActive(onset, expires string, now time.Time) bool {
	if onset != "" {
		if t, err := time.Parse(time.RFC3339, onset); err == nil && now.Before(t) {
			return false
		}
	}
	if expires != "" {
		if t, err := time.Parse(time.RFC3339, expires); err == nil && now.After(t) {
			return false
		}
	}
	return true
}
