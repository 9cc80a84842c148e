package resolver

import (
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestDetectHazardRipCurrentIsDanger(t *testing.T) {
	now := time.Now()
	resp := nwsAlertResponse{}
	resp.Features = append(resp.Features, struct {
		Properties struct {
			Event    string `json:"event"`
			Headline string `json:"headline"`
			Onset    string `json:"onset"`
			Expires  string `json:"expires"`
		} `json:"properties"`
	}{})
	resp.Features[0].Properties.Event = "Rip Current Statement"
	resp.Features[0].Properties.Onset = now.Add(-time.Hour).Format(time.RFC3339)
	resp.Features[0].Properties.Expires = now.Add(time.Hour).Format(time.RFC3339)

	if got := detectHazard(resp, now); got != models.AlertDanger {
		t.Errorf("detectHazard() = %v, want AlertDanger", got)
	}
}

func TestDetectHazardHighSurfIsCaution(t *testing.T) {
	now := time.Now()
	var resp nwsAlertResponse
	resp.Features = append(resp.Features, struct {
		Properties struct {
			Event    string `json:"event"`
			Headline string `json:"headline"`
			Onset    string `json:"onset"`
			Expires  string `json:"expires"`
		} `json:"properties"`
	}{})
	resp.Features[0].Properties.Event = "High Surf Advisory"
	resp.Features[0].Properties.Onset = now.Add(-time.Hour).Format(time.RFC3339)
	resp.Features[0].Properties.Expires = now.Add(time.Hour).Format(time.RFC3339)

	if got := detectHazard(resp, now); got != models.AlertCaution {
		t.Errorf("detectHazard() = %v, want AlertCaution", got)
	}
}

func TestDetectHazardExpiredAlertIgnored(t *testing.T) {
	now := time.Now()
	var resp nwsAlertResponse
	resp.Features = append(resp.Features, struct {
		Properties struct {
			Event    string `json:"event"`
			Headline string `json:"headline"`
			Onset    string `json:"onset"`
			Expires  string `json:"expires"`
		} `json:"properties"`
	}{})
	resp.Features[0].Properties.Event = "Rip Current Statement"
	resp.Features[0].Properties.Onset = now.Add(-3 * time.Hour).Format(time.RFC3339)
	resp.Features[0].Properties.Expires = now.Add(-1 * time.Hour).Format(time.RFC3339)

	if got := detectHazard(resp, now); got != models.AlertSafe {
		t.Errorf("detectHazard() with expired alert = %v, want AlertSafe", got)
	}
}

func TestDetectHazardNoMatchIsSafe(t *testing.T) {
	now := time.Now()
	var resp nwsAlertResponse
	resp.Features = append(resp.Features, struct {
		Properties struct {
			Event    string `json:"event"`
			Headline string `json:"headline"`
			Onset    string `json:"onset"`
			Expires  string `json:"expires"`
		} `json:"properties"`
	}{})
	resp.Features[0].Properties.Event = "Small Craft Advisory"

	if got := detectHazard(resp, now); got != models.AlertSafe {
		t.Errorf("detectHazard() = %v, want AlertSafe", got)
	}
}
