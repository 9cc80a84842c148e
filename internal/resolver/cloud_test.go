package resolver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/wavealert360/internal/models"
)

func TestCloudClientFetchDecodesValidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/alert/AA:BB:CC:DD:EE:FF" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"alert_level":"DANGER","audio_url":"https://example.com/a.mp3","device_mode":"LIVE"}`))
	}))
	defer srv.Close()

	client := NewCloudClient(srv.URL, 5*time.Second)
	resp, err := client.Fetch(t.Context(), models.DeviceIdentity{MACAddress: "AA:BB:CC:DD:EE:FF"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.AlertLevel != "DANGER" {
		t.Errorf("AlertLevel = %q, want DANGER", resp.AlertLevel)
	}

	decision := resp.Decision(time.Now())
	if decision.Level != models.AlertDanger || decision.Source != models.SourceLive {
		t.Errorf("Decision() = %+v, want DANGER/LIVE", decision)
	}
}

func TestCloudClientFetchRejectsInvalidAlertLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alert_level":"NOT_A_LEVEL"}`))
	}))
	defer srv.Close()

	client := NewCloudClient(srv.URL, 5*time.Second)
	if _, err := client.Fetch(t.Context(), models.DeviceIdentity{MACAddress: "AA:BB:CC:DD:EE:FF"}); err == nil {
		t.Error("expected an error for an invalid alert_level")
	}
}

func TestCloudClientFetchPropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewCloudClient(srv.URL, 5*time.Second)
	if _, err := client.Fetch(t.Context(), models.DeviceIdentity{MACAddress: "AA:BB:CC:DD:EE:FF"}); err == nil {
		t.Error("expected an error for a 503 response")
	}
}
