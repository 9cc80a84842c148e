package dashboard

import (
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// handlers groups the read-only status endpoints. Every handler reads
// whatever file the owning process last wrote and never mutates state:
// the dashboard has no write path of its own.
type handlers struct {
	paths config.PathsConfig
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("failed to encode dashboard response")
	}
}

// ledStatus reads the LED service's last published status, returning
// the read error if it is missing or unreadable. Staleness is not
// checked: an old document is returned as-is.
func (h *handlers) ledStatus() (models.LEDServiceStatus, error) {
	var status models.LEDServiceStatus
	err := procfile.ReadJSON(h.paths.LEDStatus, &status)
	return status, err
}

func (h *handlers) handleLEDStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.ledStatus()
	if err != nil {
		writeJSON(w, http.StatusOK, models.LEDServiceStatus{})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *handlers) handleRestarts(w http.ResponseWriter, r *http.Request) {
	var records []models.RestartRecord
	if err := procfile.ReadJSON(h.paths.RestartState, &records); err != nil {
		writeJSON(w, http.StatusOK, []models.RestartRecord{})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *handlers) handleUpdateState(w http.ResponseWriter, r *http.Request) {
	var state models.UpdateState
	if err := procfile.ReadJSON(h.paths.UpdateState, &state); err != nil {
		writeJSON(w, http.StatusOK, models.UpdateState{})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *handlers) handleResolverDecision(w http.ResponseWriter, r *http.Request) {
	var decision models.ResolverDecision
	if err := procfile.ReadJSON(h.paths.LKGCache, &decision); err != nil {
		writeJSON(w, http.StatusOK, models.ResolverDecision{})
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

var statusPageTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>WaveAlert360 Status</title></head>
<body>
<h1>WaveAlert360</h1>
<p>Current level: <strong>{{.Level}}</strong> (source: {{.Source}})</p>
<p>LED hardware available: {{.HardwareAvailable}}</p>
<p>Last deployed commit: {{.CommitHash}}</p>
<p>Live updates over <code>/ws</code>.</p>
</body>
</html>
`))

type statusPageData struct {
	Level             models.AlertLevel
	Source            models.ResolverSource
	HardwareAvailable bool
	CommitHash        string
}

func (h *handlers) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	var decision models.ResolverDecision
	_ = procfile.ReadJSON(h.paths.LKGCache, &decision)
	var led models.LEDServiceStatus
	_ = procfile.ReadJSON(h.paths.LEDStatus, &led)
	var update models.UpdateState
	_ = procfile.ReadJSON(h.paths.UpdateState, &update)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := statusPageData{
		Level:             decision.Level,
		Source:            decision.Source,
		HardwareAvailable: led.HardwareAvailable,
		CommitHash:        update.CommitHash,
	}
	if err := statusPageTemplate.Execute(w, data); err != nil {
		logging.Err(err).Msg("failed to render dashboard status page")
	}
}

func (h *handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
