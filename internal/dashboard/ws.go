package dashboard

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/models"
	"github.com/tomtom215/wavealert360/internal/procfile"
)

// wsPollInterval is how often the feed re-reads the LED status file to
// detect a change worth pushing to connected clients.
const wsPollInterval = 1 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Status is non-sensitive and read-only; any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS pushes the LED service's current status to a single
// WebSocket client whenever it changes, polling the status file rather
// than subscribing to anything in-process since the LED service is a
// separate OS process.
func (h *handlers) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(wsPollInterval)
	defer ticker.Stop()

	var last models.LEDServiceStatus
	first := true

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			var current models.LEDServiceStatus
			if err := procfile.ReadJSON(h.paths.LEDStatus, &current); err != nil {
				continue
			}
			if !first && current == last {
				continue
			}
			first = false
			last = current

			if err := conn.WriteJSON(current); err != nil {
				return
			}
		}
	}
}
