package api

import (
	"encoding/json"
	"net/http"

	"whiteboard-backend/internal/relay"

	"github.com/gorilla/mux"
)

// Handler handles the HTTP surface around the relay: health, room occupancy
// stats for the UI, and the WebSocket entry point.
type Handler struct {
	hub *relay.Hub
	ws  *relay.Handler
}

func NewHandler(hub *relay.Hub, ws *relay.Handler) *Handler {
	return &Handler{hub: hub, ws: ws}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// RoomInfo reports read-only occupancy stats for a live room. Rooms exist
// only while they have members, so an unknown id is simply 404.
func (h *Handler) RoomInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["id"]

	stats, ok := h.hub.RoomStats(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"roomId": roomID,
		"stats":  stats,
	})
}

// HandleWebSocket upgrades the connection and hands it to the relay.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.ws.ServeWS(w, r)
}
