package relay

import (
	"context"
	"log"
	"net/http"

	"whiteboard-backend/internal/middleware"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
)

// Handler upgrades HTTP requests into relay clients. The room itself is
// chosen by the client's first join-room message, not by the URL, matching
// the whiteboard client's socket flow.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates the WebSocket endpoint handler. An allowedOrigin of
// "*" accepts any origin.
func NewHandler(hub *Hub, allowedOrigin string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeWS upgrades the connection and starts its read/write pumps. The read
// and write sides run in separate goroutines so a slow reader can never
// deadlock the writer.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx, span := middleware.StartSpan(r.Context(), "Relay.Connect",
		attribute.String("remote.addr", r.RemoteAddr),
	)
	defer span.End()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		middleware.AddSpanError(ctx, err)
		return
	}

	client := newClient(h.hub, conn)
	if !h.hub.attach(client) {
		conn.Close()
		return
	}

	// The pumps outlive this handler, so they get a fresh root context
	// rather than the request's (which is cancelled on return).
	go client.writePump()
	go client.readPump(context.Background())

	log.Printf("✓ connection %s established (%s)", client.ID, r.RemoteAddr)
}
