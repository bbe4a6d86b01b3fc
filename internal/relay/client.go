package relay

import (
	"context"
	"log"
	"time"

	"whiteboard-backend/internal/middleware"
	"whiteboard-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong before the connection is dead.
	pongWait = 60 * time.Second
	// Ping period; must be less than pongWait.
	pingPeriod = 54 * time.Second
)

// Client is one WebSocket connection. The relay assigns it a KSUID at
// upgrade time; that id doubles as the user id in presence, cursors and
// user-left notices, and is never reused.
type Client struct {
	ID string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// Room membership. Touched only by the connection's own read pump, so
	// it needs no lock of its own.
	group    *group
	username string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   ksuid.New().String(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, hub.opts.SendBuffer),
	}
}

// readPump feeds inbound frames to the dispatcher. It owns the read side of
// the connection and runs the implicit-leave teardown when the connection
// drops, mid-room or not.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.leaveRoom()
		c.hub.detach(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.opts.MaxMessageBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("connection %s read error: %v", c.ID, err)
			}
			return
		}

		msgCtx, span := middleware.StartSpan(ctx, "Relay.Dispatch",
			attribute.String("connection.id", c.ID),
			attribute.Int("message.size", len(frame)),
		)
		c.dispatch(msgCtx, frame)
		span.End()
	}
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with pings. Writing from one goroutine per connection is what makes
// the gorilla connection safe to share with the broadcast path.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One envelope per frame; receivers parse frames whole.
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// unicast queues a frame for this client alone (load-initial-state).
func (c *Client) unicast(event string, data any) {
	frame, err := models.Encode(event, data)
	if err != nil {
		log.Printf("encode %s for connection %s: %v", event, c.ID, err)
		return
	}
	select {
	case c.send <- frame:
	default:
		log.Printf("⚠️  connection %s send buffer full on unicast, closing", c.ID)
		go c.conn.Close()
	}
}

// rebroadcast fans an event out to every other member of the client's room.
func (c *Client) rebroadcast(event string, data any) {
	c.group.broadcastEvent(event, data, c)
	c.hub.met.BroadcastsTotal.Inc()
}
