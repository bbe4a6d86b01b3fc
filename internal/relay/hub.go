package relay

import (
	"log"
	"sync"

	"whiteboard-backend/internal/board"
	"whiteboard-backend/internal/metrics"
	"whiteboard-backend/internal/models"
)

/*
EVENT RELAY HUB

The hub owns the live rooms. It routes each join to the right room
coordinator, creates rooms lazily on first join, and tears a room down the
moment its last member leaves - no grace period, no persistence.

Locking is two-level: the hub lock guards only the roomID -> group table,
while every group has its own lock for its member set and relies on the
coordinator's lock for state. Independent rooms therefore never contend.
*/

// Options tunes per-connection buffering.
type Options struct {
	// SendBuffer is the per-client outbound queue length (frames).
	SendBuffer int
	// MaxMessageBytes caps inbound frame size; snapshots are whole-canvas
	// rasters, so this is orders of magnitude above a chat-style limit.
	MaxMessageBytes int64
}

func (o *Options) withDefaults() {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 256
	}
	if o.MaxMessageBytes <= 0 {
		o.MaxMessageBytes = 8 << 20
	}
}

// Hub manages all connections and the rooms they are subscribed to.
type Hub struct {
	opts Options
	met  *metrics.Metrics

	mu    sync.RWMutex
	rooms map[string]*group

	cmu     sync.Mutex
	clients map[*Client]bool
	closed  bool
}

// group pairs one room coordinator with its broadcast members.
type group struct {
	coord *board.Room

	mu      sync.Mutex
	members map[*Client]bool
	closed  bool
}

// NewHub creates an empty hub.
func NewHub(opts Options, met *metrics.Metrics) *Hub {
	opts.withDefaults()
	return &Hub{
		opts:    opts,
		met:     met,
		rooms:   make(map[string]*group),
		clients: make(map[*Client]bool),
	}
}

// join subscribes the client to the room, creating it on first join. It
// retries when it races the teardown of a dying group with the same id.
func (h *Hub) join(c *Client, roomID string) *group {
	for {
		g := h.getOrCreate(roomID)
		if g.add(c) {
			return g
		}
	}
}

func (h *Hub) getOrCreate(roomID string) *group {
	h.mu.RLock()
	g, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if ok {
		return g
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if g, ok = h.rooms[roomID]; ok {
		return g
	}
	g = &group{coord: board.NewRoom(roomID), members: make(map[*Client]bool)}
	h.rooms[roomID] = g
	h.met.RoomsOpen.Inc()
	log.Printf("room %s created", roomID)
	return g
}

// drop removes a dead group from the table. The group pointer is compared so
// a freshly recreated room under the same id is left alone.
func (h *Hub) drop(roomID string, g *group) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == g {
		delete(h.rooms, roomID)
		h.met.RoomsOpen.Dec()
		log.Printf("room %s destroyed (last member left)", roomID)
	}
}

// RoomStats returns occupancy stats for a live room.
func (h *Hub) RoomStats(roomID string) (board.Stats, bool) {
	h.mu.RLock()
	g, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return board.Stats{}, false
	}
	return g.coord.Stats(), true
}

// attach registers a freshly upgraded connection. It reports false once the
// hub is shutting down so the handler can refuse the socket.
func (h *Hub) attach(c *Client) bool {
	h.cmu.Lock()
	defer h.cmu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = true
	h.met.ConnectionsOpen.Inc()
	return true
}

// detach forgets a connection and releases its send queue.
func (h *Hub) detach(c *Client) {
	h.cmu.Lock()
	defer h.cmu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.met.ConnectionsOpen.Dec()
}

// Shutdown closes every open connection. Each read pump then runs its normal
// implicit-leave teardown, emptying and destroying the rooms.
func (h *Hub) Shutdown() {
	log.Println("🛑 Shutting down relay hub...")

	h.cmu.Lock()
	h.closed = true
	open := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		open = append(open, c)
	}
	h.cmu.Unlock()

	for _, c := range open {
		c.conn.Close()
	}

	log.Printf("✓ Relay hub shutdown complete (%d connections closed)", len(open))
}

// add subscribes a member; it fails on a group already marked dead.
func (g *group) add(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.members[c] = true
	return true
}

// remove unsubscribes a member and reports whether the group just died.
// A dying group is marked closed under its own lock so a concurrent join
// cannot slip into a room the hub is about to drop.
func (g *group) remove(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.members, c)
	if len(g.members) == 0 {
		g.closed = true
		return true
	}
	return false
}

// broadcast queues a frame for every member except skip. A member whose send
// buffer is full is cut loose: the frame is dropped for it and its connection
// is closed so the read pump runs the normal teardown.
func (g *group) broadcast(frame []byte, skip *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for m := range g.members {
		if m == skip {
			continue
		}
		select {
		case m.send <- frame:
		default:
			log.Printf("⚠️  connection %s send buffer full, closing", m.ID)
			go m.conn.Close()
		}
	}
}

// broadcastEvent encodes and fans out an event to every member except skip.
func (g *group) broadcastEvent(event string, data any, skip *Client) {
	frame, err := models.Encode(event, data)
	if err != nil {
		log.Printf("encode %s for room %s: %v", event, g.coord.ID, err)
		return
	}
	g.broadcast(frame, skip)
}
