package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"whiteboard-backend/internal/middleware"
	"whiteboard-backend/internal/models"

	"github.com/google/uuid"
)

// dispatch decodes one wire frame and routes it to the room coordinator.
// Malformed frames are dropped with the connection left intact - a bad
// client must never take down its room or the other members.
func (c *Client) dispatch(ctx context.Context, frame []byte) {
	var env models.Envelope
	if err := json.Unmarshal(frame, &env); err != nil || env.Event == "" {
		c.dropMalformed(ctx, "frame", err)
		return
	}
	c.hub.met.EventsTotal.WithLabelValues(env.Event).Inc()

	if env.Event == models.EventJoinRoom {
		c.handleJoin(ctx, env.Data)
		return
	}

	// Everything below needs room membership; early traffic is ignored.
	if c.group == nil {
		return
	}

	switch env.Event {
	case models.EventCanvasState:
		var snap string
		if err := json.Unmarshal(env.Data, &snap); err != nil {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		c.group.coord.ApplySnapshot(snap)
		c.hub.met.SnapshotBytes.Observe(float64(len(snap)))
		c.rebroadcast(models.EventCanvasState, snap)

	case models.EventUndo:
		if snap, ok := c.group.coord.Undo(); ok {
			c.rebroadcast(models.EventCanvasState, snap)
		}

	case models.EventRedo:
		if snap, ok := c.group.coord.Redo(); ok {
			c.rebroadcast(models.EventCanvasState, snap)
		}

	case models.EventClear:
		c.group.coord.Clear()
		c.rebroadcast(models.EventClear, nil)

	case models.EventNoteCreate:
		var note models.StickyNote
		if err := json.Unmarshal(env.Data, &note); err != nil {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		if _, err := uuid.Parse(note.ID); err != nil {
			c.dropMalformed(ctx, env.Event, fmt.Errorf("note id %q: %w", note.ID, err))
			return
		}
		c.group.coord.CreateNote(note)
		c.rebroadcast(models.EventNoteCreate, note)

	case models.EventNoteMove:
		var mv models.NoteMove
		if err := json.Unmarshal(env.Data, &mv); err != nil || mv.ID == "" {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		// Unknown ids are expected delete races; rebroadcast verbatim
		// either way and let receivers no-op the same way we did.
		c.group.coord.MoveNote(mv.ID, mv.Position)
		c.rebroadcast(models.EventNoteMove, mv)

	case models.EventNoteUpdateText:
		var nt models.NoteText
		if err := json.Unmarshal(env.Data, &nt); err != nil || nt.ID == "" {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		c.group.coord.UpdateNoteText(nt.ID, nt.Text)
		c.rebroadcast(models.EventNoteUpdateText, nt)

	case models.EventNoteDelete:
		var id string
		if err := json.Unmarshal(env.Data, &id); err != nil || id == "" {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		c.group.coord.DeleteNote(id)
		c.rebroadcast(models.EventNoteDelete, id)

	case models.EventCursorMove:
		var cm models.CursorMove
		if err := json.Unmarshal(env.Data, &cm); err != nil {
			c.dropMalformed(ctx, env.Event, err)
			return
		}
		cur := c.group.coord.MoveCursor(c.ID, cm.X, cm.Y, cm.Username)
		c.rebroadcast(models.EventCursorMove, cur)

	default:
		log.Printf("connection %s sent unknown event %q", c.ID, env.Event)
	}
}

// handleJoin moves the client into the requested room: implicit leave of any
// previous room, subscribe, unicast the initial-sync state, and announce the
// new user list to everyone else.
func (c *Client) handleJoin(ctx context.Context, data json.RawMessage) {
	var req models.JoinRoom
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		c.dropMalformed(ctx, models.EventJoinRoom, err)
		return
	}
	if req.Username == "" {
		req.Username = "Anonymous"
	}

	c.leaveRoom()

	g := c.hub.join(c, req.RoomID)
	c.group = g
	c.username = req.Username

	state, users := g.coord.Join(c.ID, req.Username)
	c.unicast(models.EventLoadInitialState, state)
	c.rebroadcast(models.EventRoomUsersUpdate, users)

	log.Printf("connection %s joined room %s as %q (total: %d users)",
		c.ID, req.RoomID, req.Username, len(users))
}

// leaveRoom runs the implicit-leave sequence: drop presence and cursor,
// notify the remaining members, and destroy the room if nobody is left.
// Safe to call with no current room.
func (c *Client) leaveRoom() {
	g := c.group
	if g == nil {
		return
	}
	c.group = nil

	users, present := g.coord.Leave(c.ID)
	log.Printf("connection %s (%q) left room %s (remaining: %d users)",
		c.ID, c.username, g.coord.ID, len(users))

	if died := g.remove(c); died {
		c.hub.drop(g.coord.ID, g)
		return
	}
	if present {
		g.broadcastEvent(models.EventRoomUsersUpdate, users, nil)
		g.broadcastEvent(models.EventUserLeft, c.ID, nil)
	}
}

func (c *Client) dropMalformed(ctx context.Context, what string, err error) {
	c.hub.met.MalformedTotal.Inc()
	if err != nil {
		middleware.AddSpanError(ctx, err)
	}
	log.Printf("dropping malformed %s from connection %s: %v", what, c.ID, err)
}
