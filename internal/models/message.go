package models

import (
	"encoding/json"
	"fmt"
)

/*
ROOM PROTOCOL

Every frame on the wire, in both directions, is a JSON envelope:

  {"event": "<name>", "data": <payload>}

Event names match the whiteboard client's socket taxonomy verbatim. Undo and
redo carry no payload; the server answers them with a canvas-state-update
broadcast carrying the snapshot now current.
*/

// Event names of the room protocol.
const (
	EventJoinRoom         = "join-room"
	EventLoadInitialState = "load-initial-state"
	EventRoomUsersUpdate  = "room-users-update"
	EventCanvasState      = "canvas-state-update"
	EventUndo             = "undo"
	EventRedo             = "redo"
	EventClear            = "clear"
	EventNoteCreate       = "note-create"
	EventNoteMove         = "note-move"
	EventNoteUpdateText   = "note-update-text"
	EventNoteDelete       = "note-delete"
	EventCursorMove       = "cursor-move"
	EventUserLeft         = "user-left"
)

// Envelope is the wire framing for every protocol message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinRoom is the payload of a join-room request.
type JoinRoom struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// InitialState is the unicast payload a client receives right after joining.
// CanvasState is null while the room is still on its blank seed snapshot.
type InitialState struct {
	Notes       []StickyNote `json:"notes"`
	CanvasState *string      `json:"canvasState"`
}

// NoteMove is the payload of a note-move event.
type NoteMove struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

// NoteText is the payload of a note-update-text event.
type NoteText struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CursorMove is the client-side payload of a cursor-move event. The relay
// adds the sender's connection id before fanning it out.
type CursorMove struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Username string  `json:"username"`
}

// Encode marshals an event and its payload into a wire frame. A nil payload
// produces an envelope with no data field (clear, undo, redo).
func Encode(event string, data any) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", event, err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
