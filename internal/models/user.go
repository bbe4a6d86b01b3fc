package models

// User represents a participant connected to a room.
// ID is the relay-assigned connection identifier (KSUID) and is never reused
// across connections; a user belongs to at most one room at a time.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	RoomID   string `json:"roomId,omitempty"`
}

// Cursor represents a user's live pointer position.
// Learning: this is ephemeral presence state - it is overwritten in place on
// every cursor-move, removed on disconnect, and never enters the undo history.
type Cursor struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Username string  `json:"username"`
}
