package board

import (
	"sync"
	"time"

	"whiteboard-backend/internal/models"
)

/*
ROOM COORDINATOR

One Room owns all mutable state for one whiteboard room: the presence set,
the note collection and the canvas history. Every operation takes the room's
mutex, which turns the unordered events arriving from N client connections
into a single total order per room. Rooms never share a lock, so they scale
independently with room count.

Cursor moves go through the same mutex (they touch the presence maps) but
never touch the history, so high-frequency pointer traffic cannot bloat or
stall the undo stack.
*/

// Room is the authoritative, serially-accessed owner of one room's state.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	presence *Presence
	notes    *NoteRegistry
	history  *History
}

// Stats is a read-only occupancy summary of a room.
type Stats struct {
	Users        int `json:"users"`
	Notes        int `json:"notes"`
	HistoryLen   int `json:"historyLen"`
	HistoryIndex int `json:"historyIndex"`
}

// NewRoom creates an empty room. The history is seeded with a blank snapshot
// so that undoing the first stroke returns to an empty canvas.
func NewRoom(id string) *Room {
	r := &Room{
		ID:        id,
		CreatedAt: time.Now(),
		presence:  NewPresence(),
		notes:     NewNoteRegistry(),
		history:   NewHistory(),
	}
	r.history.Push(BlankSnapshot)
	return r
}

// Join adds the user to the room's presence and returns the initial-sync
// state for the joining client along with the updated user list for the
// room broadcast. CanvasState stays nil while the room is on the blank seed.
func (r *Room) Join(userID, username string) (models.InitialState, []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presence.Join(models.User{ID: userID, Username: username, RoomID: r.ID})

	state := models.InitialState{Notes: r.notes.All()}
	if snap, ok := r.history.Current(); ok && snap != BlankSnapshot {
		state.CanvasState = &snap
	}
	return state, r.presence.Users()
}

// Leave removes the user and their cursor, returning the updated user list
// and whether the user was actually present. Leaving twice is a no-op.
func (r *Room) Leave(userID string) ([]models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok := r.presence.Leave(userID)
	return r.presence.Users(), ok
}

// Empty reports whether the room has no members left.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.Empty()
}

// ApplySnapshot records a completed gesture: the whole-canvas snapshot is
// pushed onto the history (truncating any redo entries) and the new history
// index is returned. This is the only way canvas state changes.
func (r *Room) ApplySnapshot(snapshot string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Push(snapshot)
}

// Undo steps the history cursor back and returns the snapshot to broadcast.
// Reports false without side effects when already at the bottom.
func (r *Room) Undo() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Undo()
}

// Redo steps the history cursor forward and returns the snapshot to
// broadcast. Reports false without side effects when already at the tip.
func (r *Room) Redo() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Redo()
}

// Clear removes every note and pushes a fresh blank snapshot through the
// regular truncate-on-push rule, so clear itself is undoable.
func (r *Room) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes.Clear()
	r.history.Push(BlankSnapshot)
}

// CreateNote upserts a note. A duplicate id overwrites the existing note
// (last write wins).
func (r *Room) CreateNote(note models.StickyNote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes.Upsert(note)
}

// MoveNote updates a note's position; unknown ids are ignored.
func (r *Room) MoveNote(id string, pos models.Position) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notes.Move(id, pos)
}

// UpdateNoteText updates a note's text; unknown ids are ignored.
func (r *Room) UpdateNoteText(id, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notes.SetText(id, text)
}

// DeleteNote removes a note; unknown ids are ignored.
func (r *Room) DeleteNote(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notes.Delete(id)
}

// MoveCursor overwrites the user's ephemeral cursor and returns the value to
// broadcast, with the connection id filled in.
func (r *Room) MoveCursor(userID string, x, y float64, username string) models.Cursor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presence.SetCursor(userID, x, y, username)
}

// Stats returns a read-only occupancy summary.
func (r *Room) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Users:        r.presence.Len(),
		Notes:        r.notes.Len(),
		HistoryLen:   r.history.Len(),
		HistoryIndex: r.history.Index(),
	}
}
