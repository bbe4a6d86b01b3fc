package board

import "whiteboard-backend/internal/models"

// NoteRegistry is the authoritative sticky-note store for one room, keyed by
// the client-generated note id. Notes keep their arrival order so a full
// resync replays them in a stable order for the UI.
//
// Mutations on unknown ids are silent no-ops: a move racing a delete from
// another client is expected traffic, not an error.
type NoteRegistry struct {
	order []string
	notes map[string]*models.StickyNote
}

// NewNoteRegistry returns an empty registry.
func NewNoteRegistry() *NoteRegistry {
	return &NoteRegistry{notes: make(map[string]*models.StickyNote)}
}

// Upsert inserts a note, or overwrites an existing note with the same id in
// place (last write wins; the original arrival position is kept).
func (r *NoteRegistry) Upsert(note models.StickyNote) {
	if existing, ok := r.notes[note.ID]; ok {
		*existing = note
		return
	}
	n := note
	r.notes[note.ID] = &n
	r.order = append(r.order, note.ID)
}

// Move updates a note's position and reports whether the note existed.
func (r *NoteRegistry) Move(id string, pos models.Position) bool {
	note, ok := r.notes[id]
	if !ok {
		return false
	}
	note.Position = pos
	return true
}

// SetText updates a note's text and reports whether the note existed.
func (r *NoteRegistry) SetText(id, text string) bool {
	note, ok := r.notes[id]
	if !ok {
		return false
	}
	note.Text = text
	return true
}

// Delete removes a note, preserving the order of the remaining notes, and
// reports whether it existed.
func (r *NoteRegistry) Delete(id string) bool {
	if _, ok := r.notes[id]; !ok {
		return false
	}
	delete(r.notes, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a copy of every note in arrival order.
func (r *NoteRegistry) All() []models.StickyNote {
	out := make([]models.StickyNote, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.notes[id])
	}
	return out
}

// Len returns the number of notes.
func (r *NoteRegistry) Len() int { return len(r.notes) }

// Clear removes every note.
func (r *NoteRegistry) Clear() {
	r.order = nil
	r.notes = make(map[string]*models.StickyNote)
}
