package board

import (
	"fmt"
	"sync"
	"testing"

	"whiteboard-backend/internal/models"
)

func TestRoom_JoinInitialState(t *testing.T) {
	r := NewRoom("R1")

	state, users := r.Join("u1", "alice")
	if len(state.Notes) != 0 {
		t.Fatalf("notes=%d in fresh room, want 0", len(state.Notes))
	}
	if state.CanvasState != nil {
		t.Fatalf("canvasState=%q in fresh room, want null", *state.CanvasState)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("users=%+v, want [alice]", users)
	}
	if users[0].RoomID != "R1" {
		t.Fatalf("roomId=%q, want R1", users[0].RoomID)
	}

	// A later joiner sees the accumulated state.
	r.CreateNote(models.StickyNote{ID: "n1", Text: "hi"})
	r.ApplySnapshot("s1")

	state, users = r.Join("u2", "bob")
	if len(state.Notes) != 1 || state.Notes[0].ID != "n1" {
		t.Fatalf("notes=%+v, want [n1]", state.Notes)
	}
	if state.CanvasState == nil || *state.CanvasState != "s1" {
		t.Fatalf("canvasState=%v, want s1", state.CanvasState)
	}
	if len(users) != 2 {
		t.Fatalf("users=%d, want 2", len(users))
	}
}

func TestRoom_SharedHistoryScenario(t *testing.T) {
	// The full two-client session: join, stroke, undo, draw-over, redo.
	r := NewRoom("R1")
	r.Join("a", "alice")
	r.Join("b", "bob")

	if idx := r.ApplySnapshot("s1"); idx != 1 {
		t.Fatalf("index=%d after first stroke, want 1 (blank seed below it)", idx)
	}
	if s := r.Stats(); s.HistoryLen != 2 || s.HistoryIndex != 1 {
		t.Fatalf("history={len:%d index:%d}, want {2 1}", s.HistoryLen, s.HistoryIndex)
	}

	snap, ok := r.Undo()
	if !ok || snap != BlankSnapshot {
		t.Fatalf("undo: got %q, %v; want blank seed, true", snap, ok)
	}

	// Drawing after the undo discards s1 irrevocably.
	r.ApplySnapshot("s2")
	if s := r.Stats(); s.HistoryLen != 2 || s.HistoryIndex != 1 {
		t.Fatalf("history={len:%d index:%d} after draw-over, want {2 1}", s.HistoryLen, s.HistoryIndex)
	}
	if _, ok := r.Redo(); ok {
		t.Fatal("redo at tip after draw-over must be a no-op")
	}
	if snap, _ = r.Undo(); snap != BlankSnapshot {
		t.Fatalf("undo after draw-over: got %q, want blank seed", snap)
	}
	if snap, ok = r.Redo(); !ok || snap != "s2" {
		t.Fatalf("redo: got %q, %v; want s2, true", snap, ok)
	}
}

func TestRoom_ClearResetsNotesAndIsUndoable(t *testing.T) {
	r := NewRoom("R1")
	r.Join("a", "alice")
	r.CreateNote(models.StickyNote{ID: "n1"})
	r.CreateNote(models.StickyNote{ID: "n2"})
	r.ApplySnapshot("s1")

	r.Clear()

	s := r.Stats()
	if s.Notes != 0 {
		t.Fatalf("notes=%d after clear, want 0", s.Notes)
	}
	// Clear pushes a blank snapshot; the pre-clear canvas is one undo away.
	if s.HistoryLen != 3 || s.HistoryIndex != 2 {
		t.Fatalf("history={len:%d index:%d} after clear, want {3 2}", s.HistoryLen, s.HistoryIndex)
	}
	if snap, ok := r.Undo(); !ok || snap != "s1" {
		t.Fatalf("undo after clear: got %q, %v; want s1, true", snap, ok)
	}
}

func TestRoom_LeaveIdempotentAndEmpty(t *testing.T) {
	r := NewRoom("R1")
	r.Join("a", "alice")
	r.Join("b", "bob")

	users, ok := r.Leave("a")
	if !ok || len(users) != 1 {
		t.Fatalf("leave: users=%d ok=%v, want 1 true", len(users), ok)
	}
	if _, ok = r.Leave("a"); ok {
		t.Fatal("second leave of same user reported present")
	}
	if r.Empty() {
		t.Fatal("room reported empty with bob still in it")
	}

	r.Leave("b")
	if !r.Empty() {
		t.Fatal("room not empty after last leave")
	}
}

func TestRoom_CursorDoesNotTouchHistory(t *testing.T) {
	r := NewRoom("R1")
	r.Join("a", "alice")
	before := r.Stats()

	for i := 0; i < 100; i++ {
		cur := r.MoveCursor("a", float64(i), float64(i), "alice")
		if cur.ID != "a" {
			t.Fatalf("cursor id=%q, want connection id a", cur.ID)
		}
	}

	after := r.Stats()
	if after.HistoryLen != before.HistoryLen || after.HistoryIndex != before.HistoryIndex {
		t.Fatal("cursor traffic changed the history")
	}
}

func TestRoom_ConcurrentCreates(t *testing.T) {
	// Two (and more) clients racing createNote with distinct ids must all
	// land in the registry; concurrent pushes must keep the history index
	// in bounds.
	r := NewRoom("R1")
	r.Join("a", "alice")
	r.Join("b", "bob")

	const perClient = 50
	var wg sync.WaitGroup
	for client := 0; client < 2; client++ {
		wg.Add(1)
		go func(client int) {
			defer wg.Done()
			for i := 0; i < perClient; i++ {
				r.CreateNote(models.StickyNote{ID: fmt.Sprintf("c%d-n%d", client, i)})
				r.ApplySnapshot(fmt.Sprintf("c%d-s%d", client, i))
				if i%3 == 0 {
					r.Undo()
				}
				if i%7 == 0 {
					r.Redo()
				}
			}
		}(client)
	}
	wg.Wait()

	s := r.Stats()
	if s.Notes != 2*perClient {
		t.Fatalf("notes=%d, want %d", s.Notes, 2*perClient)
	}
	if s.HistoryIndex < 0 || s.HistoryIndex >= s.HistoryLen {
		t.Fatalf("history index %d out of bounds for len %d", s.HistoryIndex, s.HistoryLen)
	}
}
