package models

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StickyNote is a movable, editable text note on the board.
// The id is a UUID generated by the creating client; the registry treats it
// as the exclusive key and never assigns ids itself.
type StickyNote struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position Position `json:"position"`
}
