package board

// BlankSnapshot is the sentinel for an empty canvas. Rooms seed their history
// with it so undoing the very first stroke lands back on a blank board, and
// clear pushes it through the normal truncate-on-push rule.
const BlankSnapshot = ""

// History is the linear undo/redo stack of whole-canvas snapshots for one
// room. Snapshots are opaque to the server (the client sends base64 data
// URLs of the rendered canvas); each completed gesture is one entry.
//
// Invariant: 0 <= index < len(stack) whenever the stack is non-empty, and
// index == -1 iff the stack is empty. Pushing while the cursor sits below
// the top discards everything above it - linear history, no branching.
type History struct {
	stack []string
	index int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Push truncates any redo entries above the cursor, appends the snapshot,
// and returns the new index.
func (h *History) Push(snapshot string) int {
	h.stack = append(h.stack[:h.index+1], snapshot)
	h.index = len(h.stack) - 1
	return h.index
}

// Undo moves the cursor back one entry and returns the snapshot now current.
// At the bottom of the stack (or on an empty stack) it reports false and
// changes nothing; repeating it there stays a no-op.
func (h *History) Undo() (string, bool) {
	if h.index <= 0 {
		return "", false
	}
	h.index--
	return h.stack[h.index], true
}

// Redo moves the cursor forward one entry and returns the snapshot now
// current. At the top of the stack it reports false and changes nothing.
func (h *History) Redo() (string, bool) {
	if h.index < 0 || h.index >= len(h.stack)-1 {
		return "", false
	}
	h.index++
	return h.stack[h.index], true
}

// Current returns the snapshot at the cursor, or false on an empty stack.
func (h *History) Current() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	return h.stack[h.index], true
}

// Len returns the number of snapshots on the stack.
func (h *History) Len() int { return len(h.stack) }

// Index returns the cursor position (-1 on an empty stack).
func (h *History) Index() int { return h.index }
