package board

import "whiteboard-backend/internal/models"

// Presence tracks the users connected to a room plus their live cursors.
// Join and Leave are the only mutators; the full user list is re-broadcast on
// every change rather than a delta, since room populations are small and
// churn is rare next to drawing traffic.
type Presence struct {
	order   []string
	users   map[string]*models.User
	cursors map[string]*models.Cursor
}

// NewPresence returns an empty presence set.
func NewPresence() *Presence {
	return &Presence{
		users:   make(map[string]*models.User),
		cursors: make(map[string]*models.Cursor),
	}
}

// Join adds a user. Joining twice with the same id refreshes the username
// without duplicating the entry.
func (p *Presence) Join(user models.User) {
	if existing, ok := p.users[user.ID]; ok {
		*existing = user
		return
	}
	u := user
	p.users[user.ID] = &u
	p.order = append(p.order, user.ID)
}

// Leave removes a user and their cursor. Leaving twice is a no-op; the second
// call reports false.
func (p *Presence) Leave(id string) bool {
	if _, ok := p.users[id]; !ok {
		return false
	}
	delete(p.users, id)
	delete(p.cursors, id)
	for i, other := range p.order {
		if other == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// SetCursor overwrites the user's cursor in place and returns the stored
// value (with the connection id filled in for the broadcast).
func (p *Presence) SetCursor(id string, x, y float64, username string) models.Cursor {
	cur, ok := p.cursors[id]
	if !ok {
		cur = &models.Cursor{ID: id}
		p.cursors[id] = cur
	}
	cur.X = x
	cur.Y = y
	cur.Username = username
	return *cur
}

// Users returns a copy of the user list in join order.
func (p *Presence) Users() []models.User {
	out := make([]models.User, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.users[id])
	}
	return out
}

// Len returns the number of connected users.
func (p *Presence) Len() int { return len(p.users) }

// Empty reports whether nobody is connected.
func (p *Presence) Empty() bool { return len(p.users) == 0 }
