package queue

import (
	"slices"

	"github.com/desertthunder/jukebox/internal/models"
)

// Manager is the queue plus the current item.
type Manager struct {
	items   []models.Video
	current *models.Video
}

// New creates an empty Manager with nothing current.
func New() *Manager {
	return &Manager{}
}

// Enqueue appends item. When nothing is current the head is popped into Current immediately.
//
// Returns true when this call started playback.
func (m *Manager) Enqueue(item models.Video) bool {
	m.items = append(m.items, item)
	if m.current != nil {
		return false
	}

	m.Advance()
	return true
}

// PlayNow sets Current to item without touching the queue, even if item is also queued.
func (m *Manager) PlayNow(item models.Video) {
	v := item
	m.current = &v
}

// Advance pops the head into Current and returns it.
//
// On an empty queue Current becomes none and ok is false.
func (m *Manager) Advance() (next models.Video, ok bool) {
	if len(m.items) == 0 {
		m.current = nil
		return models.Video{}, false
	}

	next = m.items[0]
	m.items[0] = models.Video{}
	m.items = m.items[1:]
	m.current = &next
	return next, true
}

// Remove deletes the item at index. Out of range indexes leave the queue unchanged.
func (m *Manager) Remove(index int) bool {
	if index < 0 || index >= len(m.items) {
		return false
	}

	m.items = slices.Delete(m.items, index, index+1)
	return true
}

// Clear empties the queue; Current is kept.
func (m *Manager) Clear() {
	m.items = nil
}

// Current returns the identifier of the current item, or "" when none.
func (m *Manager) Current() string {
	if m.current == nil {
		return ""
	}
	return m.current.ID
}

// CurrentVideo returns the current item and whether there is one.
func (m *Manager) CurrentVideo() (models.Video, bool) {
	if m.current == nil {
		return models.Video{}, false
	}
	return *m.current, true
}

// Items returns a copy of the queue in playback order.
func (m *Manager) Items() []models.Video {
	out := make([]models.Video, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of queued items.
func (m *Manager) Len() int {
	return len(m.items)
}
