// Package state provides thread-safe ownership of the globe's selection state.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-bloom/internal/geo"
)

// ErrUnknownPoint is returned when selecting an id that is not in the catalog.
var ErrUnknownPoint = errors.New("unknown point")

// EventType represents the type of selection change.
type EventType string

const (
	EventSelected EventType = "SELECTED"
	EventHovered  EventType = "HOVERED"
	EventCleared  EventType = "CLEARED"
	EventReset    EventType = "RESET"
)

// Event is one entry in the interaction log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	PointID   string    `json:"point_id,omitempty"`
}

// Selection is the hovered and selected point ids. Empty means none.
type Selection struct {
	HoveredID  string `json:"hovered_id,omitempty"`
	SelectedID string `json:"selected_id,omitempty"`
}

// Focused returns the id the side panel should show: hover wins over selection.
func (s Selection) Focused() string {
	if s.HoveredID != "" {
		return s.HoveredID
	}
	return s.SelectedID
}

// SelectFunc is called after a point becomes selected.
type SelectFunc func(geo.GeoPoint)

// Manager owns the selection for one catalog.
type Manager struct {
	mu sync.RWMutex

	catalog   *geo.Catalog
	selection Selection
	listeners []SelectFunc

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50, // Last 50 interactions
	}
}

// NewManager creates a manager for catalog.
func NewManager(catalog *geo.Catalog, cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		catalog:   catalog,
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       time.Now,
	}
}

// Catalog returns the catalog the manager selects from.
func (m *Manager) Catalog() *geo.Catalog {
	return m.catalog
}

// SelectPoint selects the point with id and notifies OnSelect listeners.
func (m *Manager) SelectPoint(id string) error {
	p, ok := m.catalog.Get(id)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownPoint)
	}

	m.mu.Lock()
	m.selection.SelectedID = id
	m.addEvent(Event{Type: EventSelected, Timestamp: m.now(), PointID: id})
	listeners := make([]SelectFunc, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	// Listeners run without the lock so they may read state.
	for _, fn := range listeners {
		fn(p)
	}
	return nil
}

// OnSelect registers fn to run after every successful SelectPoint.
func (m *Manager) OnSelect(fn SelectFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Hover sets the hovered id; an empty id clears hover. Unknown ids clear hover.
// It reports whether the hovered id changed.
func (m *Manager) Hover(id string) bool {
	if id != "" {
		if _, ok := m.catalog.Get(id); !ok {
			id = ""
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selection.HoveredID == id {
		return false
	}
	m.selection.HoveredID = id
	if id != "" {
		m.addEvent(Event{Type: EventHovered, Timestamp: m.now(), PointID: id})
	}
	return true
}

// ClearSelection drops both hover and selection.
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(EventCleared)
}

// Reset clears selection as part of a camera reset.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(EventReset)
}

func (m *Manager) clearLocked(t EventType) {
	m.selection = Selection{}
	m.addEvent(Event{Type: t, Timestamp: m.now()})
}

// Selection returns the current selection.
func (m *Manager) Selection() Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selection
}

// Focused returns the point the side panel should show, if any.
func (m *Manager) Focused() (geo.GeoPoint, bool) {
	id := m.Selection().Focused()
	if id == "" {
		return geo.GeoPoint{}, false
	}
	return m.catalog.Get(id)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Selection Selection
	Events    []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Selection: m.selection,
		Events:    m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// Events returns the interaction log, oldest first.
func (m *Manager) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getEventsOrdered()
}

// RecentEvents returns the last n events. Non-positive n returns nil.
func (m *Manager) RecentEvents(n int) []Event {
	if n <= 0 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
