// internal/live/hub.go
package live

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SlotEvent tells subscribed clients that a session's slot grid changed and
// they should re-fetch it.
type SlotEvent struct {
	Type      string    `json:"type"`
	SessionID uuid.UUID `json:"session_id"`
	Slug      string    `json:"slug"`
}

// Subscriber receives slot events for one session. The channel is buffered;
// events are dropped rather than blocking a mutation on a slow client.
type Subscriber struct {
	Out chan SlotEvent
}

// Hub fans slot-change events out to the WebSocket clients watching each
// session. Purely in-memory; a restart just drops the live connections.
type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*Subscriber]bool // session id -> subscribers
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uuid.UUID]map[*Subscriber]bool),
	}
}

// Subscribe registers a client for one session's events.
func (h *Hub) Subscribe(sessionID uuid.UUID) *Subscriber {
	sub := &Subscriber{Out: make(chan SlotEvent, 8)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscriber]bool)
	}
	h.subs[sessionID][sub] = true
	return sub
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(sessionID uuid.UUID, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sessionID]; ok {
		if set[sub] {
			delete(set, sub)
			close(sub.Out)
		}
		if len(set) == 0 {
			delete(h.subs, sessionID)
		}
	}
}

// SlotsChanged broadcasts a slot-grid change to every watcher of the session.
// Implements scrims.Notifier.
func (h *Hub) SlotsChanged(sessionID uuid.UUID, slug string) {
	ev := SlotEvent{Type: "slots_changed", SessionID: sessionID, Slug: slug}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[sessionID] {
		select {
		case sub.Out <- ev:
		default:
			log.Warnf("live hub: dropped slot event for session %s, slow subscriber", sessionID)
		}
	}
}

// Watchers reports how many clients are subscribed to a session.
func (h *Hub) Watchers(sessionID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
