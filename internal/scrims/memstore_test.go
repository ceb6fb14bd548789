// internal/scrims/memstore_test.go
package scrims

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// memStore is an in-memory Store with the same uniqueness semantics as the
// Postgres schema: the (session_id, slot_number) insert is atomic under the
// mutex, so concurrent registrations race exactly like they do against the
// real unique constraint.
type memStore struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*models.Session
	slots     map[uuid.UUID]*models.Slot
	templates map[uuid.UUID]*models.DailyTemplate
	settings  models.Settings
}

func newMemStore() *memStore {
	return &memStore{
		sessions:  make(map[uuid.UUID]*models.Session),
		slots:     make(map[uuid.UUID]*models.Slot),
		templates: make(map[uuid.UUID]*models.DailyTemplate),
	}
}

func (m *memStore) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) GetSessionBySlug(ctx context.Context, slug string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ListSessions(ctx context.Context) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) SessionSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Slug == slug && s.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) UpdateSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	for slotID, sl := range m.slots {
		if sl.SessionID == id {
			delete(m.slots, slotID)
		}
	}
	return nil
}

func (m *memStore) CompleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.StartTime.Before(cutoff) && s.Status != models.StatusCompleted {
			s.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}

func (m *memStore) SlotsForSession(ctx context.Context, sessionID uuid.UUID) ([]models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Slot
	for _, sl := range m.slots {
		if sl.SessionID == sessionID {
			out = append(out, *sl)
		}
	}
	return out, nil
}

func (m *memStore) CountOccupied(ctx context.Context, sessionID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, sl := range m.slots {
		if sl.SessionID == sessionID && !sl.IsLocked {
			n++
		}
	}
	return n, nil
}

func (m *memStore) FindSlotByIP(ctx context.Context, sessionID uuid.UUID, ip string) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sl := range m.slots {
		if sl.SessionID == sessionID && !sl.IsLocked && sl.IP == ip {
			cp := *sl
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) FindSlotByTag(ctx context.Context, sessionID uuid.UUID, tag string) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sl := range m.slots {
		if sl.SessionID == sessionID && !sl.IsLocked && sl.PlayerTag == tag {
			cp := *sl
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetSlotByNumber(ctx context.Context, sessionID uuid.UUID, number int) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sl := range m.slots {
		if sl.SessionID == sessionID && sl.Number == number {
			cp := *sl
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetSlot(ctx context.Context, id uuid.UUID) (*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sl
	return &cp, nil
}

func (m *memStore) InsertSlot(ctx context.Context, s *models.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sl := range m.slots {
		if sl.SessionID == s.SessionID && sl.Number == s.Number {
			return ErrSlotTaken
		}
	}
	cp := *s
	m.slots[s.ID] = &cp
	return nil
}

func (m *memStore) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[id]; !ok {
		return ErrNotFound
	}
	delete(m.slots, id)
	return nil
}

func (m *memStore) ListTemplates(ctx context.Context) ([]models.DailyTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DailyTemplate
	for _, t := range m.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memStore) InsertTemplate(ctx context.Context, t *models.DailyTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memStore) UpdateTemplate(ctx context.Context, t *models.DailyTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[t.ID]; !ok {
		return ErrNotFound
	}
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memStore) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *memStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := m.settings
	return &cp, nil
}

// setMaintenance flips the maintenance flag for tests.
func (m *memStore) setMaintenance(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Maintenance = on
}

// mockNotifier records slot-change signals.
type mockNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *mockNotifier) SlotsChanged(sessionID uuid.UUID, slug string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, slug)
}

func (n *mockNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
