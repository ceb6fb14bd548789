// internal/handlers/handlers_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
	"github.com/MHBDPro/rage-backend/internal/textfilter"
)

// fakeStore is a minimal scrims.Store for handler tests. Handler tests only
// need sessions, slots and settings; the allocator's own tests cover the
// store semantics in depth.
type fakeStore struct {
	sessions  map[uuid.UUID]*models.Session
	slots     map[uuid.UUID]*models.Slot
	templates []models.DailyTemplate
	settings  models.Settings
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[uuid.UUID]*models.Session),
		slots:    make(map[uuid.UUID]*models.Slot),
	}
}

func (f *fakeStore) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, scrims.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) GetSessionBySlug(ctx context.Context, slug string) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, scrims.ErrNotFound
}

func (f *fakeStore) ListSessions(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) SessionSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	for _, s := range f.sessions {
		if s.Slug == slug && s.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertSession(ctx context.Context, s *models.Session) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateSession(ctx context.Context, s *models.Session) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return scrims.ErrNotFound
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.sessions[id]; !ok {
		return scrims.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeStore) CompleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.StartTime.Before(cutoff) && s.Status != models.StatusCompleted {
			s.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SlotsForSession(ctx context.Context, sessionID uuid.UUID) ([]models.Slot, error) {
	var out []models.Slot
	for _, sl := range f.slots {
		if sl.SessionID == sessionID {
			out = append(out, *sl)
		}
	}
	return out, nil
}

func (f *fakeStore) CountOccupied(ctx context.Context, sessionID uuid.UUID) (int, error) {
	n := 0
	for _, sl := range f.slots {
		if sl.SessionID == sessionID && !sl.IsLocked {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindSlotByIP(ctx context.Context, sessionID uuid.UUID, ip string) (*models.Slot, error) {
	for _, sl := range f.slots {
		if sl.SessionID == sessionID && !sl.IsLocked && sl.IP == ip {
			return sl, nil
		}
	}
	return nil, scrims.ErrNotFound
}

func (f *fakeStore) FindSlotByTag(ctx context.Context, sessionID uuid.UUID, tag string) (*models.Slot, error) {
	for _, sl := range f.slots {
		if sl.SessionID == sessionID && !sl.IsLocked && sl.PlayerTag == tag {
			return sl, nil
		}
	}
	return nil, scrims.ErrNotFound
}

func (f *fakeStore) GetSlotByNumber(ctx context.Context, sessionID uuid.UUID, number int) (*models.Slot, error) {
	for _, sl := range f.slots {
		if sl.SessionID == sessionID && sl.Number == number {
			return sl, nil
		}
	}
	return nil, scrims.ErrNotFound
}

func (f *fakeStore) GetSlot(ctx context.Context, id uuid.UUID) (*models.Slot, error) {
	sl, ok := f.slots[id]
	if !ok {
		return nil, scrims.ErrNotFound
	}
	return sl, nil
}

func (f *fakeStore) InsertSlot(ctx context.Context, s *models.Slot) error {
	for _, sl := range f.slots {
		if sl.SessionID == s.SessionID && sl.Number == s.Number {
			return scrims.ErrSlotTaken
		}
	}
	cp := *s
	f.slots[s.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.slots[id]; !ok {
		return scrims.ErrNotFound
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeStore) ListTemplates(ctx context.Context) ([]models.DailyTemplate, error) {
	return f.templates, nil
}

func (f *fakeStore) InsertTemplate(ctx context.Context, t *models.DailyTemplate) error {
	f.templates = append(f.templates, *t)
	return nil
}

func (f *fakeStore) UpdateTemplate(ctx context.Context, t *models.DailyTemplate) error {
	for i := range f.templates {
		if f.templates[i].ID == t.ID {
			f.templates[i] = *t
			return nil
		}
	}
	return scrims.ErrNotFound
}

func (f *fakeStore) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	for i := range f.templates {
		if f.templates[i].ID == id {
			f.templates = append(f.templates[:i], f.templates[i+1:]...)
			return nil
		}
	}
	return scrims.ErrNotFound
}

func (f *fakeStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	cp := f.settings
	return &cp, nil
}

func newTestRouter(store *fakeStore) *http.ServeMux {
	svc := scrims.NewService(store, textfilter.New(), nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scrims", ListScrimsHandler(svc))
	mux.HandleFunc("GET /api/scrims/{slug}", GetScrimHandler(svc))
	mux.HandleFunc("POST /api/scrims/{id}/register", RegisterHandler(svc))
	mux.HandleFunc("POST /api/scrims/rollover", RolloverHandler(svc))
	mux.HandleFunc("POST /api/admin/scrims", AdminCreateScrimHandler(svc))
	return mux
}

func seedFakeSession(store *fakeStore) *models.Session {
	sess := &models.Session{
		ID:        uuid.New(),
		Slug:      "evening-scrim",
		Title:     "Evening Scrim",
		StartTime: time.Now().Add(-time.Hour),
		Mode:      models.ModeSingle,
		MapName:   "Erangel",
		MaxSlots:  16,
		Type:      models.TypeDaily,
		Status:    models.StatusActive,
	}
	store.sessions[sess.ID] = sess
	return sess
}

func TestRegisterHandler(t *testing.T) {
	store := newFakeStore()
	sess := seedFakeSession(store)
	mux := newTestRouter(store)

	body := `{"slot":4,"player_name":"Oyuncu","player_tag":"tag-123","team":"Night Owls"}`
	req := httptest.NewRequest(http.MethodPost, "/api/scrims/"+sess.ID.String()+"/register", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res scrims.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.OK)
	assert.Equal(t, 4, res.SlotNumber)

	// The registered slot carries the forwarded client address.
	slot, err := store.GetSlotByNumber(context.Background(), sess.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", slot.IP)

	// Same slot again conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/scrims/"+sess.ID.String()+"/register", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerBadInput(t *testing.T) {
	store := newFakeStore()
	sess := seedFakeSession(store)
	mux := newTestRouter(store)

	// Malformed session id reads as not found.
	req := httptest.NewRequest(http.MethodPost, "/api/scrims/not-a-uuid/register", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed body is a validation error.
	req = httptest.NewRequest(http.MethodPost, "/api/scrims/"+sess.ID.String()+"/register", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScrimHandler(t *testing.T) {
	store := newFakeStore()
	seedFakeSession(store)
	mux := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/scrims/evening-scrim", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail scrims.SessionDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "evening-scrim", detail.Slug)
	assert.Equal(t, string(models.StatusActive), string(detail.EffectiveStatus))

	req = httptest.NewRequest(http.MethodGet, "/api/scrims/no-such-scrim", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListScrimsHandlerEmpty(t *testing.T) {
	mux := newTestRouter(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/scrims", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Empty list, never null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestRolloverHandlerSecret(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")
	store := newFakeStore()
	mux := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/scrims/rollover", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/scrims/rollover", nil)
	req.Header.Set("x-cron-secret", "wrong")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/scrims/rollover", nil)
	req.Header.Set("x-cron-secret", "s3cret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRolloverHandlerNoSecretConfigured(t *testing.T) {
	t.Setenv("CRON_SECRET", "")
	mux := newTestRouter(newFakeStore())

	// An unset secret never opens the endpoint.
	req := httptest.NewRequest(http.MethodPost, "/api/scrims/rollover", nil)
	req.Header.Set("x-cron-secret", "")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminEndpointsRejectWithoutSession(t *testing.T) {
	mux := newTestRouter(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/scrims", strings.NewReader(`{"title":"X"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A garbage token is rejected the same way as a missing one.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/scrims", strings.NewReader(`{"title":"X"}`))
	req.Header.Set("Cookie", "auth_token=not-a-jwt")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestExtractCookieToken(t *testing.T) {
	assert.Equal(t, "abc", extractCookieToken("auth_token=abc", "auth_token"))
	assert.Equal(t, "abc", extractCookieToken("other=x; auth_token=abc; more=y", "auth_token"))
	assert.Equal(t, "", extractCookieToken("other=x", "auth_token"))
}
