// internal/scrims/registry.go
package scrims

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/slug"
)

// Capacity bounds. Grids below 10 slots are not a supported format, with the
// exception of head-to-head (2).
const (
	minSlots        = 2
	maxSlots        = 128
	deniedSlotsLow  = 3
	deniedSlotsHigh = 9
)

func validMaxSlots(n int) bool {
	if n < minSlots || n > maxSlots {
		return false
	}
	if n >= deniedSlotsLow && n <= deniedSlotsHigh {
		return false
	}
	return true
}

// SessionInput is the admin-supplied definition of a session.
type SessionInput struct {
	Title        string
	StartTime    time.Time
	Mode         models.SessionMode
	MapName      string
	MaxSlots     int
	Type         models.TournamentType
	Status       models.SessionStatus
	Champion     string
	Announcement string
}

func (in *SessionInput) validate() Result {
	if in.Title == "" {
		return reject(ReasonValidation, "title is required")
	}
	if !in.Mode.Valid() {
		return reject(ReasonValidation, "invalid mode")
	}
	if !in.Type.Valid() {
		return reject(ReasonValidation, "invalid tournament type")
	}
	if !in.Status.Valid() {
		return reject(ReasonValidation, "invalid status")
	}
	if !validMaxSlots(in.MaxSlots) {
		return reject(ReasonValidation, fmt.Sprintf("slot count must be %d or %d-%d", minSlots, deniedSlotsHigh+1, maxSlots))
	}
	return ok("")
}

// CreateSession creates a session from admin input, deriving a unique slug
// from the title.
func (s *Service) CreateSession(ctx context.Context, in SessionInput) (*models.Session, Result, error) {
	if res := in.validate(); !res.OK {
		return nil, res, nil
	}

	sessionSlug, err := slug.EnsureUnique(ctx, slug.Make(in.Title), func(ctx context.Context, candidate string) (bool, error) {
		return s.store.SessionSlugTaken(ctx, candidate, uuid.Nil)
	})
	if err != nil {
		return nil, Result{}, fmt.Errorf("derive session slug: %w", err)
	}

	now := s.now()
	sess := &models.Session{
		ID:           uuid.New(),
		Slug:         sessionSlug,
		Title:        in.Title,
		StartTime:    in.StartTime,
		Mode:         in.Mode,
		MapName:      in.MapName,
		MaxSlots:     in.MaxSlots,
		Type:         in.Type,
		Status:       in.Status,
		Champion:     in.Champion,
		Announcement: in.Announcement,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertSession(ctx, sess); err != nil {
		return nil, Result{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, ok("scrim created"), nil
}

// UpdateSession applies admin edits. The slug is re-derived only when the
// title changed, excluding the session's own id from the uniqueness check.
func (s *Service) UpdateSession(ctx context.Context, id uuid.UUID, in SessionInput) (*models.Session, Result, error) {
	sess, err := s.store.GetSession(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return nil, Result{}, fmt.Errorf("load session: %w", err)
	}

	if res := in.validate(); !res.OK {
		return nil, res, nil
	}

	if in.Title != sess.Title {
		newSlug, err := slug.EnsureUnique(ctx, slug.Make(in.Title), func(ctx context.Context, candidate string) (bool, error) {
			return s.store.SessionSlugTaken(ctx, candidate, sess.ID)
		})
		if err != nil {
			return nil, Result{}, fmt.Errorf("derive session slug: %w", err)
		}
		sess.Slug = newSlug
	}

	sess.Title = in.Title
	sess.StartTime = in.StartTime
	sess.Mode = in.Mode
	sess.MapName = in.MapName
	sess.MaxSlots = in.MaxSlots
	sess.Type = in.Type
	sess.Status = in.Status
	sess.Champion = in.Champion
	sess.Announcement = in.Announcement
	sess.UpdatedAt = s.now()

	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, Result{}, fmt.Errorf("update session: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	return sess, ok("scrim updated"), nil
}

// SetChampion records the winning team label on a session.
func (s *Service) SetChampion(ctx context.Context, id uuid.UUID, champion string) (Result, error) {
	sess, err := s.store.GetSession(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}

	sess.Champion = champion
	sess.UpdatedAt = s.now()
	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return Result{}, fmt.Errorf("update session: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	return ok("champion saved"), nil
}

// DeleteSession removes a session; its slots go with it (cascade).
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) (Result, error) {
	if _, err := s.store.GetSession(ctx, id); errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	} else if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, id); err != nil {
		return Result{}, fmt.Errorf("delete session: %w", err)
	}
	return ok("scrim deleted"), nil
}

// SessionView pairs a session with its derived display status.
type SessionView struct {
	models.Session
	EffectiveStatus models.SessionStatus `json:"effective_status"`
	Occupied        int                  `json:"occupied"`
}

// ListSessions returns every session with its effective status and occupancy.
func (s *Service) ListSessions(ctx context.Context) ([]SessionView, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	now := s.now()
	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		sess := sessions[i]
		occupied, err := s.store.CountOccupied(ctx, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("count occupied slots: %w", err)
		}
		views = append(views, SessionView{
			Session:         sess,
			EffectiveStatus: EffectiveStatus(&sess, now),
			Occupied:        occupied,
		})
	}
	return views, nil
}

// SessionDetail is a session plus its full slot grid.
type SessionDetail struct {
	SessionView
	Slots []models.Slot `json:"slots"`
}

// GetSessionBySlug returns one session with its slot grid, or ErrNotFound.
func (s *Service) GetSessionBySlug(ctx context.Context, sessionSlug string) (*SessionDetail, error) {
	sess, err := s.store.GetSessionBySlug(ctx, sessionSlug)
	if err != nil {
		return nil, err
	}
	slots, err := s.store.SlotsForSession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}
	occupied := 0
	for _, sl := range slots {
		if !sl.IsLocked {
			occupied++
		}
	}
	return &SessionDetail{
		SessionView: SessionView{
			Session:         *sess,
			EffectiveStatus: EffectiveStatus(sess, s.now()),
			Occupied:        occupied,
		},
		Slots: slots,
	}, nil
}
