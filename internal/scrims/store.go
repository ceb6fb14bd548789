// internal/scrims/store.go
package scrims

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// ErrNotFound is returned by Store lookups when no row exists.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned by InsertSlot when the (session_id, slot_number)
// unique constraint fires. The constraint is the authoritative race guard;
// pre-checks only exist for better error messages.
var ErrSlotTaken = errors.New("slot already taken")

// Store is the persistence surface the scrim service needs. The production
// implementation lives in internal/database; tests use an in-memory fake.
type Store interface {
	// Sessions.
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetSessionBySlug(ctx context.Context, slug string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	SessionSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	InsertSession(ctx context.Context, s *models.Session) error
	UpdateSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	// CompleteSessionsBefore marks every non-completed session whose start
	// time is before cutoff as completed and returns how many rows changed.
	CompleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Slots.
	SlotsForSession(ctx context.Context, sessionID uuid.UUID) ([]models.Slot, error)
	CountOccupied(ctx context.Context, sessionID uuid.UUID) (int, error)
	FindSlotByIP(ctx context.Context, sessionID uuid.UUID, ip string) (*models.Slot, error)
	FindSlotByTag(ctx context.Context, sessionID uuid.UUID, tag string) (*models.Slot, error)
	GetSlotByNumber(ctx context.Context, sessionID uuid.UUID, number int) (*models.Slot, error)
	GetSlot(ctx context.Context, id uuid.UUID) (*models.Slot, error)
	InsertSlot(ctx context.Context, s *models.Slot) error
	DeleteSlot(ctx context.Context, id uuid.UUID) error

	// Daily templates.
	ListTemplates(ctx context.Context) ([]models.DailyTemplate, error)
	InsertTemplate(ctx context.Context, t *models.DailyTemplate) error
	UpdateTemplate(ctx context.Context, t *models.DailyTemplate) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	// Settings singleton.
	GetSettings(ctx context.Context) (*models.Settings, error)
}

// Notifier receives a signal after every slot mutation so display surfaces
// (cache layer, live feeds) can refresh. Implementations must be fast and
// must not fail the mutation.
type Notifier interface {
	SlotsChanged(sessionID uuid.UUID, slug string)
}
