// internal/scrims/rollover.go
package scrims

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// Rollover materializes every enabled daily template into a concrete session
// for the current reference-timezone day, then retires stale sessions. The
// deterministic slug ("daily-<date>-<suffix>") makes the operation idempotent:
// a second run on the same day finds the slug and skips.
func (s *Service) Rollover(ctx context.Context) (Result, error) {
	day := s.now().In(RefZone)
	dateKey := day.Format("2006-01-02")
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, RefZone)

	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list templates: %w", err)
	}

	created := 0
	for _, tpl := range templates {
		if !tpl.Enabled {
			continue
		}

		sessionSlug := fmt.Sprintf("daily-%s-%s", dateKey, tpl.SlugSuffix)
		taken, err := s.store.SessionSlugTaken(ctx, sessionSlug, uuid.Nil)
		if err != nil {
			return Result{}, fmt.Errorf("slug check for template %s: %w", tpl.Name, err)
		}
		if taken {
			continue
		}

		now := s.now()
		sess := &models.Session{
			ID:        uuid.New(),
			Slug:      sessionSlug,
			Title:     tpl.Title,
			StartTime: midnight.Add(time.Duration(tpl.StartMinute) * time.Minute),
			Mode:      tpl.Mode,
			MapName:   tpl.MapName,
			MaxSlots:  tpl.MaxSlots,
			Type:      tpl.Type,
			Status:    models.StatusClosed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.InsertSession(ctx, sess); err != nil {
			return Result{}, fmt.Errorf("insert daily session %s: %w", sessionSlug, err)
		}
		created++
	}

	// Catch-up: anything that started before today's midnight and was never
	// closed out is marked completed.
	completed, err := s.store.CompleteSessionsBefore(ctx, midnight)
	if err != nil {
		return Result{}, fmt.Errorf("complete stale sessions: %w", err)
	}

	return ok(fmt.Sprintf("created %d scrims, completed %d stale scrims", created, completed)), nil
}

// Template CRUD (admin only).

// TemplateInput is the admin-supplied definition of a daily template.
type TemplateInput struct {
	Name        string
	Title       string
	SlugSuffix  string
	StartMinute int
	Mode        models.SessionMode
	MapName     string
	MaxSlots    int
	Type        models.TournamentType
	Enabled     bool
}

func (in *TemplateInput) validate() Result {
	if in.Name == "" || in.Title == "" {
		return reject(ReasonValidation, "name and title are required")
	}
	if in.SlugSuffix == "" {
		return reject(ReasonValidation, "slug suffix is required")
	}
	if in.StartMinute < 0 || in.StartMinute >= 24*60 {
		return reject(ReasonValidation, "start time must fall within the day")
	}
	if !in.Mode.Valid() {
		return reject(ReasonValidation, "invalid mode")
	}
	if !in.Type.Valid() {
		return reject(ReasonValidation, "invalid tournament type")
	}
	if !validMaxSlots(in.MaxSlots) {
		return reject(ReasonValidation, fmt.Sprintf("slot count must be %d or %d-%d", minSlots, deniedSlotsHigh+1, maxSlots))
	}
	return ok("")
}

// CreateTemplate registers a new daily template.
func (s *Service) CreateTemplate(ctx context.Context, in TemplateInput) (*models.DailyTemplate, Result, error) {
	if res := in.validate(); !res.OK {
		return nil, res, nil
	}
	tpl := &models.DailyTemplate{
		ID:          uuid.New(),
		Name:        in.Name,
		Title:       in.Title,
		SlugSuffix:  in.SlugSuffix,
		StartMinute: in.StartMinute,
		Mode:        in.Mode,
		MapName:     in.MapName,
		MaxSlots:    in.MaxSlots,
		Type:        in.Type,
		Enabled:     in.Enabled,
	}
	if err := s.store.InsertTemplate(ctx, tpl); err != nil {
		return nil, Result{}, fmt.Errorf("insert template: %w", err)
	}
	return tpl, ok("template created"), nil
}

// UpdateTemplate replaces a template definition.
func (s *Service) UpdateTemplate(ctx context.Context, id uuid.UUID, in TemplateInput) (Result, error) {
	if res := in.validate(); !res.OK {
		return res, nil
	}
	tpl := &models.DailyTemplate{
		ID:          id,
		Name:        in.Name,
		Title:       in.Title,
		SlugSuffix:  in.SlugSuffix,
		StartMinute: in.StartMinute,
		Mode:        in.Mode,
		MapName:     in.MapName,
		MaxSlots:    in.MaxSlots,
		Type:        in.Type,
		Enabled:     in.Enabled,
	}
	if err := s.store.UpdateTemplate(ctx, tpl); err != nil {
		if errors.Is(err, ErrNotFound) {
			return reject(ReasonNotFound, "template not found"), nil
		}
		return Result{}, fmt.Errorf("update template: %w", err)
	}
	return ok("template updated"), nil
}

// DeleteTemplate removes a template. Sessions already materialized from it
// are untouched.
func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) (Result, error) {
	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return reject(ReasonNotFound, "template not found"), nil
		}
		return Result{}, fmt.Errorf("delete template: %w", err)
	}
	return ok("template deleted"), nil
}

// ListTemplates returns every template, enabled or not.
func (s *Service) ListTemplates(ctx context.Context) ([]models.DailyTemplate, error) {
	return s.store.ListTemplates(ctx)
}
