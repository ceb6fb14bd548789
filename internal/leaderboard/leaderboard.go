// internal/leaderboard/leaderboard.go
package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/slug"
)

// ErrNotFound is returned by Store lookups when no row exists.
var ErrNotFound = errors.New("not found")

// ErrDuplicateTeam is returned by InsertEntry when the
// (leaderboard_id, team_name) unique constraint fires.
var ErrDuplicateTeam = errors.New("team already on leaderboard")

// Store is the persistence surface for leaderboards. Entries returned by
// Entries must already be ranked: points descending, team name ascending.
type Store interface {
	ListLeaderboards(ctx context.Context) ([]models.Leaderboard, error)
	GetLeaderboard(ctx context.Context, id uuid.UUID) (*models.Leaderboard, error)
	GetLeaderboardBySlug(ctx context.Context, slug string) (*models.Leaderboard, error)
	GetMainLeaderboard(ctx context.Context) (*models.Leaderboard, error)
	LeaderboardSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	InsertLeaderboard(ctx context.Context, lb *models.Leaderboard) error
	UpdateLeaderboard(ctx context.Context, lb *models.Leaderboard) error
	DeleteLeaderboard(ctx context.Context, id uuid.UUID) error
	// SetMain clears is_main everywhere and sets it on id inside one
	// transaction, so no outside reader observes zero or two mains.
	SetMain(ctx context.Context, id uuid.UUID) error

	Entries(ctx context.Context, leaderboardID uuid.UUID) ([]models.LeaderboardEntry, error)
	InsertEntry(ctx context.Context, e *models.LeaderboardEntry) error
	UpdateEntry(ctx context.Context, e *models.LeaderboardEntry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// Service is the read-mostly leaderboard aggregator plus its admin CRUD.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Detail is a leaderboard with its ranked entries and derived champion.
type Detail struct {
	models.Leaderboard
	Entries  []models.LeaderboardEntry `json:"entries"`
	Champion string                    `json:"champion,omitempty"`
}

// List returns every leaderboard.
func (s *Service) List(ctx context.Context) ([]models.Leaderboard, error) {
	return s.store.ListLeaderboards(ctx)
}

// Get returns one leaderboard by slug with ranked entries. The champion is
// the top-ranked team, if any.
func (s *Service) Get(ctx context.Context, lbSlug string) (*Detail, error) {
	lb, err := s.store.GetLeaderboardBySlug(ctx, lbSlug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, lb)
}

// Main returns the platform's main leaderboard, or ErrNotFound when none is
// designated.
func (s *Service) Main(ctx context.Context) (*Detail, error) {
	lb, err := s.store.GetMainLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, lb)
}

func (s *Service) detail(ctx context.Context, lb *models.Leaderboard) (*Detail, error) {
	entries, err := s.store.Entries(ctx, lb.ID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	d := &Detail{Leaderboard: *lb, Entries: entries}
	if len(entries) > 0 {
		d.Champion = entries[0].TeamName
	}
	return d, nil
}

// Create makes a new leaderboard with a title-derived unique slug.
func (s *Service) Create(ctx context.Context, title string, status models.LeaderboardStatus) (*models.Leaderboard, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !status.Valid() {
		status = models.LeaderboardActive
	}

	lbSlug, err := slug.EnsureUnique(ctx, slug.Make(title), func(ctx context.Context, candidate string) (bool, error) {
		return s.store.LeaderboardSlugTaken(ctx, candidate, uuid.Nil)
	})
	if err != nil {
		return nil, fmt.Errorf("derive leaderboard slug: %w", err)
	}

	lb := &models.Leaderboard{
		ID:     uuid.New(),
		Slug:   lbSlug,
		Title:  title,
		Status: status,
	}
	if err := s.store.InsertLeaderboard(ctx, lb); err != nil {
		return nil, fmt.Errorf("insert leaderboard: %w", err)
	}
	return lb, nil
}

// Update edits title/status; the slug is re-derived when the title changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, title string, status models.LeaderboardStatus) (*models.Leaderboard, error) {
	lb, err := s.store.GetLeaderboard(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != "" && title != lb.Title {
		newSlug, err := slug.EnsureUnique(ctx, slug.Make(title), func(ctx context.Context, candidate string) (bool, error) {
			return s.store.LeaderboardSlugTaken(ctx, candidate, lb.ID)
		})
		if err != nil {
			return nil, fmt.Errorf("derive leaderboard slug: %w", err)
		}
		lb.Slug = newSlug
		lb.Title = title
	}
	if status.Valid() {
		lb.Status = status
	}

	if err := s.store.UpdateLeaderboard(ctx, lb); err != nil {
		return nil, fmt.Errorf("update leaderboard: %w", err)
	}
	return lb, nil
}

// Delete removes a leaderboard and (by cascade) its entries.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteLeaderboard(ctx, id)
}

// SetMain designates id as the platform's single main leaderboard.
func (s *Service) SetMain(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.GetLeaderboard(ctx, id); err != nil {
		return err
	}
	return s.store.SetMain(ctx, id)
}

// EntryInput is one team's aggregate counters, admin-edited.
type EntryInput struct {
	TeamName string
	Points   int
	Wins     int
	Kills    int
	Matches  int
}

// AddEntry appends a team to a leaderboard. Team names are unique per board.
func (s *Service) AddEntry(ctx context.Context, leaderboardID uuid.UUID, in EntryInput) (*models.LeaderboardEntry, error) {
	if in.TeamName == "" {
		return nil, fmt.Errorf("team name is required")
	}
	if _, err := s.store.GetLeaderboard(ctx, leaderboardID); err != nil {
		return nil, err
	}

	e := &models.LeaderboardEntry{
		ID:            uuid.New(),
		LeaderboardID: leaderboardID,
		TeamName:      in.TeamName,
		Points:        in.Points,
		Wins:          in.Wins,
		Kills:         in.Kills,
		Matches:       in.Matches,
	}
	if err := s.store.InsertEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEntry replaces a team's counters.
func (s *Service) UpdateEntry(ctx context.Context, entryID uuid.UUID, in EntryInput) error {
	e := &models.LeaderboardEntry{
		ID:       entryID,
		TeamName: in.TeamName,
		Points:   in.Points,
		Wins:     in.Wins,
		Kills:    in.Kills,
		Matches:  in.Matches,
	}
	return s.store.UpdateEntry(ctx, e)
}

// DeleteEntry removes a team from its leaderboard.
func (s *Service) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	return s.store.DeleteEntry(ctx, entryID)
}
