// internal/database/sessions.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

const sessionColumns = `
	id, slug, title, start_time, mode, map_name,
	max_slots, type, status, champion, announcement,
	created_at, updated_at
`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.StartTime, &s.Mode, &s.MapName,
		&s.MaxSlots, &s.Type, &s.Status, &s.Champion, &s.Announcement,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id=$1`
	s, err := scanSession(st.pool.QueryRow(ctx, q, id))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

func (st *Store) GetSessionBySlug(ctx context.Context, slug string) (*models.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE slug=$1`
	s, err := scanSession(st.pool.QueryRow(ctx, q, slug))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

func (st *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY start_time DESC`
	rows, err := st.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (st *Store) SessionSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM sessions WHERE slug=$1 AND id <> $2)`
	var taken bool
	if err := st.pool.QueryRow(ctx, q, slug, exclude).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (st *Store) InsertSession(ctx context.Context, s *models.Session) error {
	q := `
	INSERT INTO sessions (` + sessionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	err := pgx.BeginTxFunc(ctx, st.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			s.ID, s.Slug, s.Title, s.StartTime, s.Mode, s.MapName,
			s.MaxSlots, s.Type, s.Status, s.Champion, s.Announcement,
			s.CreatedAt, s.UpdatedAt,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (st *Store) UpdateSession(ctx context.Context, s *models.Session) error {
	q := `
	UPDATE sessions
	SET slug=$2, title=$3, start_time=$4, mode=$5, map_name=$6,
	    max_slots=$7, type=$8, status=$9, champion=$10, announcement=$11,
	    updated_at=$12
	WHERE id=$1
	`
	tag, err := st.pool.Exec(ctx, q,
		s.ID, s.Slug, s.Title, s.StartTime, s.Mode, s.MapName,
		s.MaxSlots, s.Type, s.Status, s.Champion, s.Announcement,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scrims.ErrNotFound
	}
	return nil
}

func (st *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := st.pool.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scrims.ErrNotFound
	}
	return nil
}

func (st *Store) CompleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := `
	UPDATE sessions
	SET status=$1, updated_at=now()
	WHERE start_time < $2 AND status <> $1
	`
	tag, err := st.pool.Exec(ctx, q, models.StatusCompleted, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to complete stale sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
