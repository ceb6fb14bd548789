// internal/database/leaderboards.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MHBDPro/rage-backend/internal/leaderboard"
	"github.com/MHBDPro/rage-backend/internal/models"
)

const leaderboardColumns = `id, slug, title, status, is_main, created_at, updated_at`

func scanLeaderboard(row pgx.Row) (*models.Leaderboard, error) {
	var lb models.Leaderboard
	err := row.Scan(&lb.ID, &lb.Slug, &lb.Title, &lb.Status, &lb.IsMain, &lb.CreatedAt, &lb.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

func (st *Store) ListLeaderboards(ctx context.Context) ([]models.Leaderboard, error) {
	q := `SELECT ` + leaderboardColumns + ` FROM leaderboards ORDER BY created_at DESC`
	rows, err := st.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []models.Leaderboard
	for rows.Next() {
		lb, err := scanLeaderboard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *lb)
	}
	return boards, rows.Err()
}

func (st *Store) GetLeaderboard(ctx context.Context, id uuid.UUID) (*models.Leaderboard, error) {
	q := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE id=$1`
	lb, err := scanLeaderboard(st.pool.QueryRow(ctx, q, id))
	if noRows(err) {
		return nil, leaderboard.ErrNotFound
	}
	return lb, err
}

func (st *Store) GetLeaderboardBySlug(ctx context.Context, slug string) (*models.Leaderboard, error) {
	q := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE slug=$1`
	lb, err := scanLeaderboard(st.pool.QueryRow(ctx, q, slug))
	if noRows(err) {
		return nil, leaderboard.ErrNotFound
	}
	return lb, err
}

func (st *Store) GetMainLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	q := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE is_main LIMIT 1`
	lb, err := scanLeaderboard(st.pool.QueryRow(ctx, q))
	if noRows(err) {
		return nil, leaderboard.ErrNotFound
	}
	return lb, err
}

func (st *Store) LeaderboardSlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM leaderboards WHERE slug=$1 AND id <> $2)`
	var taken bool
	if err := st.pool.QueryRow(ctx, q, slug, exclude).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (st *Store) InsertLeaderboard(ctx context.Context, lb *models.Leaderboard) error {
	q := `
	INSERT INTO leaderboards (id, slug, title, status, is_main, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	`
	err := pgx.BeginTxFunc(ctx, st.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, lb.ID, lb.Slug, lb.Title, lb.Status, lb.IsMain)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert leaderboard: %w", err)
	}
	return nil
}

func (st *Store) UpdateLeaderboard(ctx context.Context, lb *models.Leaderboard) error {
	q := `
	UPDATE leaderboards
	SET slug=$2, title=$3, status=$4, updated_at=now()
	WHERE id=$1
	`
	tag, err := st.pool.Exec(ctx, q, lb.ID, lb.Slug, lb.Title, lb.Status)
	if err != nil {
		return fmt.Errorf("failed to update leaderboard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}

func (st *Store) DeleteLeaderboard(ctx context.Context, id uuid.UUID) error {
	tag, err := st.pool.Exec(ctx, `DELETE FROM leaderboards WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}

// SetMain clears every is_main flag and sets the target's inside a single
// transaction, so readers never observe zero or multiple mains.
func (st *Store) SetMain(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginTxFunc(ctx, st.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE leaderboards SET is_main=FALSE WHERE is_main`); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE leaderboards SET is_main=TRUE, updated_at=now() WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return leaderboard.ErrNotFound
		}
		return nil
	})
}

func (st *Store) Entries(ctx context.Context, leaderboardID uuid.UUID) ([]models.LeaderboardEntry, error) {
	q := `
	SELECT id, leaderboard_id, team_name, points, wins, kills, matches
	FROM leaderboard_entries
	WHERE leaderboard_id=$1
	ORDER BY points DESC, team_name ASC
	`
	rows, err := st.pool.Query(ctx, q, leaderboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.LeaderboardID, &e.TeamName, &e.Points, &e.Wins, &e.Kills, &e.Matches); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (st *Store) InsertEntry(ctx context.Context, e *models.LeaderboardEntry) error {
	q := `
	INSERT INTO leaderboard_entries (id, leaderboard_id, team_name, points, wins, kills, matches)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := st.pool.Exec(ctx, q, e.ID, e.LeaderboardID, e.TeamName, e.Points, e.Wins, e.Kills, e.Matches)
	if uniqueViolation(err) {
		return leaderboard.ErrDuplicateTeam
	}
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (st *Store) UpdateEntry(ctx context.Context, e *models.LeaderboardEntry) error {
	q := `
	UPDATE leaderboard_entries
	SET team_name=$2, points=$3, wins=$4, kills=$5, matches=$6
	WHERE id=$1
	`
	tag, err := st.pool.Exec(ctx, q, e.ID, e.TeamName, e.Points, e.Wins, e.Kills, e.Matches)
	if uniqueViolation(err) {
		return leaderboard.ErrDuplicateTeam
	}
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}

func (st *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := st.pool.Exec(ctx, `DELETE FROM leaderboard_entries WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}
