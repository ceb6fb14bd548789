// internal/database/slots.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

const slotColumns = `
	id, session_id, slot_number, is_locked,
	player_name, player_tag, team, ip, names, created_at
`

func scanSlot(row pgx.Row) (*models.Slot, error) {
	var s models.Slot
	err := row.Scan(
		&s.ID, &s.SessionID, &s.Number, &s.IsLocked,
		&s.PlayerName, &s.PlayerTag, &s.Team, &s.IP, &s.Names, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *Store) SlotsForSession(ctx context.Context, sessionID uuid.UUID) ([]models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE session_id=$1 ORDER BY slot_number`
	rows, err := st.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

func (st *Store) CountOccupied(ctx context.Context, sessionID uuid.UUID) (int, error) {
	q := `SELECT COUNT(*) FROM slots WHERE session_id=$1 AND NOT is_locked`
	var n int
	if err := st.pool.QueryRow(ctx, q, sessionID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (st *Store) FindSlotByIP(ctx context.Context, sessionID uuid.UUID, ip string) (*models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE session_id=$1 AND ip=$2 AND NOT is_locked`
	s, err := scanSlot(st.pool.QueryRow(ctx, q, sessionID, ip))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

func (st *Store) FindSlotByTag(ctx context.Context, sessionID uuid.UUID, tag string) (*models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE session_id=$1 AND player_tag=$2 AND NOT is_locked`
	s, err := scanSlot(st.pool.QueryRow(ctx, q, sessionID, tag))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

func (st *Store) GetSlotByNumber(ctx context.Context, sessionID uuid.UUID, number int) (*models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE session_id=$1 AND slot_number=$2`
	s, err := scanSlot(st.pool.QueryRow(ctx, q, sessionID, number))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

func (st *Store) GetSlot(ctx context.Context, id uuid.UUID) (*models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM slots WHERE id=$1`
	s, err := scanSlot(st.pool.QueryRow(ctx, q, id))
	if noRows(err) {
		return nil, scrims.ErrNotFound
	}
	return s, err
}

// InsertSlot relies on the (session_id, slot_number) unique constraint for
// race safety; a violation surfaces as scrims.ErrSlotTaken so the allocator
// can report it exactly like a failed pre-check.
func (st *Store) InsertSlot(ctx context.Context, s *models.Slot) error {
	q := `
	INSERT INTO slots (` + slotColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := st.pool.Exec(ctx, q,
		s.ID, s.SessionID, s.Number, s.IsLocked,
		s.PlayerName, s.PlayerTag, s.Team, s.IP, s.Names, s.CreatedAt,
	)
	if uniqueViolation(err) {
		return scrims.ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

func (st *Store) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	tag, err := st.pool.Exec(ctx, `DELETE FROM slots WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scrims.ErrNotFound
	}
	return nil
}
