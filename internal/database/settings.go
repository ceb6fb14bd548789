// internal/database/settings.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// GetSettings reads the singleton settings row. The row is seeded by the
// migration, so a missing row is an infrastructure failure, not a not-found.
func (st *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	q := `SELECT maintenance, announcement, rules, points FROM settings WHERE id=1`
	var s models.Settings
	var points []byte
	if err := st.pool.QueryRow(ctx, q).Scan(&s.Maintenance, &s.Announcement, &s.Rules, &points); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if len(points) > 0 {
		if err := json.Unmarshal(points, &s.Points); err != nil {
			return nil, fmt.Errorf("failed to decode point system: %w", err)
		}
	}
	return &s, nil
}

// UpdateSettings overwrites the singleton row. Last write wins; admin writes
// are rare enough that no concurrency token is kept.
func (st *Store) UpdateSettings(ctx context.Context, s *models.Settings) error {
	points, err := json.Marshal(s.Points)
	if err != nil {
		return fmt.Errorf("failed to encode point system: %w", err)
	}
	q := `UPDATE settings SET maintenance=$1, announcement=$2, rules=$3, points=$4 WHERE id=1`
	if _, err := st.pool.Exec(ctx, q, s.Maintenance, s.Announcement, s.Rules, points); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
