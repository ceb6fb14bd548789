// internal/database/templates.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

const templateColumns = `
	id, name, title, slug_suffix, start_minute,
	mode, map_name, max_slots, type, enabled
`

func scanTemplate(row pgx.Row) (*models.DailyTemplate, error) {
	var t models.DailyTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.Title, &t.SlugSuffix, &t.StartMinute,
		&t.Mode, &t.MapName, &t.MaxSlots, &t.Type, &t.Enabled,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (st *Store) ListTemplates(ctx context.Context) ([]models.DailyTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM daily_templates ORDER BY start_minute`
	rows, err := st.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.DailyTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (st *Store) InsertTemplate(ctx context.Context, t *models.DailyTemplate) error {
	q := `
	INSERT INTO daily_templates (` + templateColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	err := pgx.BeginTxFunc(ctx, st.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			t.ID, t.Name, t.Title, t.SlugSuffix, t.StartMinute,
			t.Mode, t.MapName, t.MaxSlots, t.Type, t.Enabled,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

func (st *Store) UpdateTemplate(ctx context.Context, t *models.DailyTemplate) error {
	q := `
	UPDATE daily_templates
	SET name=$2, title=$3, slug_suffix=$4, start_minute=$5,
	    mode=$6, map_name=$7, max_slots=$8, type=$9, enabled=$10
	WHERE id=$1
	`
	tag, err := st.pool.Exec(ctx, q,
		t.ID, t.Name, t.Title, t.SlugSuffix, t.StartMinute,
		t.Mode, t.MapName, t.MaxSlots, t.Type, t.Enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scrims.ErrNotFound
	}
	return nil
}

func (st *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := st.pool.Exec(ctx, `DELETE FROM daily_templates WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scrims.ErrNotFound
	}
	return nil
}
