// internal/database/migrate.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate bootstraps the schema. Statements are idempotent so the server can
// run them on every start. The unique indexes here are load-bearing: the
// composite (session_id, slot_number) key is what makes concurrent slot
// registration safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			mode TEXT NOT NULL,
			map_name TEXT NOT NULL DEFAULT '',
			max_slots INT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			champion TEXT NOT NULL DEFAULT '',
			announcement TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS slots (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			slot_number INT NOT NULL,
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			player_name TEXT NOT NULL DEFAULT '',
			player_tag TEXT NOT NULL DEFAULT '',
			team TEXT NOT NULL DEFAULT '',
			ip TEXT NOT NULL DEFAULT '',
			names TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (session_id, slot_number)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_templates (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			title TEXT NOT NULL,
			slug_suffix TEXT NOT NULL,
			start_minute INT NOT NULL,
			mode TEXT NOT NULL,
			map_name TEXT NOT NULL DEFAULT '',
			max_slots INT NOT NULL,
			type TEXT NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS leaderboards (
			id UUID PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			is_main BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id UUID PRIMARY KEY,
			leaderboard_id UUID NOT NULL REFERENCES leaderboards(id) ON DELETE CASCADE,
			team_name TEXT NOT NULL,
			points INT NOT NULL DEFAULT 0,
			wins INT NOT NULL DEFAULT 0,
			kills INT NOT NULL DEFAULT 0,
			matches INT NOT NULL DEFAULT 0,
			UNIQUE (leaderboard_id, team_name)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INT PRIMARY KEY CHECK (id = 1),
			maintenance BOOLEAN NOT NULL DEFAULT FALSE,
			announcement TEXT NOT NULL DEFAULT '',
			rules TEXT NOT NULL DEFAULT '',
			points JSONB NOT NULL DEFAULT '{}'
		)`,
		`INSERT INTO settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_slots_session ON slots(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time)`,
	}

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
