// internal/models/leaderboard.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardStatus is the lifecycle state of a leaderboard.
type LeaderboardStatus string

const (
	LeaderboardActive   LeaderboardStatus = "active"
	LeaderboardArchived LeaderboardStatus = "archived"
)

func (s LeaderboardStatus) Valid() bool {
	return s == LeaderboardActive || s == LeaderboardArchived
}

// Leaderboard groups ranked entries under a unique slug. At most one
// leaderboard platform-wide carries IsMain.
type Leaderboard struct {
	ID        uuid.UUID         `json:"id"`
	Slug      string            `json:"slug"`
	Title     string            `json:"title"`
	Status    LeaderboardStatus `json:"status"`
	IsMain    bool              `json:"is_main"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// LeaderboardEntry is one team's aggregate counters on a leaderboard.
// Unique on (leaderboard id, team name); admin-edited only.
type LeaderboardEntry struct {
	ID            uuid.UUID `json:"id"`
	LeaderboardID uuid.UUID `json:"leaderboard_id"`
	TeamName      string    `json:"team_name"`
	Points        int       `json:"points"`
	Wins          int       `json:"wins"`
	Kills         int       `json:"kills"`
	Matches       int       `json:"matches"`
}
