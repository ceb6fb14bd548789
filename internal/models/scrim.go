// internal/models/scrim.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the persisted lifecycle state of a scrim session. The
// display-time state is derived separately (see scrims.EffectiveStatus) and
// never written back.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusClosed    SessionStatus = "closed"
	StatusCompleted SessionStatus = "completed"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusCompleted:
		return true
	}
	return false
}

// SessionMode is the match format of a session.
type SessionMode string

const (
	ModeSingle      SessionMode = "single"
	ModeBestOfThree SessionMode = "bo3"
)

func (m SessionMode) Valid() bool {
	return m == ModeSingle || m == ModeBestOfThree
}

// TournamentType distinguishes the recurring daily scrims from one-off
// special events.
type TournamentType string

const (
	TypeDaily   TournamentType = "daily"
	TypeSpecial TournamentType = "special"
)

func (t TournamentType) Valid() bool {
	return t == TypeDaily || t == TypeSpecial
}

// Session is a single time-boxed tournament event with a fixed capacity.
type Session struct {
	ID           uuid.UUID      `json:"id"`
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	StartTime    time.Time      `json:"start_time"`
	Mode         SessionMode    `json:"mode"`
	MapName      string         `json:"map_name"`
	MaxSlots     int            `json:"max_slots"`
	Type         TournamentType `json:"type"`
	Status       SessionStatus  `json:"status"`
	Champion     string         `json:"champion,omitempty"`
	Announcement string         `json:"announcement,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AdminIPMarker is stored as the originating IP for admin manual adds so
// they never collide with a real client's per-IP dedup.
const AdminIPMarker = "admin"

// Slot is one numbered registration position inside a session. A missing row
// means the position is open; IsLocked discriminates admin-reserved rows from
// occupied ones.
type Slot struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	Number     int       `json:"number"`
	IsLocked   bool      `json:"is_locked"`
	PlayerName string    `json:"player_name,omitempty"`
	PlayerTag  string    `json:"player_tag,omitempty"`
	Team       string    `json:"team,omitempty"`
	IP         string    `json:"-"`
	Names      []string  `json:"names,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DailyTemplate is a recurring session definition materialized into a
// concrete Session once per calendar day by the rollover.
type DailyTemplate struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	SlugSuffix string         `json:"slug_suffix"`
	// Minutes after midnight in the platform's reference timezone.
	StartMinute int            `json:"start_minute"`
	Mode        SessionMode    `json:"mode"`
	MapName     string         `json:"map_name"`
	MaxSlots    int            `json:"max_slots"`
	Type        TournamentType `json:"type"`
	Enabled     bool           `json:"enabled"`
}
