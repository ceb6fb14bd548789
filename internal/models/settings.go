// internal/models/settings.go
package models

// PointSystem is the scoring configuration embedded in Settings. Stored as a
// JSONB column; the backend only round-trips it for the admin panel and the
// public rules page.
type PointSystem struct {
	KillPoints      int   `json:"kill_points"`
	PlacementPoints []int `json:"placement_points"`
}

// Settings is the process-wide singleton row. Read once per registration
// attempt and passed into the allocator explicitly; mutated only by admins.
type Settings struct {
	Maintenance  bool        `json:"maintenance"`
	Announcement string      `json:"announcement"`
	Rules        string      `json:"rules"`
	Points       PointSystem `json:"points"`
}
