// internal/scrims/status.go
package scrims

import (
	"time"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// RefZone is the platform's fixed reference timezone (UTC+3, no daylight
// saving). All date keys and daily schedules are computed in it.
var RefZone = time.FixedZone("UTC+3", 3*60*60)

// EffectiveStatus derives the display-time state of a session without
// touching the persisted status. A completed session stays completed; any
// other session is active from its start time onward and closed (upcoming)
// before it. Registration opens exactly at the start instant, which is the
// moment the public countdown counts down to.
func EffectiveStatus(s *models.Session, now time.Time) models.SessionStatus {
	if s.Status == models.StatusCompleted {
		return models.StatusCompleted
	}
	if !now.Before(s.StartTime) {
		return models.StatusActive
	}
	return models.StatusClosed
}
