// internal/scrims/service.go
package scrims

import (
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/textfilter"
)

// Service bundles the scrim registry, the slot allocator and the daily
// rollover on top of a Store. It holds no state of its own; every operation
// reads what it needs (including the Settings singleton) per call.
type Service struct {
	store  Store
	filter *textfilter.Filter
	notify Notifier

	// now is swapped out in tests to control registration open times.
	now func() time.Time
}

// NewService builds a Service. notify may be nil when no display surface
// needs refresh signals (tests, one-off tools).
func NewService(store Store, filter *textfilter.Filter, notify Notifier) *Service {
	return &Service{store: store, filter: filter, notify: notify, now: time.Now}
}

func (s *Service) notifySlots(sessionID uuid.UUID, slug string) {
	if s.notify != nil {
		s.notify.SlotsChanged(sessionID, slug)
	}
}
