// internal/handlers/notify.go
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/MHBDPro/rage-backend/internal/cache"
	"github.com/MHBDPro/rage-backend/internal/live"
)

// SlotNotifier fans a slot mutation out to every display surface: the redis
// invalidation channel for the page cache and the live hub for connected
// WebSocket clients. Implements scrims.Notifier.
type SlotNotifier struct {
	Hub *live.Hub
}

func (n *SlotNotifier) SlotsChanged(sessionID uuid.UUID, slug string) {
	if n.Hub != nil {
		n.Hub.SlotsChanged(sessionID, slug)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.PublishInvalidation(ctx, "/scrims", "/scrims/"+slug); err != nil {
		// Invalidation is best-effort; the mutation already committed.
		log.Warnf("invalidation publish failed for %s: %v", slug, err)
	}
}
