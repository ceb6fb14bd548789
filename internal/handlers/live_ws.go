// internal/handlers/live_ws.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/MHBDPro/rage-backend/internal/live"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// LiveScrimHandler upgrades to a WebSocket and streams slot-change events for
// one session until the client disconnects. Clients re-fetch the grid when an
// event arrives; the events themselves carry no slot data.
func LiveScrimHandler(logger *logrus.Logger, svc *scrims.Service, hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetSessionBySlug(r.Context(), r.PathValue("slug"))
		if errors.Is(err, scrims.ErrNotFound) {
			http.Error(w, "scrim not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "something went wrong", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		sessionID := detail.ID
		sub := hub.Subscribe(sessionID)
		defer hub.Unsubscribe(sessionID, sub)

		logger.Infof("live feed connected for scrim %s (%s)", detail.Slug, r.RemoteAddr)

		ctx := r.Context()

		// Read pump: discard client frames, detect disconnect.
		readDone := make(chan struct{})
		go func() {
			defer close(readDone)
			for {
				if _, _, err := c.Read(ctx); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				c.Close(websocket.StatusNormalClosure, "server shutting down")
				return
			case <-readDone:
				c.Close(websocket.StatusNormalClosure, "client closed")
				return
			case ev, okCh := <-sub.Out:
				if !okCh {
					c.Close(websocket.StatusNormalClosure, "subscription closed")
					return
				}
				if err := writeEvent(ctx, c, ev); err != nil {
					logger.Infof("live feed disconnected for scrim %s: %v", detail.Slug, err)
					return
				}
			}
		}
	}
}

func writeEvent(ctx context.Context, c *websocket.Conn, ev live.SlotEvent) error {
	return wsjson.Write(ctx, c, ev)
}
