// internal/handlers/scrims.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// ListScrimsHandler returns every session with effective status and occupancy.
func ListScrimsHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListSessions(r.Context())
		if err != nil {
			writeFailure(w, "list scrims", err)
			return
		}
		if views == nil {
			views = []scrims.SessionView{}
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// GetScrimHandler returns one session with its slot grid.
func GetScrimHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetSessionBySlug(r.Context(), r.PathValue("slug"))
		if errors.Is(err, scrims.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}
		if err != nil {
			writeFailure(w, "get scrim", err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

type registerRequest struct {
	SlotNumber int    `json:"slot"`
	PlayerName string `json:"player_name"`
	PlayerTag  string `json:"player_tag"`
	Team       string `json:"team"`
}

// RegisterHandler is the public slot registration entry point.
func RegisterHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.Register(r.Context(), scrims.RegisterRequest{
			SessionID:  sessionID,
			SlotNumber: req.SlotNumber,
			PlayerName: req.PlayerName,
			PlayerTag:  req.PlayerTag,
			Team:       req.Team,
			IP:         clientIP(r),
		})
		if err != nil {
			writeFailure(w, "register", err)
			return
		}
		writeResult(w, res)
	}
}

// RolloverHandler is the cron-triggered daily materialization endpoint,
// guarded by a shared secret header.
func RolloverHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := os.Getenv("CRON_SECRET")
		if secret == "" || r.Header.Get("x-cron-secret") != secret {
			writeUnauthorized(w)
			return
		}

		res, err := svc.Rollover(r.Context())
		if err != nil {
			writeFailure(w, "rollover", err)
			return
		}
		writeResult(w, res)
	}
}
