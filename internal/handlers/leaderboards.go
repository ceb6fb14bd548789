// internal/handlers/leaderboards.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/leaderboard"
	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// ListLeaderboardsHandler returns every leaderboard.
func ListLeaderboardsHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards, err := svc.List(r.Context())
		if err != nil {
			writeFailure(w, "list leaderboards", err)
			return
		}
		if boards == nil {
			boards = []models.Leaderboard{}
		}
		writeJSON(w, http.StatusOK, boards)
	}
}

// GetLeaderboardHandler returns one leaderboard with ranked entries.
func GetLeaderboardHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.Get(r.Context(), r.PathValue("slug"))
		if errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}
		if err != nil {
			writeFailure(w, "get leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

// GetMainLeaderboardHandler returns the designated main leaderboard.
func GetMainLeaderboardHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.Main(r.Context())
		if errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "no main leaderboard"})
			return
		}
		if err != nil {
			writeFailure(w, "get main leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

type leaderboardRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// AdminCreateLeaderboardHandler makes a new leaderboard.
func AdminCreateLeaderboardHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}

		var req leaderboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		lb, err := svc.Create(r.Context(), req.Title, models.LeaderboardStatus(req.Status))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, lb)
	}
}

// AdminUpdateLeaderboardHandler edits title/status.
func AdminUpdateLeaderboardHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}

		var req leaderboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		lb, err := svc.Update(r.Context(), id, req.Title, models.LeaderboardStatus(req.Status))
		if errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}
		if err != nil {
			writeFailure(w, "update leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, lb)
	}
}

// AdminDeleteLeaderboardHandler removes a leaderboard and its entries.
func AdminDeleteLeaderboardHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}

		if err := svc.Delete(r.Context(), id); errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		} else if err != nil {
			writeFailure(w, "delete leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "leaderboard deleted"})
	}
}

// AdminSetMainHandler designates the single main leaderboard.
func AdminSetMainHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}

		if err := svc.SetMain(r.Context(), id); errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		} else if err != nil {
			writeFailure(w, "set main leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "main leaderboard set"})
	}
}

type entryRequest struct {
	TeamName string `json:"team_name"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Kills    int    `json:"kills"`
	Matches  int    `json:"matches"`
}

func (req *entryRequest) toInput() leaderboard.EntryInput {
	return leaderboard.EntryInput{
		TeamName: req.TeamName,
		Points:   req.Points,
		Wins:     req.Wins,
		Kills:    req.Kills,
		Matches:  req.Matches,
	}
}

// AdminAddEntryHandler appends a team to a leaderboard.
func AdminAddEntryHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
			return
		}

		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		entry, err := svc.AddEntry(r.Context(), id, req.toInput())
		switch {
		case errors.Is(err, leaderboard.ErrNotFound):
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "leaderboard not found"})
		case errors.Is(err, leaderboard.ErrDuplicateTeam):
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonDuplicateTag, Message: "team is already on this leaderboard"})
		case err != nil:
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: err.Error()})
		default:
			writeJSON(w, http.StatusCreated, entry)
		}
	}
}

// AdminUpdateEntryHandler replaces a team's counters.
func AdminUpdateEntryHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		entryID, err := uuid.Parse(r.PathValue("entryId"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "entry not found"})
			return
		}

		var req entryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		err = svc.UpdateEntry(r.Context(), entryID, req.toInput())
		switch {
		case errors.Is(err, leaderboard.ErrNotFound):
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "entry not found"})
		case errors.Is(err, leaderboard.ErrDuplicateTeam):
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonDuplicateTag, Message: "team is already on this leaderboard"})
		case err != nil:
			writeFailure(w, "update entry", err)
		default:
			writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "entry updated"})
		}
	}
}

// AdminDeleteEntryHandler removes a team from its leaderboard.
func AdminDeleteEntryHandler(svc *leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		entryID, err := uuid.Parse(r.PathValue("entryId"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "entry not found"})
			return
		}

		if err := svc.DeleteEntry(r.Context(), entryID); errors.Is(err, leaderboard.ErrNotFound) {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "entry not found"})
			return
		} else if err != nil {
			writeFailure(w, "delete entry", err)
			return
		}
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "entry deleted"})
	}
}
