// internal/handlers/admin_scrims.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

type sessionRequest struct {
	Title        string    `json:"title"`
	StartTime    time.Time `json:"start_time"`
	Mode         string    `json:"mode"`
	MapName      string    `json:"map_name"`
	MaxSlots     int       `json:"max_slots"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Champion     string    `json:"champion"`
	Announcement string    `json:"announcement"`
}

func (req *sessionRequest) toInput() scrims.SessionInput {
	return scrims.SessionInput{
		Title:        req.Title,
		StartTime:    req.StartTime,
		Mode:         models.SessionMode(req.Mode),
		MapName:      req.MapName,
		MaxSlots:     req.MaxSlots,
		Type:         models.TournamentType(req.Type),
		Status:       models.SessionStatus(req.Status),
		Champion:     req.Champion,
		Announcement: req.Announcement,
	}
}

// AdminCreateScrimHandler creates a session from admin input.
func AdminCreateScrimHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}

		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		sess, res, err := svc.CreateSession(r.Context(), req.toInput())
		if err != nil {
			writeFailure(w, "create scrim", err)
			return
		}
		if !res.OK {
			writeResult(w, res)
			return
		}
		writeJSON(w, http.StatusCreated, sess)
	}
}

// AdminUpdateScrimHandler applies admin edits to a session.
func AdminUpdateScrimHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		sess, res, err := svc.UpdateSession(r.Context(), id, req.toInput())
		if err != nil {
			writeFailure(w, "update scrim", err)
			return
		}
		if !res.OK {
			writeResult(w, res)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// AdminDeleteScrimHandler removes a session and its slots.
func AdminDeleteScrimHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		res, err := svc.DeleteSession(r.Context(), id)
		if err != nil {
			writeFailure(w, "delete scrim", err)
			return
		}
		writeResult(w, res)
	}
}

// AdminSetChampionHandler records the winning team on a session.
func AdminSetChampionHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req struct {
			Champion string `json:"champion"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.SetChampion(r.Context(), id, req.Champion)
		if err != nil {
			writeFailure(w, "set champion", err)
			return
		}
		writeResult(w, res)
	}
}

type slotActionRequest struct {
	SlotNumber int    `json:"slot"`
	PlayerName string `json:"player_name"`
	PlayerTag  string `json:"player_tag"`
	Team       string `json:"team"`
}

// AdminAddSlotHandler places a player manually.
func AdminAddSlotHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req slotActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.ManualAdd(r.Context(), id, req.SlotNumber, req.PlayerName, req.PlayerTag, req.Team)
		if err != nil {
			writeFailure(w, "manual add", err)
			return
		}
		writeResult(w, res)
	}
}

// AdminLockSlotHandler reserves a slot.
func AdminLockSlotHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req slotActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.LockSlot(r.Context(), id, req.SlotNumber)
		if err != nil {
			writeFailure(w, "lock slot", err)
			return
		}
		writeResult(w, res)
	}
}

// AdminUnlockSlotHandler reopens a locked slot.
func AdminUnlockSlotHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "scrim not found"})
			return
		}

		var req slotActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.UnlockSlot(r.Context(), id, req.SlotNumber)
		if err != nil {
			writeFailure(w, "unlock slot", err)
			return
		}
		writeResult(w, res)
	}
}

// AdminDeleteSlotHandler removes a slot row by id, freeing the position.
func AdminDeleteSlotHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		slotID, err := uuid.Parse(r.PathValue("slotId"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "slot not found"})
			return
		}

		res, err := svc.RemoveSlot(r.Context(), slotID)
		if err != nil {
			writeFailure(w, "delete slot", err)
			return
		}
		writeResult(w, res)
	}
}

type templateRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	SlugSuffix  string `json:"slug_suffix"`
	StartMinute int    `json:"start_minute"`
	Mode        string `json:"mode"`
	MapName     string `json:"map_name"`
	MaxSlots    int    `json:"max_slots"`
	Type        string `json:"type"`
	Enabled     bool   `json:"enabled"`
}

func (req *templateRequest) toInput() scrims.TemplateInput {
	return scrims.TemplateInput{
		Name:        req.Name,
		Title:       req.Title,
		SlugSuffix:  req.SlugSuffix,
		StartMinute: req.StartMinute,
		Mode:        models.SessionMode(req.Mode),
		MapName:     req.MapName,
		MaxSlots:    req.MaxSlots,
		Type:        models.TournamentType(req.Type),
		Enabled:     req.Enabled,
	}
}

// AdminListTemplatesHandler lists daily templates. Unauthenticated callers
// get an empty list, not an error.
func AdminListTemplatesHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeJSON(w, http.StatusOK, []models.DailyTemplate{})
			return
		}

		templates, err := svc.ListTemplates(r.Context())
		if err != nil {
			writeFailure(w, "list templates", err)
			return
		}
		if templates == nil {
			templates = []models.DailyTemplate{}
		}
		writeJSON(w, http.StatusOK, templates)
	}
}

// AdminCreateTemplateHandler registers a daily template.
func AdminCreateTemplateHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}

		var req templateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		tpl, res, err := svc.CreateTemplate(r.Context(), req.toInput())
		if err != nil {
			writeFailure(w, "create template", err)
			return
		}
		if !res.OK {
			writeResult(w, res)
			return
		}
		writeJSON(w, http.StatusCreated, tpl)
	}
}

// AdminUpdateTemplateHandler replaces a template definition.
func AdminUpdateTemplateHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "template not found"})
			return
		}

		var req templateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		res, err := svc.UpdateTemplate(r.Context(), id, req.toInput())
		if err != nil {
			writeFailure(w, "update template", err)
			return
		}
		writeResult(w, res)
	}
}

// AdminDeleteTemplateHandler removes a template.
func AdminDeleteTemplateHandler(svc *scrims.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonNotFound, Message: "template not found"})
			return
		}

		res, err := svc.DeleteTemplate(r.Context(), id)
		if err != nil {
			writeFailure(w, "delete template", err)
			return
		}
		writeResult(w, res)
	}
}
