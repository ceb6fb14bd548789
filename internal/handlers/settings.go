// internal/handlers/settings.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MHBDPro/rage-backend/internal/database"
	"github.com/MHBDPro/rage-backend/internal/models"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// publicSettings is the subset of Settings exposed without authentication.
type publicSettings struct {
	Maintenance  bool               `json:"maintenance"`
	Announcement string             `json:"announcement"`
	Rules        string             `json:"rules"`
	Points       models.PointSystem `json:"points"`
}

// GetSettingsHandler exposes the public settings fields.
func GetSettingsHandler(store *database.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := store.GetSettings(r.Context())
		if err != nil {
			writeFailure(w, "get settings", err)
			return
		}
		writeJSON(w, http.StatusOK, publicSettings{
			Maintenance:  s.Maintenance,
			Announcement: s.Announcement,
			Rules:        s.Rules,
			Points:       s.Points,
		})
	}
}

// AdminUpdateSettingsHandler overwrites the settings singleton.
func AdminUpdateSettingsHandler(store *database.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authed := adminID(r); !authed {
			writeUnauthorized(w)
			return
		}

		var s models.Settings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		if err := store.UpdateSettings(r.Context(), &s); err != nil {
			writeFailure(w, "update settings", err)
			return
		}
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "settings saved"})
	}
}
