// internal/handlers/admin_auth.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MHBDPro/rage-backend/internal/database"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginHandler verifies credentials and sets the auth_token cookie.
// Wrong username and wrong password are indistinguishable to the caller.
func AdminLoginHandler(store *database.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResult(w, scrims.Result{OK: false, Reason: scrims.ReasonValidation, Message: "invalid payload"})
			return
		}

		token, err := store.AuthenticateAdmin(r.Context(), req.Username, req.Password)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			HttpOnly: true,
			Path:     "/",
		})
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "logged in"})
	}
}

// AdminLogoutHandler clears the session cookie.
func AdminLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    "",
			HttpOnly: true,
			Path:     "/",
			MaxAge:   -1,
		})
		writeJSON(w, http.StatusOK, scrims.Result{OK: true, Message: "logged out"})
	}
}
