// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/MHBDPro/rage-backend/internal/auth"
	"github.com/MHBDPro/rage-backend/internal/scrims"
)

// extractCookieToken extracts a named cookie value from "Cookie" header, or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}

// adminID authenticates the request's admin session token. Returns the admin
// id and whether the request is authenticated.
func adminID(r *http.Request) (string, bool) {
	cookie := r.Header.Get("Cookie")
	if !strings.Contains(cookie, "auth_token=") {
		return "", false
	}
	id, err := auth.AuthenticateJWT(extractCookieToken(cookie, "auth_token"))
	if err != nil {
		return "", false
	}
	return id, true
}

// clientIP resolves the originating address, preferring X-Forwarded-For since
// the service normally sits behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx != -1 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeUnauthorized is the uniform admin-gate rejection. It never reveals
// whether the target exists.
func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, scrims.Result{OK: false, Message: "unauthorized"})
}

// writeFailure logs the infrastructure error and returns a generic message;
// internal detail never reaches the client.
func writeFailure(w http.ResponseWriter, op string, err error) {
	log.WithField("op", op).Errorf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, scrims.Result{OK: false, Message: "something went wrong"})
}

// resultStatus maps a rejected Result to an HTTP status.
func resultStatus(res scrims.Result) int {
	if res.OK {
		return http.StatusOK
	}
	switch res.Reason {
	case scrims.ReasonNotFound:
		return http.StatusNotFound
	case scrims.ReasonValidation, scrims.ReasonBadSlot:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func writeResult(w http.ResponseWriter, res scrims.Result) {
	writeJSON(w, resultStatus(res), res)
}
