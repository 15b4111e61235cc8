package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/feel-write/feelwrite-backend/internal/store"
)

type ActivityRequest struct {
	Path string `json:"path"`
}

type ActivityResponse struct {
	Success bool `json:"success"`
}

// RecordActivity stores a page-view event. Recording is best-effort: a missing
// Postgres connection or an insert failure still returns 200 so the frontend
// never surfaces tracking errors.
func RecordActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		req.Path = "/"
	}

	userID := ""
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		if sess, err := authService.GetSession(r.Context(), token); err == nil && sess != nil {
			userID = sess.User.ID
		}
	}
	if userID == "" {
		userID = store.DefaultUserID
	}

	if err := services.RecordActivity(userID, req.Path); err != nil {
		log.Printf("⚠️ Failed to record activity: %v", err)
	}

	writeJSON(w, http.StatusOK, ActivityResponse{Success: true})
}
