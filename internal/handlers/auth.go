package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/feel-write/feelwrite-backend/internal/middleware"
	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/services"
)

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OAuthRequest struct {
	Provider string `json:"provider"`
}

type AuthResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	User      *models.Identity `json:"user,omitempty"`
	Token     string           `json:"token,omitempty"`
	ExpiresAt int64            `json:"expires_at,omitempty"`
}

type SessionResponse struct {
	Success bool            `json:"success"`
	Session *models.Session `json:"session"`
}

// setAuthCookie mirrors sign-in state into a presence cookie. The cookie is a
// route-guard signal only; the bearer token remains the credential.
func setAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(services.SessionDuration.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.AuthCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Signin authenticates against the fixed demo user directory.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, token, err := authService.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	setAuthCookie(w)
	writeJSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Signed in successfully",
		User:      &sess.User,
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// OAuth signs in with a synthesized identity tagged by provider. There is no
// real handshake; this is the preview-mode stub.
func OAuth(w http.ResponseWriter, r *http.Request) {
	var req OAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Provider == "" {
		req.Provider = "google"
	}

	sess, token, err := authService.SignInWithOAuth(r.Context(), req.Provider)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	setAuthCookie(w)
	writeJSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Signed in with " + req.Provider,
		User:      &sess.User,
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Signout clears the session and the presence cookie. Signing out without a
// valid token still succeeds.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		if err := authService.SignOut(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to sign out")
			return
		}
	}

	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed out successfully",
	})
}

// GetSession returns the current session, or null when the token is absent,
// unknown, or expired.
func GetSession(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusOK, SessionResponse{Success: true, Session: nil})
		return
	}

	sess, err := authService.GetSession(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if sess == nil {
		clearAuthCookie(w)
	}
	writeJSON(w, http.StatusOK, SessionResponse{Success: true, Session: sess})
}
