package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/feel-write/feelwrite-backend/internal/store"
)

// Shared handler dependencies, wired once at startup by Init.
var (
	journalStore      store.JournalStore
	authService       *services.DemoAuth
	statsService      *services.StatsService
	completionService *services.CompletionService
	imageStore        *services.ImageStore
	cloudinaryService *services.CloudinaryService

	promptRNGMu sync.Mutex
	promptRNG   = rand.New(&lockedSource{src: rand.NewSource(time.Now().UnixNano())})
)

// lockedSource serializes draws from the prompt selection source. Handlers
// run concurrently and rand.Rand is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

// Init wires the handler package's dependencies. cloudinary may be nil, in
// which case uploads fall back to the in-memory image store.
func Init(js store.JournalStore, auth *services.DemoAuth, stats *services.StatsService, completion *services.CompletionService, images *services.ImageStore, cloudinary *services.CloudinaryService) {
	journalStore = js
	authService = auth
	statsService = stats
	completionService = completion
	imageStore = images
	cloudinaryService = cloudinary
}

// SetPromptSource replaces the prompt selection source. Tests use a fixed seed.
func SetPromptSource(src rand.Source) {
	promptRNGMu.Lock()
	promptRNG = rand.New(&lockedSource{src: src})
	promptRNGMu.Unlock()
}

func promptRand() *rand.Rand {
	promptRNGMu.Lock()
	defer promptRNGMu.Unlock()
	return promptRNG
}

// extractBearerToken returns the token portion of an "Authorization: Bearer x"
// header, or "" when the header is absent or malformed.
func extractBearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// currentUserID resolves the caller's user id from the session token.
// Unauthenticated callers act as the default demo user; the route surface is
// preview-mode so this is a convenience, not a security boundary.
func currentUserID(r *http.Request) string {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return store.DefaultUserID
	}
	sess, err := authService.GetSession(r.Context(), token)
	if err != nil || sess == nil {
		return store.DefaultUserID
	}
	return sess.User.ID
}
