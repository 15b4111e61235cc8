package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/store"
	"github.com/go-chi/chi/v5"
)

type JournalEntryResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type JournalListResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Entries []*models.JournalEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// PatchJournalRequest carries either partial entry fields or a reflection
// round to append. reflectionText wins when both are present.
type PatchJournalRequest struct {
	Text           *string `json:"text,omitempty"`
	PhotoURL       *string `json:"photoUrl,omitempty"`
	ReflectionText *string `json:"reflectionText,omitempty"`
	PromptText     *string `json:"promptText,omitempty"`
}

// CreateJournalEntry stores a new entry for the caller.
func CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var in store.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.UserID == "" {
		in.UserID = currentUserID(r)
	}

	entry, err := journalStore.Create(r.Context(), in)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create journal entry")
		return
	}

	writeJSON(w, http.StatusCreated, JournalEntryResponse{
		Success: true,
		Message: "Journal entry created",
		Entry:   entry,
	})
}

// GetJournalEntries lists the caller's entries newest-first. A userId query
// parameter overrides the session scope.
func GetJournalEntries(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = currentUserID(r)
	}

	entries, err := journalStore.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load journal entries")
		return
	}
	if entries == nil {
		entries = []*models.JournalEntry{}
	}

	writeJSON(w, http.StatusOK, JournalListResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

// GetJournalEntry returns a single entry by id.
func GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := journalStore.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Journal entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load journal entry")
		return
	}

	writeJSON(w, http.StatusOK, JournalEntryResponse{Success: true, Entry: entry})
}

// PatchJournalEntry merges partial fields into an entry, or appends a
// reflection round when reflectionText is present.
func PatchJournalEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PatchJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var entry *models.JournalEntry
	var err error

	if req.ReflectionText != nil {
		prompt := ""
		if req.PromptText != nil {
			prompt = *req.PromptText
		}
		entry, err = journalStore.AddReflection(r.Context(), id, models.Reflection{
			Prompt:    prompt,
			Response:  *req.ReflectionText,
			Timestamp: time.Now(),
		})
	} else {
		entry, err = journalStore.Patch(r.Context(), id, store.PatchInput{
			Text:     req.Text,
			PhotoURL: req.PhotoURL,
		})
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Journal entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update journal entry")
		return
	}

	writeJSON(w, http.StatusOK, JournalEntryResponse{
		Success: true,
		Message: "Journal entry updated",
		Entry:   entry,
	})
}
