package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/feel-write/feelwrite-backend/internal/emotions"
	"github.com/feel-write/feelwrite-backend/internal/models"
)

// ErrNotFound is returned when no entry exists for the given id.
var ErrNotFound = errors.New("journal entry not found")

// DefaultUserID is assumed when a caller does not scope a listing to a user.
const DefaultUserID = "user-1"

// ValidationError reports a missing or invalid field on a create request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CreateInput is the caller-supplied portion of a new journal entry.
// CreatedAt is optional; the store assigns the current time when zero.
type CreateInput struct {
	UserID     string  `json:"userId"`
	Category   string  `json:"category"`
	SubEmotion string  `json:"subEmotion"`
	Text       string  `json:"text"`
	PhotoURL   *string `json:"photoUrl"`
	CreatedAt  string  `json:"createdAt,omitempty"` // RFC 3339; empty means now
}

// Validate enforces field presence and taxonomy membership.
func (in *CreateInput) Validate() error {
	if in.Category == "" {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	if !emotions.IsValidCategory(in.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if in.SubEmotion == "" {
		return &ValidationError{Field: "subEmotion", Reason: "required"}
	}
	if !emotions.Valid(emotions.Category(in.Category), in.SubEmotion) {
		return &ValidationError{Field: "subEmotion", Reason: "does not belong to category " + in.Category}
	}
	if in.Text == "" {
		return &ValidationError{Field: "text", Reason: "required"}
	}
	return nil
}

// PatchInput carries the fields a PATCH may shallow-merge into an entry.
// Nil pointers leave the stored value untouched.
type PatchInput struct {
	Text     *string `json:"text,omitempty"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

// JournalStore is the repository for journal entries. Implementations are
// single-writer per entry: concurrent patches to the same id are last-write-wins
// with no conflict detection, which is acceptable for the single-user scope.
type JournalStore interface {
	// Create validates input, assigns an id and timestamps, and stores the
	// entry at the head of the user's listing (newest-first invariant).
	Create(ctx context.Context, in CreateInput) (*models.JournalEntry, error)
	// List returns the user's entries newest-first. Empty userID means DefaultUserID.
	List(ctx context.Context, userID string) ([]*models.JournalEntry, error)
	// Get returns the entry or ErrNotFound.
	Get(ctx context.Context, id string) (*models.JournalEntry, error)
	// Patch shallow-merges the given fields and bumps UpdatedAt, or ErrNotFound.
	Patch(ctx context.Context, id string, in PatchInput) (*models.JournalEntry, error)
	// AddReflection appends a structured reflection round and bumps UpdatedAt.
	AddReflection(ctx context.Context, id string, ref models.Reflection) (*models.JournalEntry, error)
}
