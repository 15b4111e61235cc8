package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feel-write/feelwrite-backend/internal/models"
)

// MemoryStore keeps entries in process memory, newest-first. It backs the
// service when no MongoDB is configured and is the fixture store in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []*models.JournalEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// SetClock overrides the store's time source. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (*models.JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	if in.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, in.CreatedAt); err == nil {
			createdAt = t.UTC()
		}
	}
	userID := in.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	entry := &models.JournalEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    in.Category,
		SubEmotion:  in.SubEmotion,
		Text:        in.Text,
		PhotoURL:    in.PhotoURL,
		Reflections: []models.Reflection{},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	s.mu.Lock()
	// Prepend: listing order is newest-first by insertion.
	s.entries = append([]*models.JournalEntry{entry}, s.entries...)
	s.mu.Unlock()

	return copyEntry(entry), nil
}

func (s *MemoryStore) List(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	if userID == "" {
		userID = DefaultUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, copyEntry(e))
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	return copyEntry(e), nil
}

func (s *MemoryStore) Patch(ctx context.Context, id string, in PatchInput) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if in.Text != nil {
		e.Text = *in.Text
	}
	if in.PhotoURL != nil {
		e.PhotoURL = in.PhotoURL
	}
	e.UpdatedAt = s.now().UTC()
	return copyEntry(e), nil
}

func (s *MemoryStore) AddReflection(ctx context.Context, id string, ref models.Reflection) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if ref.Timestamp.IsZero() {
		ref.Timestamp = s.now().UTC()
	}
	e.Reflections = append(e.Reflections, ref)
	e.UpdatedAt = s.now().UTC()
	return copyEntry(e), nil
}

// find must be called with the lock held.
func (s *MemoryStore) find(id string) *models.JournalEntry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func copyEntry(e *models.JournalEntry) *models.JournalEntry {
	out := *e
	out.Reflections = make([]models.Reflection, len(e.Reflections))
	copy(out.Reflections, e.Reflections)
	return &out
}
