package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feel-write/feelwrite-backend/internal/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore()
}

func validInput() CreateInput {
	return CreateInput{
		UserID:     "user-1",
		Category:   "happy",
		SubEmotion: "Grateful",
		Text:       "Had a lovely walk in the park.",
	}
}

func TestCreateGetRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "happy", created.Category)
	assert.Equal(t, "Grateful", created.SubEmotion)
	assert.NotNil(t, created.Reflections)
	assert.Empty(t, created.Reflections)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(*CreateInput)
		field string
	}{
		{"missing category", func(in *CreateInput) { in.Category = "" }, "category"},
		{"unknown category", func(in *CreateInput) { in.Category = "bored" }, "category"},
		{"missing sub-emotion", func(in *CreateInput) { in.SubEmotion = "" }, "subEmotion"},
		{"sub-emotion from another category", func(in *CreateInput) { in.SubEmotion = "Worried" }, "subEmotion"},
		{"missing text", func(in *CreateInput) { in.Text = "" }, "text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mut(&in)
			_, err := s.Create(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateHonorsCallerCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := validInput()
	in.CreatedAt = "2026-01-15T08:30:00Z"

	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC), created.CreatedAt)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, validInput())
	require.NoError(t, err)
	inB := validInput()
	inB.Category = "calm"
	inB.SubEmotion = "Grounded"
	b, err := s.Create(ctx, inB)
	require.NoError(t, err)

	entries, err := s.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, b.ID, entries[0].ID)
	assert.Equal(t, a.ID, entries[1].ID)
}

func TestListScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, validInput())
	require.NoError(t, err)
	other := validInput()
	other.UserID = "user-2"
	_, err = s.Create(ctx, other)
	require.NoError(t, err)

	mine, err := s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// Empty userID defaults to the demo user.
	byDefault, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, mine, byDefault)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchShallowMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	newText := "Rewritten after reflection."
	patched, err := s.Patch(ctx, created.ID, PatchInput{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, newText, patched.Text)
	// Untouched fields survive the merge.
	assert.Equal(t, created.Category, patched.Category)
	assert.Nil(t, patched.PhotoURL)
	assert.Equal(t, created.CreatedAt, patched.CreatedAt)

	url := "https://example.com/photo.jpg"
	patched, err = s.Patch(ctx, created.ID, PatchInput{PhotoURL: &url})
	require.NoError(t, err)
	require.NotNil(t, patched.PhotoURL)
	assert.Equal(t, url, *patched.PhotoURL)
	assert.Equal(t, newText, patched.Text)
}

func TestPatchNotFound(t *testing.T) {
	s := newTestStore(t)
	text := "x"
	_, err := s.Patch(context.Background(), "missing", PatchInput{Text: &text})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReflection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return base })

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	s.SetClock(func() time.Time { return base.Add(time.Hour) })
	updated, err := s.AddReflection(ctx, created.ID, models.Reflection{
		Prompt:   "What made this moment special for you?",
		Response: "Sharing it with a friend.",
	})
	require.NoError(t, err)
	require.Len(t, updated.Reflections, 1)
	assert.Equal(t, "Sharing it with a friend.", updated.Reflections[0].Response)
	assert.Equal(t, base.Add(time.Hour), updated.Reflections[0].Timestamp)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Appending keeps insertion order.
	updated, err = s.AddReflection(ctx, created.ID, models.Reflection{
		Prompt:   "What new insights are emerging as you continue to reflect?",
		Response: "I value small rituals more than I thought.",
	})
	require.NoError(t, err)
	require.Len(t, updated.Reflections, 2)
	assert.Equal(t, "Sharing it with a friend.", updated.Reflections[0].Response)
}

func TestAddReflectionNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddReflection(context.Background(), "missing", models.Reflection{Response: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	created.Text = "mutated by caller"
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Had a lovely walk in the park.", got.Text)
}
