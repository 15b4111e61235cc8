package services

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/store"
)

func newStatsFixture(t *testing.T) (*StatsService, *store.MemoryStore, time.Time) {
	t.Helper()
	js := store.NewMemoryStore()
	svc := NewStatsService(js, rand.New(rand.NewSource(1)))
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })
	return svc, js, now
}

func addEntry(t *testing.T, js *store.MemoryStore, category, sub string, createdAt time.Time) {
	t.Helper()
	_, err := js.Create(context.Background(), store.CreateInput{
		UserID:     store.DefaultUserID,
		Category:   category,
		SubEmotion: sub,
		Text:       "entry about " + sub,
		CreatedAt:  createdAt.Format(time.RFC3339),
	})
	require.NoError(t, err)
}

func TestUserStatsEmpty(t *testing.T) {
	svc, _, _ := newStatsFixture(t)

	stats, err := svc.UserStats(context.Background(), store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Summary.TotalEntries)
	assert.Equal(t, 0, stats.Summary.CompletionRate)
	assert.Equal(t, 0, stats.Streaks.Current)
	assert.Len(t, stats.Timeline, 12)
}

func TestUserStatsCounts(t *testing.T) {
	svc, js, now := newStatsFixture(t)
	ctx := context.Background()

	addEntry(t, js, "anxious", "Worried", now.Add(-50*time.Hour))
	addEntry(t, js, "happy", "Joyful", now.Add(-26*time.Hour))
	addEntry(t, js, "happy", "Grateful", now.Add(-2*time.Hour))

	stats, err := svc.UserStats(ctx, store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Summary.TotalEntries)
	assert.Equal(t, 2, stats.Emotions["happy"])
	assert.Equal(t, 1, stats.Emotions["anxious"])
	require.NotEmpty(t, stats.SubEmotions)

	// Three entries on three consecutive days ending today.
	assert.Equal(t, 3, stats.Streaks.Current)
	assert.Equal(t, 3, stats.Streaks.Longest)
}

func TestUserStatsCompletionRate(t *testing.T) {
	svc, js, now := newStatsFixture(t)
	ctx := context.Background()

	addEntry(t, js, "happy", "Grateful", now.Add(-time.Hour))
	addEntry(t, js, "sad", "Lonely", now.Add(-2*time.Hour))

	entries, err := js.List(ctx, store.DefaultUserID)
	require.NoError(t, err)
	_, err = js.AddReflection(ctx, entries[0].ID, models.Reflection{Prompt: "p", Response: "r"})
	require.NoError(t, err)

	stats, err := svc.UserStats(ctx, store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Summary.CompletionRate)
	assert.Equal(t, 1, stats.Summary.TotalReflections)
}

func TestStreakBrokenByGap(t *testing.T) {
	svc, js, now := newStatsFixture(t)

	// Entry today and three days ago: current streak is 1, longest is 1.
	addEntry(t, js, "calm", "Serene", now.Add(-72*time.Hour))
	addEntry(t, js, "calm", "Relaxed", now.Add(-time.Hour))

	streaks, lastCheckIn, err := svc.Streak(context.Background(), store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.Current)
	assert.Equal(t, 1, streaks.Longest)
	assert.Equal(t, now.Add(-time.Hour), lastCheckIn)
	assert.Len(t, streaks.History, 30)
	assert.True(t, streaks.History[0].HasEntry)
	assert.False(t, streaks.History[1].HasEntry)
}

func TestStreakCountsYesterdayAsCurrent(t *testing.T) {
	svc, js, now := newStatsFixture(t)

	// No entry today, but one yesterday keeps the streak alive.
	addEntry(t, js, "happy", "Content", now.Add(-25*time.Hour))

	streaks, _, err := svc.Streak(context.Background(), store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.Current)
}

func TestMoodSummaryDistribution(t *testing.T) {
	svc, js, now := newStatsFixture(t)

	addEntry(t, js, "happy", "Grateful", now.Add(-time.Hour))
	addEntry(t, js, "happy", "Grateful", now.Add(-2*time.Hour))
	addEntry(t, js, "sad", "Lonely", now.Add(-3*time.Hour))
	addEntry(t, js, "angry", "Frustrated", now.Add(-4*time.Hour))

	summary, err := svc.MoodSummary(context.Background(), store.DefaultUserID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MoodDistribution["happy"].Count)
	assert.Equal(t, 50, summary.MoodDistribution["happy"].Percentage)
	assert.Equal(t, 25, summary.MoodDistribution["sad"].Percentage)

	require.NotNil(t, summary.MostFrequent)
	assert.Equal(t, "happy", summary.MostFrequent.Category)
	assert.Equal(t, "Grateful", summary.MostFrequent.SubEmotion)
	assert.Equal(t, 2, summary.MostFrequent.Count)

	require.NotEmpty(t, summary.WeekdayPatterns)
}

func TestWeeklySummaryEmptyWeekUsesQuote(t *testing.T) {
	svc, js, now := newStatsFixture(t)

	// An old entry outside the 7-day window does not count.
	addEntry(t, js, "happy", "Joyful", now.AddDate(0, 0, -20))

	summary, err := svc.WeeklySummary(context.Background(), store.DefaultUserID, "", false)
	require.NoError(t, err)
	assert.Empty(t, summary.EmotionalPatterns)
	assert.False(t, summary.IsAI)
	assert.True(t, strings.HasSuffix(summary.PersonalizedInsights,
		" Start journaling to track your emotional journey and gain deeper insights!"))

	var quoted bool
	for _, q := range positiveQuotes {
		if strings.HasPrefix(summary.PersonalizedInsights, q) {
			quoted = true
			break
		}
	}
	assert.True(t, quoted, "insight should start with a positive quote")
}

func TestWeeklySummaryPatternsAndThemes(t *testing.T) {
	svc, js, now := newStatsFixture(t)

	addEntry(t, js, "calm", "Grounded", now.Add(-72*time.Hour))
	addEntry(t, js, "anxious", "Worried", now.Add(-48*time.Hour))
	addEntry(t, js, "anxious", "Stressed", now.Add(-24*time.Hour))

	summary, err := svc.WeeklySummary(context.Background(), store.DefaultUserID, "", false)
	require.NoError(t, err)

	require.Len(t, summary.EmotionalPatterns, 2)
	assert.Equal(t, "anxious", summary.EmotionalPatterns[0].Emotion)
	assert.Equal(t, 2, summary.EmotionalPatterns[0].Count)
	assert.InDelta(t, 66.6, summary.EmotionalPatterns[0].Percentage, 0.1)

	require.Len(t, summary.MoodChanges, 3)
	// Mood changes run oldest first.
	assert.Equal(t, "calm", summary.MoodChanges[0].Emotion)

	assert.NotEmpty(t, summary.KeyThemes)
	assert.LessOrEqual(t, len(summary.KeyThemes), 5)

	assert.Contains(t, summary.PersonalizedInsights, "3 times")
	assert.Contains(t, summary.PersonalizedInsights, "anxious")
}

func TestWeeklySummaryCallerInsight(t *testing.T) {
	svc, js, now := newStatsFixture(t)
	addEntry(t, js, "happy", "Proud", now.Add(-time.Hour))

	summary, err := svc.WeeklySummary(context.Background(), store.DefaultUserID, "Custom insight.", true)
	require.NoError(t, err)
	assert.Equal(t, "Custom insight.", summary.PersonalizedInsights)
	assert.True(t, summary.IsAI)
}
