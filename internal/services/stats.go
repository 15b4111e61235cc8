package services

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/store"
)

// positiveQuotes seed the weekly-summary insight when a user has no entries
// in the period.
var positiveQuotes = []string{
	"Every day is a new beginning. Take a deep breath and start again.",
	"You are stronger than you think, braver than you believe, and smarter than you know.",
	"The only way to do great work is to love what you do.",
	"Your present circumstances don't determine where you can go; they merely determine where you start.",
	"Believe you can and you're halfway there.",
	"The best way to predict your future is to create it.",
	"You are never too old to set another goal or to dream a new dream.",
	"Every moment is a fresh beginning.",
	"You are enough just as you are.",
	"The sun will rise and we will try again.",
}

// StatsService derives dashboard statistics, streaks, and mood summaries from
// the journal store. Nothing here is persisted; everything is recomputed from
// entries on demand (results are cached briefly by the handlers).
type StatsService struct {
	store store.JournalStore
	now   func() time.Time
	rng   *rand.Rand
}

// NewStatsService builds the service. rng drives only the empty-week quote pick.
func NewStatsService(js store.JournalStore, rng *rand.Rand) *StatsService {
	return &StatsService{store: js, now: time.Now, rng: rng}
}

// SetClock overrides the time source. Test hook.
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// UserStats computes the GET /api/user/stats payload.
func (s *StatsService) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	emotionCounts := map[string]int{}
	subCounts := map[string]int{}
	totalReflections := 0
	for _, e := range entries {
		emotionCounts[e.Category]++
		subCounts[e.SubEmotion]++
		totalReflections += len(e.Reflections)
	}

	subEmotions := make([]models.SubEmotionCount, 0, len(subCounts))
	for name, count := range subCounts {
		subEmotions = append(subEmotions, models.SubEmotionCount{Name: name, Count: count})
	}
	sort.Slice(subEmotions, func(i, j int) bool {
		if subEmotions[i].Count != subEmotions[j].Count {
			return subEmotions[i].Count > subEmotions[j].Count
		}
		return subEmotions[i].Name < subEmotions[j].Name
	})

	streaks := s.streaks(entries)

	// Average entries per week over the span from oldest entry to now.
	avgPerWeek := 0
	if len(entries) > 0 {
		oldest := entries[len(entries)-1].CreatedAt
		weeks := int(s.now().Sub(oldest).Hours()/(24*7)) + 1
		avgPerWeek = len(entries) / weeks
	}

	// Completion rate: share of entries that got at least one reflection.
	completionRate := 0
	if len(entries) > 0 {
		withReflection := 0
		for _, e := range entries {
			if len(e.Reflections) > 0 {
				withReflection++
			}
		}
		completionRate = withReflection * 100 / len(entries)
	}

	return &models.UserStats{
		Summary: models.StatsSummary{
			TotalEntries:          len(entries),
			TotalReflections:      totalReflections,
			AverageEntriesPerWeek: avgPerWeek,
			CompletionRate:        completionRate,
		},
		Emotions:    emotionCounts,
		SubEmotions: subEmotions,
		Streaks:     streaks,
		Timeline:    s.timeline(entries, 12),
	}, nil
}

// MoodSummary computes the GET /api/user/mood-summary payload.
func (s *StatsService) MoodSummary(ctx context.Context, userID string) (*models.MoodSummary, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	pairCounts := map[[2]string]int{}
	weekday := map[time.Weekday]map[string]int{}
	for _, e := range entries {
		counts[e.Category]++
		pairCounts[[2]string{e.Category, e.SubEmotion}]++
		wd := e.CreatedAt.Weekday()
		if weekday[wd] == nil {
			weekday[wd] = map[string]int{}
		}
		weekday[wd][e.Category]++
	}

	distribution := map[string]models.MoodCount{}
	for category, count := range counts {
		pct := 0
		if len(entries) > 0 {
			pct = count * 100 / len(entries)
		}
		distribution[category] = models.MoodCount{Count: count, Percentage: pct}
	}

	var mostFrequent *models.MostFrequent
	for pair, count := range pairCounts {
		if mostFrequent == nil || count > mostFrequent.Count ||
			(count == mostFrequent.Count && pair[0] < mostFrequent.Category) {
			mostFrequent = &models.MostFrequent{Category: pair[0], SubEmotion: pair[1], Count: count}
		}
	}

	patterns := make([]models.WeekdayPattern, 0, 7)
	for i := 0; i < 7; i++ {
		// Monday-first ordering to match the dashboard.
		wd := time.Weekday((i + 1) % 7)
		primary := dominantCategory(weekday[wd])
		if primary == "" {
			continue
		}
		patterns = append(patterns, models.WeekdayPattern{Day: wd.String(), PrimaryEmotion: primary})
	}

	return &models.MoodSummary{
		MoodDistribution: distribution,
		MostFrequent:     mostFrequent,
		WeekdayPatterns:  patterns,
	}, nil
}

// Streak computes the GET /api/user/streak payload.
func (s *StatsService) Streak(ctx context.Context, userID string) (*models.Streaks, time.Time, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, time.Time{}, err
	}
	streaks := s.streaks(entries)
	var lastCheckIn time.Time
	if len(entries) > 0 {
		lastCheckIn = entries[0].CreatedAt
	}
	return &streaks, lastCheckIn, nil
}

// WeeklySummary computes emotional patterns, naive key themes, and mood
// changes over the last 7 days. insight is the caller-supplied personalized
// text (AI-generated when available); when the week is empty a positive quote
// is substituted instead.
func (s *StatsService) WeeklySummary(ctx context.Context, userID, insight string, isAI bool) (*models.WeeklySummary, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -7)

	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	var week []*models.JournalEntry
	for _, e := range entries {
		if !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			week = append(week, e)
		}
	}

	summary := &models.WeeklySummary{
		EmotionalPatterns: []models.EmotionalPattern{},
		KeyThemes:         []string{},
		MoodChanges:       []models.MoodChange{},
		Period:            "week",
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
		IsAI:              isAI,
	}

	if len(week) == 0 {
		quote := positiveQuotes[s.rng.Intn(len(positiveQuotes))]
		summary.PersonalizedInsights = quote + " Start journaling to track your emotional journey and gain deeper insights!"
		summary.IsAI = false
		return summary, nil
	}

	counts := map[string]int{}
	themes := map[string]bool{}
	for i := len(week) - 1; i >= 0; i-- { // oldest first for mood changes
		e := week[i]
		counts[e.Category]++
		summary.MoodChanges = append(summary.MoodChanges, models.MoodChange{
			Date:      e.CreatedAt.Format(time.RFC3339),
			Emotion:   e.Category,
			Intensity: 1.0,
		})
		for j, w := range strings.Fields(strings.ToLower(e.Text)) {
			if j >= 5 {
				break
			}
			themes[w] = true
		}
	}

	for category, count := range counts {
		summary.EmotionalPatterns = append(summary.EmotionalPatterns, models.EmotionalPattern{
			Emotion:    category,
			Count:      count,
			Percentage: float64(count) / float64(len(week)) * 100,
		})
	}
	sort.Slice(summary.EmotionalPatterns, func(i, j int) bool {
		if summary.EmotionalPatterns[i].Count != summary.EmotionalPatterns[j].Count {
			return summary.EmotionalPatterns[i].Count > summary.EmotionalPatterns[j].Count
		}
		return summary.EmotionalPatterns[i].Emotion < summary.EmotionalPatterns[j].Emotion
	})

	themeList := make([]string, 0, len(themes))
	for w := range themes {
		themeList = append(themeList, w)
	}
	sort.Strings(themeList)
	if len(themeList) > 5 {
		themeList = themeList[:5]
	}
	summary.KeyThemes = themeList

	if insight == "" {
		top := summary.EmotionalPatterns[0]
		summary.PersonalizedInsights = "This week you journaled " + plural(len(week), "time") +
			", most often feeling " + top.Emotion + ". Keep noticing what shapes those moments."
		summary.IsAI = false
	} else {
		summary.PersonalizedInsights = insight
	}
	return summary, nil
}

// streaks derives current/longest streaks and the 30-day history from entry
// days. entries are newest-first.
func (s *StatsService) streaks(entries []*models.JournalEntry) models.Streaks {
	days := map[string]bool{}
	for _, e := range entries {
		days[e.CreatedAt.UTC().Format("2006-01-02")] = true
	}

	today := s.now().UTC().Truncate(24 * time.Hour)

	// Current streak: consecutive days ending today or yesterday.
	current := 0
	cursor := today
	if !days[cursor.Format("2006-01-02")] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for days[cursor.Format("2006-01-02")] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	// Longest streak over all recorded days.
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)
	longest, run := 0, 0
	var prev time.Time
	for _, d := range sorted {
		t, _ := time.Parse("2006-01-02", d)
		if !prev.IsZero() && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = t
	}

	thisMonth := 0
	history := make([]models.StreakDay, 0, 30)
	for i := 0; i < 30; i++ {
		d := today.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		has := days[key]
		history = append(history, models.StreakDay{Date: key, HasEntry: has})
		if has && d.Month() == today.Month() && d.Year() == today.Year() {
			thisMonth++
		}
	}

	return models.Streaks{Current: current, Longest: longest, ThisMonth: thisMonth, History: history}
}

// timeline renders per-day activity for the most recent n days.
func (s *StatsService) timeline(entries []*models.JournalEntry, n int) []models.TimelineDay {
	type dayAgg struct {
		entries     int
		reflections int
		categories  map[string]int
	}
	byDay := map[string]*dayAgg{}
	for _, e := range entries {
		key := e.CreatedAt.UTC().Format("2006-01-02")
		agg := byDay[key]
		if agg == nil {
			agg = &dayAgg{categories: map[string]int{}}
			byDay[key] = agg
		}
		agg.entries++
		agg.reflections += len(e.Reflections)
		agg.categories[e.Category]++
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	out := make([]models.TimelineDay, 0, n)
	for i := 0; i < n; i++ {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		day := models.TimelineDay{Date: key}
		if agg, ok := byDay[key]; ok {
			day.Entries = agg.entries
			day.Reflections = agg.reflections
			day.PrimaryEmotion = dominantCategory(agg.categories)
		}
		out = append(out, day)
	}
	return out
}

func dominantCategory(counts map[string]int) string {
	best, bestCount := "", 0
	for category, count := range counts {
		if count > bestCount || (count == bestCount && category < best) {
			best, bestCount = category, count
		}
	}
	return best
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
