package models

// Dashboard statistics payloads, all derived from the journal store.

// MoodCount is one category's share of recent entries.
type MoodCount struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// SubEmotionCount is a sub-emotion label with its occurrence count.
type SubEmotionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StreakDay marks whether a calendar day had at least one entry.
type StreakDay struct {
	Date     string `json:"date"` // YYYY-MM-DD
	HasEntry bool   `json:"hasEntry"`
}

// Streaks summarizes journaling continuity.
type Streaks struct {
	Current   int         `json:"current"`
	Longest   int         `json:"longest"`
	ThisMonth int         `json:"thisMonth"`
	History   []StreakDay `json:"history"`
}

// TimelineDay is one day's activity on the stats timeline.
type TimelineDay struct {
	Date           string `json:"date"`
	Entries        int    `json:"entries"`
	Reflections    int    `json:"reflections"`
	PrimaryEmotion string `json:"primaryEmotion,omitempty"`
}

// StatsSummary is the headline numbers block.
type StatsSummary struct {
	TotalEntries          int `json:"totalEntries"`
	TotalReflections      int `json:"totalReflections"`
	AverageEntriesPerWeek int `json:"averageEntriesPerWeek"`
	CompletionRate        int `json:"completionRate"`
}

// UserStats is the GET /api/user/stats payload.
type UserStats struct {
	Summary     StatsSummary      `json:"summary"`
	Emotions    map[string]int    `json:"emotions"`
	SubEmotions []SubEmotionCount `json:"subEmotions"`
	Streaks     Streaks           `json:"streaks"`
	Timeline    []TimelineDay     `json:"timeline"`
}

// MostFrequent is the dominant category/sub-emotion pair in a period.
type MostFrequent struct {
	Category   string `json:"category"`
	SubEmotion string `json:"subEmotion"`
	Count      int    `json:"count"`
}

// WeekdayPattern is the primary emotion observed on a given weekday.
type WeekdayPattern struct {
	Day            string `json:"day"`
	PrimaryEmotion string `json:"primaryEmotion"`
}

// MoodSummary is the GET /api/user/mood-summary payload.
type MoodSummary struct {
	MoodDistribution map[string]MoodCount `json:"moodDistribution"`
	MostFrequent     *MostFrequent        `json:"mostFrequent,omitempty"`
	WeekdayPatterns  []WeekdayPattern     `json:"weekdayPatterns"`
}

// EmotionalPattern is one emotion's share of a weekly summary.
type EmotionalPattern struct {
	Emotion    string  `json:"emotion"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MoodChange is one dated emotion observation in a weekly summary.
type MoodChange struct {
	Date      string  `json:"date"`
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
}

// WeeklySummary is the GET /api/user/weekly-summary payload.
type WeeklySummary struct {
	EmotionalPatterns    []EmotionalPattern `json:"emotionalPatterns"`
	KeyThemes            []string           `json:"keyThemes"`
	MoodChanges          []MoodChange       `json:"moodChanges"`
	PersonalizedInsights string             `json:"personalizedInsights"`
	Period               string             `json:"period"`
	StartDate            string             `json:"startDate"`
	EndDate              string             `json:"endDate"`
	IsAI                 bool               `json:"isAI"`
}
