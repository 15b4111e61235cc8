package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/feel-write/feelwrite-backend/internal/store"
)

type UserProfile struct {
	models.Identity
	TotalEntries int    `json:"totalEntries"`
	MemberSince  string `json:"memberSince,omitempty"` // YYYY-MM-DD of oldest entry
	ActiveDays   int    `json:"activeDays"`
}

type UserProfileResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user"`
}

type UserStatsResponse struct {
	Success bool              `json:"success"`
	Stats   *models.UserStats `json:"stats"`
}

type StreakResponse struct {
	Success     bool            `json:"success"`
	Streaks     *models.Streaks `json:"streaks"`
	LastCheckIn string          `json:"lastCheckIn,omitempty"` // YYYY-MM-DD
}

type MoodSummaryResponse struct {
	Success bool                `json:"success"`
	Summary *models.MoodSummary `json:"summary"`
}

type WeeklySummaryResponse struct {
	Success bool                  `json:"success"`
	Summary *models.WeeklySummary `json:"summary"`
}

// defaultIdentity is the profile shown to unauthenticated preview users.
func defaultIdentity() models.Identity {
	return models.Identity{
		ID:        store.DefaultUserID,
		Email:     "demo@example.com",
		Name:      "Demo User",
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + store.DefaultUserID,
	}
}

// GetUserProfile returns the caller's identity enriched with journaling facts.
func GetUserProfile(w http.ResponseWriter, r *http.Request) {
	identity := defaultIdentity()
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		if sess, err := authService.GetSession(r.Context(), token); err == nil && sess != nil {
			identity = sess.User
		}
	}

	profile := &UserProfile{Identity: identity}

	entries, err := journalStore.List(r.Context(), identity.ID)
	if err == nil {
		profile.TotalEntries = len(entries)
		if len(entries) > 0 {
			oldest := entries[len(entries)-1].CreatedAt
			profile.MemberSince = oldest.Format("2006-01-02")
		}
	}

	if days, err := services.ActiveDays(identity.ID, time.Now().AddDate(0, -1, 0)); err == nil {
		profile.ActiveDays = days
	}

	writeJSON(w, http.StatusOK, UserProfileResponse{Success: true, User: profile})
}

// GetUserStats returns the dashboard statistics block, cached briefly.
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	cacheKey := services.CacheKey("user_stats", userID)

	var cached models.UserStats
	if hit, err := services.Cache.Get(cacheKey, &cached); err == nil && hit {
		writeJSON(w, http.StatusOK, UserStatsResponse{Success: true, Stats: &cached})
		return
	}

	stats, err := statsService.UserStats(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	if err := services.Cache.SetWithTTL(cacheKey, stats, time.Minute); err != nil {
		log.Printf("⚠️ Failed to cache user stats: %v", err)
	}

	writeJSON(w, http.StatusOK, UserStatsResponse{Success: true, Stats: stats})
}

// GetUserStreak returns journaling streak continuity.
func GetUserStreak(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	streaks, lastCheckIn, err := statsService.Streak(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute streak")
		return
	}

	resp := StreakResponse{Success: true, Streaks: streaks}
	if !lastCheckIn.IsZero() {
		resp.LastCheckIn = lastCheckIn.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetMoodSummary returns mood distribution and weekday patterns, cached briefly.
func GetMoodSummary(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	cacheKey := services.CacheKey("mood_summary", userID)

	var cached models.MoodSummary
	if hit, err := services.Cache.Get(cacheKey, &cached); err == nil && hit {
		writeJSON(w, http.StatusOK, MoodSummaryResponse{Success: true, Summary: &cached})
		return
	}

	summary, err := statsService.MoodSummary(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute mood summary")
		return
	}

	if err := services.Cache.SetWithTTL(cacheKey, summary, time.Minute); err != nil {
		log.Printf("⚠️ Failed to cache mood summary: %v", err)
	}

	writeJSON(w, http.StatusOK, MoodSummaryResponse{Success: true, Summary: summary})
}

// GetWeeklySummary returns the past week's emotional summary. The insight text
// is upgraded by the completion service when one is configured; the derived
// default is kept otherwise.
func GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	summary, err := statsService.WeeklySummary(r.Context(), userID, "", false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute weekly summary")
		return
	}

	if completionService.Configured() && len(summary.EmotionalPatterns) > 0 {
		var parts []string
		for _, p := range summary.EmotionalPatterns {
			parts = append(parts, p.Emotion)
		}
		insight, cerr := completionService.Complete(r.Context(), []services.ChatMessage{
			{Role: "user", Content: "This week I mostly felt: " + strings.Join(parts, ", ") +
				". In two or three warm sentences, reflect this back to me and offer one gentle suggestion."},
		})
		if cerr == nil && strings.TrimSpace(insight) != "" {
			summary.PersonalizedInsights = strings.TrimSpace(insight)
			summary.IsAI = true
		}
	}

	writeJSON(w, http.StatusOK, WeeklySummaryResponse{Success: true, Summary: summary})
}
