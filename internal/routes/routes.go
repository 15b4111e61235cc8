package routes

import (
	"github.com/feel-write/feelwrite-backend/internal/handlers"
	"github.com/feel-write/feelwrite-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Demo auth routes (fixed user directory, no real identity provider)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/oauth", handlers.OAuth)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/session", handlers.GetSession)

	// Journal routes
	r.Post("/api/journal", handlers.CreateJournalEntry)
	r.Get("/api/journal", handlers.GetJournalEntries)
	r.Get("/api/journal/{id}", handlers.GetJournalEntry)
	r.Patch("/api/journal/{id}", handlers.PatchJournalEntry)

	// Reflection prompt routes
	r.Get("/api/reflection", handlers.GetReflectionPrompt)
	r.Post("/api/generate-reflection", handlers.GenerateReflection)

	// Companion bot
	r.Post("/api/bot", handlers.BotChat)

	// Image upload and retrieval
	r.Post("/api/images", handlers.UploadImage)
	r.Get("/api/images/{id}", handlers.GetImage)

	// User dashboard routes (presence cookie or bearer token required)
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuthCookie)
		g.Get("/api/user/profile", handlers.GetUserProfile)
		g.Get("/api/user/stats", handlers.GetUserStats)
		g.Get("/api/user/streak", handlers.GetUserStreak)
		g.Get("/api/user/mood-summary", handlers.GetMoodSummary)
		g.Get("/api/user/weekly-summary", handlers.GetWeeklySummary)
	})

	// Page-view activity tracking
	r.Post("/api/activity", handlers.RecordActivity)

	// WebSocket endpoint for the realtime companion chat
	r.Get("/ws/chat", handlers.ChatWebSocket)
}
