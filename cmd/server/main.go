package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/feel-write/feelwrite-backend/internal/config"
	"github.com/feel-write/feelwrite-backend/internal/database"
	"github.com/feel-write/feelwrite-backend/internal/handlers"
	"github.com/feel-write/feelwrite-backend/internal/middleware"
	"github.com/feel-write/feelwrite-backend/internal/routes"
	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/feel-write/feelwrite-backend/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB (optional: memory store fallback)
	var journalStore store.JournalStore
	if cfg.MongoURI != "" {
		log.Printf("Connecting to MongoDB...")
		if err := database.Connect(cfg.MongoURI); err != nil {
			log.Printf("⚠️ Failed to connect to MongoDB: %v", err)
			log.Println("   Falling back to the in-memory journal store (entries are lost on restart)")
		} else {
			defer database.Disconnect()
			mongoStore := store.NewMongoStore(database.DB)
			if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
				log.Printf("⚠️ Failed to ensure journal indexes: %v", err)
			}
			journalStore = mongoStore
			log.Println("✅ MongoDB journal store ready")
		}
	}
	if journalStore == nil {
		journalStore = store.NewMemoryStore()
		log.Println("✅ In-memory journal store ready")
	}

	// Connect to PostgreSQL (optional: activity tracking disabled without it)
	if cfg.PostgresURI != "" {
		log.Printf("Connecting to PostgreSQL...")
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			log.Printf("⚠️ Failed to connect to PostgreSQL: %v", err)
			log.Println("   Activity tracking disabled")
		} else {
			defer database.DisconnectPostgres()
		}
	} else {
		log.Println("POSTGRES_URI not set. Activity tracking disabled")
	}

	// Connect to Redis (optional: in-memory sessions, no cache, no rate limit)
	var sessionStore services.SessionStore
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v", err)
		}
	}
	if database.RedisClient != nil {
		defer database.DisconnectRedis()
		sessionStore = services.RedisSessionStore{}
		log.Println("✅ Redis sessions, cache and rate limiting enabled")
	} else {
		sessionStore = services.NewMemorySessionStore()
		log.Println("✅ In-memory sessions (Redis not connected)")
	}

	// Demo auth directory
	auth, err := services.NewDemoAuth(sessionStore)
	if err != nil {
		log.Fatal("Failed to initialize demo auth:", err)
	}

	// Cloudinary (optional: in-memory image store fallback)
	var cloudinary *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinary, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("⚠️ Failed to initialize Cloudinary: %v", err)
			cloudinary = nil
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Cloudinary credentials not found. Images are served from memory")
	}

	completion := services.NewCompletionService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if completion.Configured() {
		log.Println("✅ OpenAI completion service configured")
	} else {
		log.Println("OPENAI_API_KEY not set. Companion replies use canned fallbacks")
	}

	stats := services.NewStatsService(journalStore, rand.New(rand.NewSource(time.Now().UnixNano())))

	handlers.Init(journalStore, auth, stats, completion, services.NewImageStore(), cloudinary)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit (no host check; no CDN/proxy)
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity("") {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 Feel-Write backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
