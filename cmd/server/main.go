package main

import (
	"log"
	"net/http"
	"os"

	"ocr-backend/internal/api"
	"ocr-backend/internal/service"
	"ocr-backend/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Storage configuration
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	state.State.SetDataDir(dataDir)

	// Correction store is optional; the enhancer runs without one
	var store service.CorrectionStore
	var logger service.ComparisonLogger
	storeKind := os.Getenv("CORRECTION_STORE")
	switch storeKind {
	case "postgres":
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			log.Fatal("CORRECTION_STORE=postgres requires DATABASE_URL")
		}
		pg, err := service.ConnectPostgresURL(url)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pg.Close()
		store = pg
		logger = pg
		state.State.SetCorrectionStore("postgres")
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		rd, err := service.ConnectRedis(addr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rd.Close()
		store = rd
		state.State.SetCorrectionStore("redis")
	case "":
		log.Printf("[Server] No correction store configured, learned corrections disabled")
	default:
		log.Fatalf("Unknown CORRECTION_STORE %q (want postgres, redis or empty)", storeKind)
	}

	// Initialize Services
	enhancer := service.NewOCREnhancer(store)
	// Empty dir makes the store follow the runtime data-dir setting
	training := service.NewTrainingStore("")
	trainer := service.NewComparisonTrainer(logger, training)

	// Initialize Handler
	handler := api.NewHandler(enhancer, trainer)

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OCR Enhancement Backend is Running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	// Get port from environment or default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("🚀 Starting OCR backend on http://localhost:%s", port)
	log.Printf("📁 Data directory: %s", dataDir)
	log.Printf("🗄️  Correction store: %s", displayStoreKind(storeKind))

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func displayStoreKind(kind string) string {
	if kind == "" {
		return "none"
	}
	return kind
}
