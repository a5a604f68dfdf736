package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/triplog/triplog-backend/internal/config"
	"github.com/triplog/triplog-backend/internal/database"
	"github.com/triplog/triplog-backend/internal/handlers"
	"github.com/triplog/triplog-backend/internal/routes"
	"github.com/triplog/triplog-backend/internal/services"
	"github.com/triplog/triplog-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.AccessTokenSecret == "change-me-in-production" {
		log.Println("⚠️  WARNING: ACCESS_TOKEN_SECRET not set, using the development default.")
		log.Println("   Generate one with: openssl rand -base64 32")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure the unique email index and the listing index
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, database.DB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}
	cancel()

	// Services
	tokens := services.NewTokenService(cfg.AccessTokenSecret)
	media, err := services.NewMediaStore(cfg.UploadDir, cfg.Host)
	if err != nil {
		log.Fatal("Failed to initialize upload directory:", err)
	}

	// Handlers over the Mongo-backed store
	db := store.NewMongoStore(database.DB)
	authHandler := handlers.NewAuthHandler(db, tokens)
	journalHandler := handlers.NewJournalHandler(db, media, cfg.PlaceholderImageURL())
	mediaHandler := handlers.NewMediaHandler(media)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg, tokens, authHandler, journalHandler, mediaHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Serve until interrupted, then drain in-flight requests.
	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Travel journal backend running on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("Shutting down...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
