package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/gemini"
	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/postgres"
	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/rest"
	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/spotify"
	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/sqlite"
	"github.com/ninja-hatori-dev/mood-harmony/internal/adapters/youtube"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/services"
	"github.com/ninja-hatori-dev/mood-harmony/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// Crash early if required config is missing.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	spotifyID := os.Getenv("SPOTIFY_CLIENT_ID")
	spotifySecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	youtubeKey := os.Getenv("YOUTUBE_API_KEY")
	if geminiKey == "" || spotifyID == "" || spotifySecret == "" || youtubeKey == "" {
		log.Fatal("FATAL: GEMINI_API_KEY, SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and YOUTUBE_API_KEY environment variables are required")
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	storageDriver := os.Getenv("STORAGE_DRIVER")
	if storageDriver == "" {
		storageDriver = "sqlite"
	}

	var repo ports.Repository
	var repoCloser func() error

	switch storageDriver {
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "moodharmony.db"
		}
		adapter, err := sqlite.NewAdapter(path)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = adapter
		repoCloser = adapter.Close
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("FATAL: DATABASE_URL environment variable is required for the postgres storage driver")
		}
		adapter, err := postgres.NewAdapter(dsn)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = adapter
		repoCloser = adapter.Close
	default:
		log.Fatalf("Unknown storage driver: %s", storageDriver)
	}
	defer repoCloser()

	// -- Upstream Clients (constructed once, reused across requests)
	model := gemini.NewClient("", geminiKey)
	video := youtube.NewClient("", youtubeKey)
	music := spotify.NewClient(spotifyID, spotifySecret)

	// 3. Initialize Core Logic (The Driver)
	// Dependency Injection: the agnostic services receive the adapters.
	enricher := services.NewEnricher(video, music)
	svc := services.NewOrchestrator(model, enricher)
	accounts := services.NewAccounts(repo)

	// 4. Initialize "Driving" Adapter (The Interface)
	pool := worker.NewPool(repo, 100)
	pool.Start(2)
	defer pool.Stop()

	handler := rest.NewHandler(accounts, svc, repo, pool)

	// 5. Start the Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("------------------------------------------------")
	log.Printf("🎶 Mood Harmony API is running on http://localhost:%s", port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
