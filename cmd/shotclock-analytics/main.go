package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/cache"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/loader"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/providers/nbastats"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/store"
)

func main() {
	log.Println("Starting Shot-Clock Analytics Service...")

	config := loadConfig()

	// Optional Redis memoization; the service runs without it
	var snapshotCache loader.Cache
	if config.RedisURL != "" {
		opts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
		snapshotCache = cache.NewSnapshotCache(redisClient)
	}

	// Wire the pipeline: provider client -> loader -> snapshot store
	nbaClient := nbastats.New()
	loaderService := loader.NewService(nbaClient, loader.Config{
		Season:     config.Season,
		SeasonType: config.SeasonType,
		TeamID:     config.TeamID,
	}, snapshotCache)
	snapshotStore := store.New()

	// The player table comes from a previously scraped CSV, when present
	if config.PlayerCSVPath != "" {
		snap, err := loaderService.LoadPlayerSnapshot(config.PlayerCSVPath)
		if err != nil {
			log.Printf("Player dataset unavailable: %v", err)
		} else {
			snapshotStore.Publish(snap)
			log.Printf("Loaded player dataset: %d rows", len(snap.Rows))
		}
	}

	handler := handlers.NewHandler(snapshotStore, loaderService)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Post("/api/v1/refresh", handler.Refresh)
	r.Get("/api/v1/summary", handler.Summary)
	r.Get("/api/v1/by-range", handler.ByRange)
	r.Get("/api/v1/entities", handler.Entities)
	r.Get("/api/v1/heatmap", handler.HeatmapView)
	r.Get("/api/v1/top", handler.Top)
	r.Get("/api/v1/rows", handler.Rows)
	r.Get("/api/v1/export.csv", handler.ExportCSV)

	// Start server
	addr := fmt.Sprintf(":%d", config.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Shot-Clock Analytics listening on port %d", config.Port)
		log.Printf("  Season: %s (%s)", config.Season, config.SeasonType)
		log.Printf("  Team ID: %d", config.TeamID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}

	log.Println("Shot-Clock Analytics stopped")
}

// Config holds service configuration. Team, season, and season type are
// deployment constants, not request inputs
type Config struct {
	Port          int
	Season        string
	SeasonType    string
	TeamID        int
	PlayerCSVPath string
	RedisURL      string
}

// loadConfig loads configuration from environment
func loadConfig() Config {
	return Config{
		Port:          getEnvInt("SHOTCLOCK_SERVICE_PORT", 8087),
		Season:        getEnv("NBA_SEASON", "2024-25"),
		SeasonType:    getEnv("NBA_SEASON_TYPE", "Regular Season"),
		TeamID:        getEnvInt("NBA_TEAM_ID", 1610612755), // Philadelphia 76ers
		PlayerCSVPath: getEnv("PLAYER_CSV_PATH", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
