package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ambientchat/backend/internal/api/handler"
	"ambientchat/backend/internal/chathub"
	"ambientchat/backend/internal/config"
	"ambientchat/backend/internal/core"
	"ambientchat/backend/internal/persistence"
)

// setupSnapshotStore builds the configured snapshot backend. The file
// backend needs nothing external; redis and postgres must be reachable at
// startup.
func setupSnapshotStore(cfg config.Config) persistence.Store {
	switch cfg.SnapshotBackend {
	case config.BackendFile:
		return persistence.NewFileStore(cfg.SnapshotPath)

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect Redis: %v", err)
		}
		return persistence.NewRedisStore(rdb)

	case config.BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect PostgreSQL: %v", err)
		}
		store, err := persistence.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		return store

	default:
		log.Fatalf("Unknown snapshot backend %q", cfg.SnapshotBackend)
		return nil
	}
}

func main() {
	log.Println("Starting AmbientChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. State and persistence
	store := core.NewStore()
	pm := persistence.NewManager(store, setupSnapshotStore(cfg), cfg.SnapshotInterval)
	pm.Restore(context.Background())
	store.OnMutate(pm.FlushSoon)

	ctx, cancel := context.WithCancel(context.Background())
	pmDone := make(chan struct{})
	go func() {
		pm.Run(ctx)
		close(pmDone)
	}()

	// 2. Live event hub
	hub := chathub.NewHub()
	go hub.Run()

	// 3. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(store, hub)
	h.RegisterRoutes(r, cfg.CORSOrigin)

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   0, // WebSocket connections manage their own write deadlines
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutdown signal received.")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: server shutdown: %v", err)
		}

		// Stop the flush loop; it writes one final snapshot on the way out.
		cancel()
	}()

	log.Printf("Listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
	<-pmDone
	log.Println("Server stopped.")
}
