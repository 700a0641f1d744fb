package config

import (
	"os"
	"strconv"
	"time"

	"ambientchat/backend/internal/persistence"
)

// Snapshot backend names accepted in SNAPSHOT_BACKEND.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds environment-based configuration.
type Config struct {
	Addr       string
	CORSOrigin string

	SnapshotBackend  string
	SnapshotPath     string
	SnapshotInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseDSN string
}

// Load reads configuration from environment variables, falling back to
// local-development defaults.
func Load() Config {
	interval := persistence.DefaultInterval
	if s := os.Getenv("SNAPSHOT_INTERVAL_SECONDS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			interval = time.Duration(v) * time.Second
		}
	}
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			redisDB = v
		}
	}

	return Config{
		Addr:             ":" + envOrDefault("PORT", "8080"),
		CORSOrigin:       envOrDefault("CORS_ORIGIN", "*"),
		SnapshotBackend:  envOrDefault("SNAPSHOT_BACKEND", BackendFile),
		SnapshotPath:     envOrDefault("SNAPSHOT_PATH", "ambientchat.json"),
		SnapshotInterval: interval,
		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
	}
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
