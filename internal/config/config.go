// internal/config/config.go
//
// Runtime configuration, read from the environment after loading an
// optional .env file (godotenv). Every setting has a development default.
//
// Environment variables:
//   PORT             listen port (8080)
//   LOG_LEVEL        zerolog level name (info)
//   LOG_FORMAT       json | console (json)
//   CLIENT_ORIGIN    single CORS origin (http://localhost:3000)
//   MAX_POTS         largest accepted row / pot count (500)
//   DB_PATH          SQLite file for the move journal; empty keeps it in memory
//   JOURNAL_LIMIT    in-memory journal capacity (1000)
//   DAILY_SALT       key for the daily row (local_dev_salt)
//   REQUEST_TIMEOUT  per-request handler budget (10s)

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	LogLevel       string
	LogFormat      string
	ClientOrigin   string
	MaxPots        int
	DBPath         string
	JournalLimit   int
	DailySalt      string
	RequestTimeout time.Duration
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		DBPath:       os.Getenv("DB_PATH"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
	}

	var err error
	if cfg.MaxPots, err = envInt("MAX_POTS", 500); err != nil {
		return Config{}, err
	}
	if cfg.MaxPots <= 0 {
		return Config{}, fmt.Errorf("MAX_POTS must be positive, got %d", cfg.MaxPots)
	}
	if cfg.JournalLimit, err = envInt("JOURNAL_LIMIT", 1000); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}
