package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all process configuration, read once at startup.
type AppConfig struct {
	Port string

	// Contact mail delivery.
	ContactRecipient string
	MailHost         string
	MailPort         int
	MailUsername     string
	MailPassword     string

	// SolverMaxSteps bounds the stepping loop per simulation request.
	SolverMaxSteps int

	// Run store retention.
	StoreMaxRuns int           // max number of retained runs (0 = unlimited)
	StoreMaxAge  time.Duration // max age of retained runs (0 = unlimited)

	// Mocked dashboard feed.
	DashboardTick time.Duration
	DashboardSeed int64
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.ContactRecipient = os.Getenv("CONTACT_EMAIL")
	cfg.MailHost = getenvDefault("MAIL_SERVER", "smtp.gmail.com")
	cfg.MailPort = getenvInt("MAIL_PORT", 587)
	cfg.MailUsername = os.Getenv("MAIL_USERNAME")
	cfg.MailPassword = os.Getenv("MAIL_PASSWORD")

	cfg.SolverMaxSteps = getenvInt("SOLVER_MAX_STEPS", 10000)

	cfg.StoreMaxRuns = getenvInt("STORE_MAX_RUNS", 50)

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "1h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	tickStr := getenvDefault("DASHBOARD_TICK", "2s")
	tick, err := time.ParseDuration(tickStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TICK: %w", err)
	}
	cfg.DashboardTick = tick

	cfg.DashboardSeed = int64(getenvInt("DASHBOARD_SEED", int(time.Now().UnixNano()%1_000_000_000)))

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
