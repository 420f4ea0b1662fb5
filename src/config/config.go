package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Flat-file persistence paths
	SnapshotPath string
	HistoryPath  string

	// Quote provider settings
	PriceCacheTTL time.Duration
	FxCacheTTL    time.Duration
	FxPair        string
	DefaultFxRate float64

	// Dashboard settings
	TargetNetWorth  float64
	RefreshInterval time.Duration

	// Frontend URL for reference (e.g., CORS)
	FrontendBaseURL string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		// Core
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./nestegg.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		// Flat files. The snapshot holds raw form inputs, the history
		// file holds one net-worth row per calendar day.
		SnapshotPath: getEnv("SNAPSHOT_PATH", "./stock_dashboard_data.json"),
		HistoryPath:  getEnv("HISTORY_PATH", "./asset_history.csv"),

		// Quote provider
		PriceCacheTTL: getEnvAsDuration("PRICE_CACHE_TTL", 300*time.Second),
		FxCacheTTL:    getEnvAsDuration("FX_CACHE_TTL", 600*time.Second),
		FxPair:        getEnv("FX_PAIR", "KRW=X"),
		DefaultFxRate: getEnvAsFloat("DEFAULT_FX_RATE", 1400.0),

		// Dashboard
		TargetNetWorth:  getEnvAsFloat("TARGET_NET_WORTH", 5_000_000_000),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 10*time.Minute),

		FrontendBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, Snapshot=%s, History=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.SnapshotPath, Cfg.HistoryPath)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float64 or returns a fallback.
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %f", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
