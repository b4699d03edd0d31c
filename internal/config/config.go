// Package config loads coinwatch configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	Port     string
	LogLevel string
	APIKey   string // protects mutating routes when set

	// Database
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string // sqlite file
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Market data
	MarketAPIURL         string
	MarketAPIKey         string
	MarketCurrency       string
	RequestTimeout       time.Duration
	PriceRefreshSchedule string // cron spec, empty disables the job

	// Persistence
	PersistSync    bool
	PersistRetries int
	PersistBackoff time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		APIKey:   getEnv("API_KEY", ""),

		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:     getEnv("DB_PATH", "coinwatch.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "coinwatch"),
		DBPassword: getEnv("DB_PASSWORD", "coinwatch"),
		DBName:     getEnv("DB_NAME", "coinwatch"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Market data
		MarketAPIURL:         getEnv("MARKET_API_URL", "https://api.livecoinwatch.com"),
		MarketAPIKey:         getEnv("MARKET_API_KEY", ""),
		MarketCurrency:       strings.ToUpper(getEnv("MARKET_CURRENCY", "USD")),
		PriceRefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 1m"),
	}

	config.RequestTimeout = getDuration("REQUEST_TIMEOUT", 15*time.Second)
	config.PersistBackoff = getDuration("PERSIST_BACKOFF", 500*time.Millisecond)
	config.PersistSync = getBool("PERSIST_SYNC", false)
	config.PersistRetries = getInt("PERSIST_RETRIES", 3)

	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		log.Printf("Warning: unknown DB_DRIVER '%s', falling back to sqlite\n", config.DBDriver)
		config.DBDriver = "sqlite"
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, s, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, s, defaultValue)
		return defaultValue
	}
}

func getInt(key string, defaultValue int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, s, defaultValue)
		return defaultValue
	}
	return n
}
