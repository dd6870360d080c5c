package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	Port        int
	CORSOrigins []string
	MaxUploadMB int64

	// Report configuration
	LateThreshold time.Duration // settlements slower than this are flagged
	TopN          int           // entries per game/provider ranking
	ItemListCap   int           // max items in open/late/missing lists

	// Database configuration (optional; enables the stored-ledger endpoints)
	DatabaseURL  string
	DatabaseName string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables, reading .env first when present
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:          8000,
		CORSOrigins:   []string{"*"},
		MaxUploadMB:   50,
		LateThreshold: 5 * time.Minute,
		TopN:          3,
		ItemListCap:   50,

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", port)
		}
		config.Port = parsed
	}

	if origins := os.Getenv("API_CORS_ORIGINS"); origins != "" {
		config.CORSOrigins = splitList(origins)
	}

	if mb := os.Getenv("MAX_UPLOAD_MB"); mb != "" {
		if parsed, err := strconv.ParseInt(mb, 10, 64); err == nil && parsed > 0 {
			config.MaxUploadMB = parsed
		}
	}

	if minutes := os.Getenv("LATE_THRESHOLD_MINUTES"); minutes != "" {
		parsed, err := strconv.ParseFloat(minutes, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES %q", minutes)
		}
		config.LateThreshold = time.Duration(parsed * float64(time.Minute))
	}

	if topN := os.Getenv("TOP_N"); topN != "" {
		if parsed, err := strconv.Atoi(topN); err == nil && parsed > 0 {
			config.TopN = parsed
		}
	}

	if limit := os.Getenv("ITEM_LIST_CAP"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			config.ItemListCap = parsed
		}
	}

	return config, nil
}

// HasDatabase reports whether a ledger database is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
