package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Inventory InventoryConfig
	Autosave  AutosaveConfig
	Alert     AlertConfig
	LogLevel  string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// InventoryConfig holds the stock file location and reporting knobs.
type InventoryConfig struct {
	FilePath          string
	LowStockThreshold int
	JournalCapacity   int
}

// AutosaveConfig holds scheduler-related settings.
type AutosaveConfig struct {
	CronSchedule string
}

// AlertConfig holds the optional low-stock webhook destination.
// An empty URL disables outbound alerts.
type AlertConfig struct {
	WebhookURL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Inventory: InventoryConfig{
			FilePath:          getenvWithDefault("INVENTORY_FILE", "inventory.json"),
			LowStockThreshold: intenvWithDefault("LOW_STOCK_THRESHOLD", 5),
			JournalCapacity:   intenvWithDefault("JOURNAL_CAPACITY", 256),
		},
		Autosave: AutosaveConfig{
			CronSchedule: getenvWithDefault("AUTOSAVE_CRON_SCHEDULE", "*/5 * * * *"),
		},
		Alert: AlertConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Inventory.FilePath == "":
		return errors.New("INVENTORY_FILE must be provided")
	case c.Inventory.LowStockThreshold < 0:
		return errors.New("LOW_STOCK_THRESHOLD must be non-negative")
	case c.Inventory.JournalCapacity <= 0:
		return errors.New("JOURNAL_CAPACITY must be positive")
	}

	if c.Autosave.CronSchedule == "" {
		return errors.New("AUTOSAVE_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intenvWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
