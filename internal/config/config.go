package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds process-wide settings, read once at startup
type Config struct {
	HTTPAddr      string
	LogLevel      string
	RunOnce       bool
	Chip          ChipConfig
	Mongo         MongoConfig
	Notifications NotificationsConfig
}

// ChipConfig holds the payment provider credentials and endpoint
type ChipConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// MongoConfig holds the document store connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// NotificationsConfig controls the notification cleanup job
type NotificationsConfig struct {
	Store      string
	Collection string
	Retention  time.Duration
}

// Store backends
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// ErrMissingChipCredentials is returned when the provider key or secret is unset
var ErrMissingChipCredentials = errors.New("CHIP_API_KEY and CHIP_API_SECRET must be set")

// Load reads the .env file if present and then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment")
	}

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		RunOnce:  getBool("RUN_ONCE", false),
		Chip: ChipConfig{
			BaseURL:   getEnv("CHIP_API_BASE", "https://staging-api.chip-in.asia/api"),
			APIKey:    getEnv("CHIP_API_KEY", ""),
			APISecret: getEnv("CHIP_API_SECRET", ""),
			Timeout:   getDuration("CHIP_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "ramadhan_companion"),
		},
		Notifications: NotificationsConfig{
			Store:      getEnv("NOTIFICATION_STORE", StoreMongo),
			Collection: getEnv("NOTIFICATIONS_COLLECTION", "notifications"),
			Retention:  getDuration("NOTIFICATION_RETENTION", 7*24*time.Hour),
		},
	}
}

// ValidateChip reports whether the payment provider credentials are present
func (c Config) ValidateChip() error {
	if c.Chip.APIKey == "" || c.Chip.APISecret == "" {
		return ErrMissingChipCredentials
	}
	return nil
}

// ParseLogLevel returns the configured logrus level, falling back to info
func (c Config) ParseLogLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": value}).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
