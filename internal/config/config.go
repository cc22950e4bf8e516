package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends for round history
const (
	StorageMemory        = "memory"
	StorageSQLite        = "sqlite"
	StorageElasticsearch = "elasticsearch"
)

// Config holds all configuration for the application
type Config struct {
	// Table configuration
	StartingBalance int64
	Decks           int
	Seed            int64 // 0 seeds from the clock
	ManualDeal      bool

	// Round history
	StorageType string
	DataDir     string

	// Elasticsearch archive
	ElasticsearchURL      string
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchIndex    string

	LogLevel    string
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables, after loading
// envFile when it exists. An empty envFile means ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		StorageType:           strings.ToLower(getEnvWithDefault("STORAGE_TYPE", StorageMemory)),
		DataDir:               getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ElasticsearchURL:      getEnvWithDefault("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchUsername: os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndex:    getEnvWithDefault("ELASTICSEARCH_INDEX", "blackjack_rounds"),
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if cfg.StartingBalance, err = getInt64("BLACKJACK_STARTING_BALANCE", 1000); err != nil {
		return nil, err
	}
	decks, err := getInt64("BLACKJACK_DECKS", 8)
	if err != nil {
		return nil, err
	}
	cfg.Decks = int(decks)
	if cfg.Seed, err = getInt64("BLACKJACK_SEED", 0); err != nil {
		return nil, err
	}
	if cfg.ManualDeal, err = getBool("BLACKJACK_MANUAL_DEAL", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the loaded values describe a playable table
func (c *Config) validate() error {
	if c.StartingBalance <= 0 {
		return fmt.Errorf("BLACKJACK_STARTING_BALANCE must be positive, got %d", c.StartingBalance)
	}
	if c.Decks <= 0 {
		return fmt.Errorf("BLACKJACK_DECKS must be positive, got %d", c.Decks)
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite, StorageElasticsearch:
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	return nil
}

// SQLitePath returns the database file used by the sqlite backend
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "blackjack.db")
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
