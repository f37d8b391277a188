// ABOUTME: Configuration management for the reader companion with environment variable support
// ABOUTME: Defines configuration for the API server, storage backend, logging and chat backend

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend identifiers
const (
	StorageMemory  = "memory"
	StorageSQLite  = "sqlite"
	StorageRedis   = "redis"
	StorageKeyring = "keyring"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Storage selects where settings are persisted
	Storage StorageConfig

	// Reader configures rendering and content extraction
	Reader ReaderConfig

	// Log configures the structured logger
	Log LogConfig

	// Chat configures the chat backend
	Chat ChatConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the sustained requests per second allowed per client IP
	RateLimit float64

	// RateBurst is the burst size allowed per client IP
	RateBurst int
}

// StorageConfig holds persistence backend configuration
type StorageConfig struct {
	// Type is memory, sqlite, redis or keyring
	Type string

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// KeyringService is the OS keyring service name
	KeyringService string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this process
	KeyPrefix string
}

// ReaderConfig holds reader view configuration
type ReaderConfig struct {
	// ContentRootSelector locates the rendered page inside the overlay
	ContentRootSelector string

	// CacheTTL is how long rendered reader views are cached
	CacheTTL time.Duration

	// FetchTimeout bounds page fetches for URL-mounted sessions
	FetchTimeout time.Duration
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// ChatConfig holds chat backend configuration
type ChatConfig struct {
	// BaseURL overrides the OpenAI-compatible endpoint
	BaseURL string

	// Timeout bounds a single completion
	Timeout time.Duration
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8787"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 10),
			RateBurst: getEnvAsIntOrDefault("RATE_LIMIT_BURST", 20),
		},
		Storage: StorageConfig{
			Type:       getEnvOrDefault("STORAGE_TYPE", StorageMemory),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "reader.db"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "reader-assist:"),
			},
			KeyringService: getEnvOrDefault("KEYRING_SERVICE", "reader-assist"),
		},
		Reader: ReaderConfig{
			ContentRootSelector: getEnvOrDefault("CONTENT_ROOT_SELECTOR", ".page"),
			CacheTTL:            time.Duration(getEnvAsIntOrDefault("READER_CACHE_TTL", 3600)) * time.Second,
			FetchTimeout:        time.Duration(getEnvAsIntOrDefault("FETCH_TIMEOUT", 30)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
		Chat: ChatConfig{
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
			Timeout: time.Duration(getEnvAsIntOrDefault("CHAT_TIMEOUT", 120)) * time.Second,
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("rate limit values cannot be negative")
	}

	switch c.Storage.Type {
	case StorageMemory, StorageKeyring:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite storage")
		}
	case StorageRedis:
		if c.Storage.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis storage")
		}
	default:
		return errors.New("storage type must be 'memory', 'sqlite', 'redis' or 'keyring'")
	}

	if c.Reader.ContentRootSelector == "" {
		return errors.New("content root selector cannot be empty")
	}

	return nil
}
