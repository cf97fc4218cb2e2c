package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/forgo/hollow/seed/internal/database"
	"github.com/forgo/hollow/seed/internal/fixtures"
)

// Config holds all loader configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Seed     SeedConfig     `toml:"seed"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig holds connection settings for every supported backend
type DatabaseConfig struct {
	Backend        string        `toml:"backend"`
	MongoURI       string        `toml:"mongo_uri"`
	Name           string        `toml:"name"`
	Host           string        `toml:"host"`
	Port           string        `toml:"port"`
	Namespace      string        `toml:"namespace"`
	User           string        `toml:"user"`
	Password       string        `toml:"password"`
	SQLitePath     string        `toml:"sqlite_path"`
	ConnectTimeout time.Duration `toml:"connect_timeout"`
}

// SeedConfig holds fixture settings
type SeedConfig struct {
	Variant string `toml:"variant"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when nothing is set: the
// avatars fixtures loaded into the local MongoDB "hollow" database.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Backend:        string(database.BackendMongo),
			MongoURI:       "mongodb://localhost:27017",
			Name:           "hollow",
			Host:           "localhost",
			Port:           "8000",
			Namespace:      "hollow",
			User:           "root",
			Password:       "root",
			SQLitePath:     "hollow.db",
			ConnectTimeout: 10 * time.Second,
		},
		Seed: SeedConfig{
			Variant: string(fixtures.VariantAvatars),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. Sources, lowest precedence first:
// defaults, the TOML file at path (if path is not empty), a .env file in the
// working directory (if present), and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.Backend = getEnv("DB_BACKEND", c.Database.Backend)
	c.Database.MongoURI = getEnv("MONGO_URI", c.Database.MongoURI)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.Namespace = getEnv("DB_NAMESPACE", c.Database.Namespace)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.SQLitePath = getEnv("SQLITE_PATH", c.Database.SQLitePath)
	c.Database.ConnectTimeout = getDurationEnv("DB_CONNECT_TIMEOUT", c.Database.ConnectTimeout)

	c.Seed.Variant = getEnv("SEED_VARIANT", c.Seed.Variant)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	backend, err := database.ParseBackend(c.Database.Backend)
	if err != nil {
		errs = append(errs, fmt.Errorf("DB_BACKEND must be 'mongo', 'surreal', 'sqlite', or 'memory', got '%s'", c.Database.Backend))
	}

	switch backend {
	case database.BackendMongo:
		if c.Database.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo backend"))
		}
		if c.Database.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required"))
		}
	case database.BackendSurreal:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for the surreal backend"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required for the surreal backend"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required for the surreal backend"))
		}
		if c.Database.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required"))
		}
	case database.BackendSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	}

	if c.Database.ConnectTimeout < 0 {
		errs = append(errs, errors.New("DB_CONNECT_TIMEOUT must not be negative"))
	}

	if _, err := fixtures.ParseVariant(c.Seed.Variant); err != nil {
		errs = append(errs, fmt.Errorf("SEED_VARIANT must be 'avatars' or 'basic', got '%s'", c.Seed.Variant))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// StoreConfig converts the settings into a database.Config.
// Call Validate first; an invalid backend name is passed through unchanged.
func (c *Config) StoreConfig() database.Config {
	return database.Config{
		Backend:        database.Backend(strings.ToLower(strings.TrimSpace(c.Database.Backend))),
		URI:            c.Database.MongoURI,
		Host:           c.Database.Host,
		Port:           c.Database.Port,
		User:           c.Database.User,
		Password:       c.Database.Password,
		Namespace:      c.Database.Namespace,
		Database:       c.Database.Name,
		Path:           c.Database.SQLitePath,
		ConnectTimeout: c.Database.ConnectTimeout,
	}
}

// Variant returns the parsed fixture variant
func (c *Config) Variant() (fixtures.Variant, error) {
	return fixtures.ParseVariant(c.Seed.Variant)
}

// SlogLevel parses Level into a slog.Level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level '%s'", l.Level)
	}
	return level, nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare integers are seconds
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
