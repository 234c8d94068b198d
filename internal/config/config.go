package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/workmetrics/hr-analytics-go/internal/pkg/validator"
)

// Store kinds the pipeline can run against.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Pipeline PipelineConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// StoreConfig selects the backend the cleaned table lives in
type StoreConfig struct {
	Kind       string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PipelineConfig holds the run defaults; flags override these
type PipelineConfig struct {
	InputPath     string
	OutputPath    string
	ReferenceDate string
}

func Load() (*Config, error) {
	// .env is optional for a batch run; the real environment wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Store = StoreConfig{
		Kind:       getEnv("STORE_KIND", StoreMemory),
		SQLitePath: getEnv("SQLITE_PATH", ""),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_analytics"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Pipeline = PipelineConfig{
		InputPath:     getEnv("INPUT_PATH", ""),
		OutputPath:    getEnv("OUTPUT_PATH", "-"),
		ReferenceDate: getEnv("REFERENCE_DATE", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validator.IsInSlice(c.Store.Kind, []string{StoreMemory, StoreSQLite, StorePostgres}) {
		return fmt.Errorf("unsupported STORE_KIND: %s", c.Store.Kind)
	}
	if c.Store.Kind == StorePostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Store.Kind == StoreSQLite && c.Store.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required")
	}
	if c.Pipeline.ReferenceDate != "" {
		if _, ok := validator.IsISODate(c.Pipeline.ReferenceDate); !ok {
			return fmt.Errorf("invalid REFERENCE_DATE: %s", c.Pipeline.ReferenceDate)
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
