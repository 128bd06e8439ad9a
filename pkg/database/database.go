package database

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection configuration
type Config struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int           // Maximum number of open connections
	MaxIdleConns    int           // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	RetryAttempts   int           // Number of retry attempts for connection
	RetryDelay      time.Duration // Delay between retry attempts
}

// NewConfig creates a new database configuration from environment variables
func NewConfig() *Config {
	return &Config{
		Host:            getEnvOrDefault("DICTIONARY_DB_HOSTNAME", "localhost"),
		Port:            getEnvOrDefault("DICTIONARY_DB_PORT", "5432"),
		Username:        getEnvOrDefault("DICTIONARY_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("DICTIONARY_DB_PASSWORD", "password"),
		Database:        getEnvOrDefault("DICTIONARY_DB_DATABASENAME", "ga_dictionary"),
		SSLMode:         getEnvOrDefault("DB_SSLMODE", "require"),
		MaxOpenConns:    parseIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    parseIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: parseDurationOrDefault("DB_CONN_MAX_LIFETIME", "1h"),
		ConnMaxIdleTime: parseDurationOrDefault("DB_CONN_MAX_IDLE_TIME", "30m"),
		RetryAttempts:   parseIntOrDefault("DB_RETRY_ATTEMPTS", 3),
		RetryDelay:      parseDurationOrDefault("DB_RETRY_DELAY", "1s"),
	}
}

// DSN returns the PostgreSQL connection string for this configuration
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

// Connect opens a GORM connection with pool tuning and connection retries
func Connect(config *Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= config.RetryAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		slog.Warn("Database connection failed, retrying",
			"attempt", attempt,
			"maxAttempts", config.RetryAttempts,
			"error", err)
		time.Sleep(config.RetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", config.RetryAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	slog.Info("Database connection established",
		"host", config.Host,
		"database", config.Database,
		"maxOpenConns", config.MaxOpenConns)

	return db, nil
}

// parseIntOrDefault parses an integer from environment variable or returns default
func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// parseDurationOrDefault parses a duration from environment variable or returns default
func parseDurationOrDefault(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	parsed, _ := time.ParseDuration(defaultValue)
	return parsed
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
