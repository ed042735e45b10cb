package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the notas service
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	FTP         FTPConfig
	Download    DownloadConfig
	Bus         BusConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	HTTPPort string
	// OriginURL is the externally visible base URL of this service, used
	// when composing download links in notification events.
	OriginURL string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// FTPConfig holds document storage backend configuration
type FTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	BaseDir  string
}

// DownloadConfig holds signed download link configuration
type DownloadConfig struct {
	// Secret signs retrieval handles.
	Secret string
	// TTL is how long a retrieval handle stays valid.
	TTL time.Duration
}

// BusConfig holds in-process event bus configuration
type BusConfig struct {
	Topic       string
	MaxAttempts int
	OutBuffer   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "local"),
		Server: ServerConfig{
			HTTPPort:  getEnv("HTTP_PORT", "8080"),
			OriginURL: getEnv("ORIGIN_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_DATABASE", "notasventa"),
		},
		FTP: FTPConfig{
			Host:     getEnv("FTP_HOST", "localhost"),
			Port:     getEnv("FTP_PORT", "21"),
			User:     getEnv("FTP_USER", "anonymous"),
			Password: getEnv("FTP_PASSWORD", ""),
			BaseDir:  getEnv("FTP_BASE_DIR", "notas"),
		},
		Download: DownloadConfig{
			Secret: getEnv("DOWNLOAD_SECRET", "dev-only-secret"),
			TTL:    getEnvDuration("DOWNLOAD_TTL", 15*time.Minute),
		},
		Bus: BusConfig{
			Topic:       getEnv("NOTIFICATION_TOPIC", "notes.created"),
			MaxAttempts: getEnvInt("BUS_MAX_ATTEMPTS", 3),
			OutBuffer:   getEnvInt("BUS_OUT_BUFFER", 64),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
