package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Upload        UploadConfig
	OCR           OCRConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// UploadConfig governs the upload surface and the temp artifact lifecycle.
type UploadConfig struct {
	MaxUploadBytes int64
	TempDir        string
	ArtifactTTL    time.Duration
}

// OCRConfig locates the external extraction binaries.
type OCRConfig struct {
	Tesseract string
	Pdftotext string
	Language  string
	DPI       int
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables. A .env file in the
// working directory fills in anything the environment does not set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "localhost"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "finance-ingest-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Upload: UploadConfig{
			MaxUploadBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			TempDir:        getEnv("UPLOAD_TEMP_DIR", ""),
			ArtifactTTL:    getEnvAsDuration("UPLOAD_ARTIFACT_TTL", time.Hour),
		},
		OCR: OCRConfig{
			Tesseract: getEnv("OCR_TESSERACT_BIN", "tesseract"),
			Pdftotext: getEnv("OCR_PDFTOTEXT_BIN", "pdftotext"),
			Language:  getEnv("OCR_LANGUAGE", "eng"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
