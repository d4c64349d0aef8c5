package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Amount format names accepted in REPORT_AMOUNT_FORMAT. The format is a
// deployment choice; it is never detected per uploaded file.
const (
	FormatArgentine = "argentine" // grouping ".", decimal ","
	FormatAmerican  = "american"  // grouping ",", decimal "."
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Report  ReportConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	MaxUploadBytes int64
}

type ReportConfig struct {
	// AmountFormat selects the thousands/decimal separator convention.
	AmountFormat string
}

type LoggingConfig struct {
	Level string // debug, info, warn, error
}

// Load reads configuration from environment variables, honoring a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "localhost"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		},
		Report: ReportConfig{
			AmountFormat: getEnv("REPORT_AMOUNT_FORMAT", FormatArgentine),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Report.AmountFormat != FormatArgentine && cfg.Report.AmountFormat != FormatAmerican {
		return nil, fmt.Errorf("invalid REPORT_AMOUNT_FORMAT %q (want %s or %s)",
			cfg.Report.AmountFormat, FormatArgentine, FormatAmerican)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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
