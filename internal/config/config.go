package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Quotes   QuotesConfig
	Currency CurrencyConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuotesConfig holds the quote refresh configuration.
type QuotesConfig struct {
	// RefreshSpec is a cron expression for the periodic quote and
	// exchange-rate refresh.
	RefreshSpec string
	// TokenKey is the base64 fernet key used to decrypt the stored quote
	// provider token. Empty disables authenticated provider calls.
	TokenKey string
}

// CurrencyConfig holds the default currency everything is normalized to.
type CurrencyConfig struct {
	Default model.Currency
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/patrimonio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Quotes: QuotesConfig{
			RefreshSpec: getEnv("QUOTE_REFRESH_SPEC", "@every 30m"),
			TokenKey:    getEnv("QUOTE_TOKEN_KEY", ""),
		},
		Currency: CurrencyConfig{
			Default: model.Currency(getEnv("DEFAULT_CURRENCY", string(model.BRL))),
		},
	}

	if !config.Currency.Default.Valid() {
		return nil, fmt.Errorf("unknown default currency %q", config.Currency.Default)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
