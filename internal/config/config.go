// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Public base URL, used by the headless browser when capturing the
	// dashboard for the PDF guide.
	BaseURL string

	// Valkey (Redis-compatible preference store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Gemini settings; the API key here is a server-wide fallback, each
	// client may store their own.
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiTextModel  string
	GeminiImageModel string

	// Optional S3-compatible archive storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
		GeminiTextModel:  os.Getenv("GEMINI_MODEL_TEXT"),
		GeminiImageModel: os.Getenv("GEMINI_MODEL_IMAGE"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "eu-central"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "mantle-exports"),
	}
	cfg.BaseURL = envOrDefault("APP_BASE_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
