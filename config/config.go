// config.go - Handles configuration for the project

package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv" // Optional .env file support
)

type Config struct { // Config struct holds all configuration values
	SupabaseURL     string // Base URL of the Supabase project
	SupabaseAnonKey string // Public (anon) API key for the project
	Addr            string // Address the web server listens on
	WhatsAppNumber  string // Operator number receiving checkout messages
}

// ErrMissingPlatform is returned when the platform URL or anon key is absent.
// Both are required at start-up; there is no usable fallback.
var ErrMissingPlatform = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required")

// Load reads config from the environment (and a .env file when present).
// A missing platform URL or key is a fatal configuration error for the
// caller to report, not something to recover from.
func Load() (*Config, error) {
	_ = godotenv.Load() // Best effort; env vars win over the file

	cfg := &Config{
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		Addr:            getEnv("ADDR", ":8080"),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "1234567890"),
	}
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return nil, ErrMissingPlatform
	}
	return cfg, nil
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
