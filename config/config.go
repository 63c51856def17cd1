package config

import (
	"os"
	"time"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Geocode  GeocodeConfig
	JWT      JWTConfig
	Polling  PollingConfig
	Payments PaymentsConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GeocodeConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig only carries what token validation needs. The gateway never
// issues tokens, so there is no expiry setting here.
type JWTConfig struct {
	Secret string
}

type PollingConfig struct {
	ChatInterval  time.Duration
	QuoteInterval time.Duration
}

type PaymentsConfig struct {
	CheckoutBaseURL string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api/v1"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
		},
		Geocode: GeocodeConfig{
			BaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			Timeout: getEnvAsDuration("GEOCODE_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
		},
		Polling: PollingConfig{
			ChatInterval:  getEnvAsDuration("CHAT_POLL_INTERVAL", 5*time.Second),
			QuoteInterval: getEnvAsDuration("QUOTE_POLL_INTERVAL", 30*time.Second),
		},
		Payments: PaymentsConfig{
			CheckoutBaseURL: getEnv("CHECKOUT_BASE_URL", "http://localhost:3000/checkout"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
