package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               int
	NatsURL            string
	NatsToken          string
	DatabaseURL        string
	LogLevel           string
	AnthropicAPIKey    string
	AnthropicModel     string
	AgencyName         string
	AmbiguityThreshold float64
	APIToken           string
}

func Load() Config {
	return Config{
		Port:               envInt("ANVIL_PORT", 8760),
		NatsURL:            envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:          envStr("NATS_TOKEN", ""),
		DatabaseURL:        envStr("DATABASE_URL", ""),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:    envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     envStr("ANVIL_MODEL", "claude-sonnet-4-20250514"),
		AgencyName:         envStr("ANVIL_AGENCY_NAME", "Harper Insurance"),
		AmbiguityThreshold: envFloat("ANVIL_AMBIGUITY_THRESHOLD", 0.7),
		APIToken:           envStr("ANVIL_API_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
