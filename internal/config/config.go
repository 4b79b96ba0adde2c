package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config loaded from environment variables
type Config struct {
	Port           string
	Provider       string
	JWTSecret      string
	MongoURI       string
	RedisAddr      string
	HistoryDSN     string
	ReaperSchedule string
	SessionMaxAge  time.Duration
	AllowedOrigins []string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	maxAgeHours, err := strconv.Atoi(getEnvOrDefault("SESSION_MAX_AGE_HOURS", "24"))
	if err != nil || maxAgeHours <= 0 {
		return nil, errors.New("SESSION_MAX_AGE_HOURS must be a positive integer")
	}

	config := &Config{
		Port:           getEnvOrDefault("PORT", "8085"),
		Provider:       getEnvOrDefault("AI_PROVIDER", "gemini"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MongoURI:       os.Getenv("MONGO_URI"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		HistoryDSN:     os.Getenv("HISTORY_DB_DSN"),
		ReaperSchedule: getEnvOrDefault("REAPER_SCHEDULE", "@every 15m"),
		SessionMaxAge:  time.Duration(maxAgeHours) * time.Hour,
		AllowedOrigins: []string{getEnvOrDefault("ALLOWED_ORIGIN", "*")},
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
