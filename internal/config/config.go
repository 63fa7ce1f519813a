package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	BaseURL       string
	SessionSecret string
	SessionTTL    time.Duration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
	ReminderCron  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=booking password=booking dbname=booking sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:    sessionTTL,
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "noreply@serenity-wellness.example"),
		ReminderCron:  getEnv("REMINDER_CRON", "0 18 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
