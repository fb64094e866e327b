package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"course_activity_report/internal/domain/activity"
	"course_activity_report/internal/domain/report"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	Credentials    activity.Credentials
	Transfer       report.TransferConfig
	PlatformDomain string
	HTTPTimeout    time.Duration
	TemplatePath   string
	OutputDir      string
	LogLevel       string
	Environment    string
	CronSpec       string // Empty means run once
	RunTimeout     time.Duration
	DatabaseURL    string // Empty disables run history
	TelegramToken  string
	TelegramChatID int64 // Zero disables run notifications
}

// Load reads configuration from environment variables and .env file (if present).
// Required values are not checked here; callers validate what they use.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.Credentials = activity.Credentials{
		ClientKey:    os.Getenv("CLIENT_KEY"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		AccountName:  os.Getenv("ACCOUNT_NAME"),
		AccountID:    os.Getenv("ACCOUNT_ID"),
	}

	cfg.Transfer = report.TransferConfig{
		Hostname:   os.Getenv("SFTP_HOSTNAME"),
		Username:   os.Getenv("SFTP_USERNAME"),
		Password:   os.Getenv("SFTP_PASSWORD"),
		RemotePath: envOr("SFTP_REMOTE_PATH", "/"),
		KnownHosts: os.Getenv("SFTP_KNOWN_HOSTS"),
	}
	cfg.Transfer.Port, err = envInt("SFTP_PORT", 22)
	if err != nil {
		return nil, err
	}
	cfg.Transfer.Timeout, err = envDuration("SFTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.PlatformDomain = envOr("PLATFORM_DOMAIN", "udemy.com")
	cfg.HTTPTimeout, err = envDuration("HTTP_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.TemplatePath = envOr("TEMPLATE_PATH", "template.xlsx")
	cfg.OutputDir = envOr("OUTPUT_DIR", ".")

	cfg.LogLevel = strings.ToLower(envOr("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(envOr("ENVIRONMENT", "development"))

	cfg.CronSpec = strings.TrimSpace(os.Getenv("REPORT_CRON_SPEC"))
	cfg.RunTimeout, err = envDuration("REPORT_RUN_TIMEOUT", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

// NotificationsEnabled reports whether both Telegram settings are present.
func (c *AppConfig) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
