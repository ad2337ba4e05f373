package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken signals that the bot cannot start because no Telegram
// credential was provided. main prints setup guidance and exits cleanly.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

type AppConfig struct {
	// TelegramToken is the bot credential. Required.
	TelegramToken string

	// ChatID is the chat that receives the scheduled weekly report. When
	// zero, weekly delivery is disabled and only the interactive bot and
	// HTTP endpoints run.
	ChatID int64

	// BaseURL is the KPX endpoint serving the SMP tables.
	BaseURL string

	// HTTPTimeout bounds each outbound KPX request.
	HTTPTimeout time.Duration

	// Timezone anchors the weekly schedule (Monday 09:00).
	Timezone *time.Location

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramToken == "" || cfg.TelegramToken == "YOUR_BOT_TOKEN_HERE" {
		return nil, ErrMissingToken
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" && raw != "YOUR_CHAT_ID_HERE" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.ChatID = id
	}

	cfg.BaseURL = getenvDefault("KPX_BASE_URL", "https://new.kpx.or.kr/smpInland.es")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	tzName := getenvDefault("SCHEDULE_TIMEZONE", "Asia/Seoul")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	cfg.Port = getenvDefault("PORT", "10000")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
