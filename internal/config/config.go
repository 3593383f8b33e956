// Package config resolves runtime settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	minSecretKeyLength  = 32
	defaultPort         = "8080"
	defaultDBPath       = "data/abeba.db"
	defaultReminderCron = "0 9 * * *"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyTooShort = errors.New("SECRET_KEY must be at least 32 characters")
	ErrInvalidPort       = errors.New("PORT must be a number between 1 and 65535")
)

type Config struct {
	SecretKey         string
	DBPath            string
	Port              string
	Location          *time.Location
	CookieSecure      bool
	DefaultLanguage   string
	LogLevel          string
	Environment       string
	HorizonMonths     int
	ReminderCron      string
	ReminderDaysAhead int
	TelegramBotToken  string
	// Warnings collects recoverable problems to report once logging is up.
	Warnings []string
}

// NewViper returns a viper instance with every key bound to its environment
// variable and defaulted. configFile is merged when non-empty.
func NewViper(configFile string) (*viper.Viper, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("TZ", "UTC")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HORIZON_MONTHS", 24)
	v.SetDefault("REMINDER_CRON", defaultReminderCron)
	v.SetDefault("REMINDER_DAYS_AHEAD", 2)
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("SECRET_KEY", "")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (*Config, error) {
	secretKey, err := resolveSecretKey(v.GetString("SECRET_KEY"))
	if err != nil {
		return nil, err
	}
	port, err := resolvePort(v.GetString("PORT"))
	if err != nil {
		return nil, err
	}

	horizon := v.GetInt("HORIZON_MONTHS")
	if horizon <= 0 || horizon > 120 {
		return nil, fmt.Errorf("HORIZON_MONTHS must be between 1 and 120, got %d", horizon)
	}
	daysAhead := v.GetInt("REMINDER_DAYS_AHEAD")
	if daysAhead < 0 {
		return nil, fmt.Errorf("REMINDER_DAYS_AHEAD must not be negative, got %d", daysAhead)
	}

	location, ok := resolveLocation(v.GetString("TZ"))
	warnings := make([]string, 0)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("invalid TZ %q, falling back to UTC", v.GetString("TZ")))
	}

	return &Config{
		SecretKey:         secretKey,
		DBPath:            strings.TrimSpace(v.GetString("DB_PATH")),
		Port:              port,
		Location:          location,
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		DefaultLanguage:   strings.ToLower(strings.TrimSpace(v.GetString("DEFAULT_LANGUAGE"))),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		Environment:       strings.ToLower(strings.TrimSpace(v.GetString("ENVIRONMENT"))),
		HorizonMonths:     horizon,
		ReminderCron:      strings.TrimSpace(v.GetString("REMINDER_CRON")),
		ReminderDaysAhead: daysAhead,
		TelegramBotToken:  strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		Warnings:          warnings,
	}, nil
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return defaultPort, nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", ErrInvalidPort
	}
	return port, nil
}

func resolveLocation(name string) (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}
