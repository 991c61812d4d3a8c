package appconf

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultConnectivityURL = "https://chinatownlogistic.com"
	DriverMySQL            = "mysql"
	DriverSQLite           = "sqlite"
)

// DatabaseConfig describes how to reach the arrival record store.
type DatabaseConfig struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	// Path is only used by the sqlite driver. ":memory:" keeps everything in process.
	Path string
}

type TelegramConfig struct {
	Token  string
	ChatID string
	// BaseURL is overridden in tests.
	BaseURL string
}

// Config is built once at startup and handed to every component.
type Config struct {
	Env             Environment
	Database        DatabaseConfig
	Telegram        TelegramConfig
	ConnectivityURL string
	Location        *time.Location

	// Report server settings, filled from flags by cmd/api.
	Port      int
	ApiKeys   []string
	RateLimit int
}

// FromEnv reads the configuration from environment lookups. getenv is os.Getenv in
// production and a map lookup in tests.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Database: DatabaseConfig{
			Driver:   valueOr(getenv("DB_DRIVER"), DriverMySQL),
			Host:     getenv("DB_HOST"),
			User:     getenv("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME"),
			Path:     getenv("DB_PATH"),
		},
		Telegram: TelegramConfig{
			Token:   getenv("TELEGRAM_TOKEN"),
			ChatID:  getenv("TELEGRAM_CHAT_ID"),
			BaseURL: valueOr(getenv("TELEGRAM_API_URL"), "https://api.telegram.org"),
		},
		ConnectivityURL: valueOr(getenv("CONNECTIVITY_URL"), DefaultConnectivityURL),
		Location:        time.Local,
	}

	if tz := getenv("ARRIVALS_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARRIVALS_TZ %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	switch cfg.Database.Driver {
	case DriverMySQL:
	case DriverSQLite:
		if cfg.Database.Path == "" {
			return Config{}, fmt.Errorf("DB_PATH is required for the %s driver", DriverSQLite)
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

// Load is FromEnv over the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
