package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort      string `env:"HTTP_PORT"      envDefault:"8080"`
	DBHost        string `env:"DB_HOST"        envDefault:"localhost"`
	DBPort        string `env:"DB_PORT"        envDefault:"5432"`
	DBUser        string `env:"DB_USER"        envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME"        envDefault:"docflow"`
	DBSslMode     string `env:"DB_SSLMODE"     envDefault:"disable"`
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"0 * * * * *"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"info"`

	OtelExporter    string `env:"OTEL_EXPORTER"     envDefault:"none"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"docflow"`
	OtelEnvironment string `env:"OTEL_ENVIRONMENT"  envDefault:"development"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
