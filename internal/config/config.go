package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultDBPath    = "./dev.db"
	defaultPort      = "8080"
	defaultEnv       = "development"
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath       string
	Port         string
	Env          string
	LogLevel     string
	LogFormat    string
	SettingsPath string

	// Warnings collects problems found while loading; they are logged once a logger exists.
	Warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	var warnings []string
	if err := loadDotEnv(".env"); err != nil {
		warnings = append(warnings, fmt.Sprintf("read .env: %v", err))
	}

	cfg := Config{
		DBPath:       os.Getenv("DB_PATH"),
		Port:         os.Getenv("PORT"),
		Env:          strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		LogLevel:     strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFormat:    strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		SettingsPath: os.Getenv("SETTINGS_PATH"),
		Warnings:     warnings,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	case "":
		cfg.LogLevel = defaultLogLevel
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown LOG_LEVEL %q, using %s", cfg.LogLevel, defaultLogLevel))
		cfg.LogLevel = defaultLogLevel
	}

	switch cfg.LogFormat {
	case "json", "console":
	case "":
		cfg.LogFormat = defaultLogFormat
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown LOG_FORMAT %q, using %s", cfg.LogFormat, defaultLogFormat))
		cfg.LogFormat = defaultLogFormat
	}

	if !cfg.IsDev() && cfg.SettingsPath == "" {
		cfg.Warnings = append(cfg.Warnings, "SETTINGS_PATH is not set; stored business settings are used")
	}

	return cfg
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
