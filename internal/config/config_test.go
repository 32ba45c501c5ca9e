package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_PATH", "PORT", "APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "SETTINGS_PATH"} {
		t.Setenv(k, "")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()
	assert.Equal(t, "./dev.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.SettingsPath)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_ReadsEnvAndDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	content := "PORT=9191\nLOG_FORMAT=console\nSETTINGS_PATH=./settings.yaml\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.Equal(t, "7000", cfg.Port, "env wins over .env")
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "./settings.yaml", cfg.SettingsPath)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_UnknownLogSettingsFallBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("LOG_FORMAT", "xml")

	cfg := Load()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Len(t, cfg.Warnings, 2)
}
