package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Store:     StoreConfig{DataPath: "/some/path"},
		RateLimit: RateLimitConfig{RPS: 10, Burst: 20},
		Links:     LinksConfig{MaxPerTitle: 2},
	}
}

// clearEnv isolates a test from the host environment and any .env in the package dir.
func clearEnv(t *testing.T) []string {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DATA_PATH", "SERVER_PORT", "SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_LINKS_PER_TITLE",
	} {
		t.Setenv(key, "")
	}
	return []string{"-env-file", filepath.Join(t.TempDir(), "missing.env"), "-data-path", t.TempDir()}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Store.DataPath = "" }},
		{"zero rps", func(c *Config) { c.RateLimit.RPS = 0 }},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }},
		{"zero max per title", func(c *Config) { c.Links.MaxPerTitle = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	args := clearEnv(t)

	cfg, err := Load(args)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 2, cfg.Links.MaxPerTitle)
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	args := clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MAX_LINKS_PER_TITLE", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(append(args, "-port", "9100"))
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Links.MaxPerTitle)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	args := clearEnv(t)

	_, err := Load(append(args, "-read-timeout", "soon"))
	assert.Error(t, err)
}

func TestLoad_InvalidMaxPerTitle(t *testing.T) {
	args := clearEnv(t)

	_, err := Load(append(args, "-max-links-per-title", "0"))
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/LinkCheck/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "LinkCheck", "data"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("TEST_INT_KEY", "nope")
	assert.Equal(t, 7, getIntConfigValue("", "TEST_INT_KEY", 7))
	assert.Equal(t, 3, getIntConfigValue("3", "TEST_INT_KEY", 7))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nTEST_LINKCHECK_A=alpha\n  TEST_LINKCHECK_B = \"beta\"  \nTEST_LINKCHECK_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_LINKCHECK_A", "")
	t.Setenv("TEST_LINKCHECK_B", "")
	t.Setenv("TEST_LINKCHECK_KEEP", "process")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "alpha", os.Getenv("TEST_LINKCHECK_A"))
	assert.Equal(t, "beta", os.Getenv("TEST_LINKCHECK_B"))
	assert.Equal(t, "process", os.Getenv("TEST_LINKCHECK_KEEP"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_PAIR\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}
