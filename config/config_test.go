package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cleanEnv unsets every variable Load reads so the host environment cannot
// leak into a test.
func cleanEnv(t *testing.T) {
	t.Helper()
	for key := range builtin {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("CONFIG_FILE", "")
	os.Unsetenv("CONFIG_FILE")
}

func requiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("DB_URL", "postgres://localhost/flashdeck")
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)
	requiredEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecretKey)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	cleanEnv(t)
	requiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFlagsOverrideEnv(t *testing.T) {
	cleanEnv(t)
	requiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--port", "7000", "--db-driver", "sqlite"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	// Flags left unset do not clobber the environment.
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadYAMLFile(t *testing.T) {
	cleanEnv(t)
	requiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"6000\"\nrefresh_token_ttl: 48h\nallowed_origins:\n  - https://app.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("REFRESH_TOKEN_TTL", "72h")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "6000", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"https://app.example"}, cfg.AllowedOrigins)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	cleanEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load(nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "JWT_SECRET_KEY not set")
	assert.ErrorContains(t, err, "DB_URL not set")
	assert.ErrorContains(t, err, `unsupported db_driver "mysql"`)
}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect(&Config{DBDriver: "sqlite", DBURL: "file::memory:", DBLogLevel: "silent"})
	require.NoError(t, err)

	for _, model := range []any{&models.User{}, &models.Deck{}, &models.Flashcard{}, &models.StudySession{}, &models.DeckComment{}, &models.DeckLike{}} {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}

	_, err = Connect(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", &buf)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Warn("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
