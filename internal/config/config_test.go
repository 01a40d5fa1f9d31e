package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "DATABASE_URL", "APP_ENV", "APP_VERSION", "CORS_ALLOWED_ORIGINS",
		"STATIC_DIR", "UPLOAD_DIR", "MAX_UPLOAD_BYTES", "CHROME_PATH", "RENDER_TIMEOUT",
		"RENDER_RATE_PER_MIN", "SHUTDOWN_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "*", cfg.CORSAllowedOrigins)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 60*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 30, cfg.RenderRatePerMin)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("RENDER_TIMEOUT", "15s")
	t.Setenv("RENDER_RATE_PER_MIN", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 15*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 5, cfg.RenderRatePerMin)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RENDER_TIMEOUT", "soon")
	t.Setenv("RENDER_RATE_PER_MIN", "many")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 30, cfg.RenderRatePerMin)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("MAX_UPLOAD_BYTES", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\nAPP_VERSION=2.3.4\n"), 0o600))

	// registered so the values godotenv sets are restored afterwards
	t.Setenv("PORT", "")
	t.Setenv("APP_VERSION", "9.9.9")
	require.NoError(t, os.Unsetenv("PORT"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	// the environment wins over the file
	assert.Equal(t, "9.9.9", cfg.Version)
}

func TestDrainTimeoutLeavesRoomForPoolClose(t *testing.T) {
	tests := []struct {
		shutdown time.Duration
		want     time.Duration
	}{
		{10 * time.Second, 9 * time.Second},
		{30 * time.Second, 29 * time.Second},
		{2 * time.Second, 1800 * time.Millisecond},
		{100 * time.Millisecond, 90 * time.Millisecond},
	}
	for _, tt := range tests {
		cfg := &Config{ShutdownTimeout: tt.shutdown}
		got := cfg.DrainTimeout()
		assert.Equal(t, tt.want, got, tt.shutdown.String())
		assert.Less(t, got, tt.shutdown)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
