package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is read once at startup from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	Environment string
	Version     string

	CORSAllowedOrigins string

	StaticDir      string
	UploadDir      string
	MaxUploadBytes int64

	ChromePath       string
	RenderTimeout    time.Duration
	RenderRatePerMin int

	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

// Load reads configuration from the environment after applying an optional
// .env file. Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:               getEnvString("PORT", "3000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Environment:        getEnvString("APP_ENV", EnvProduction),
		Version:            getEnvString("APP_VERSION", "1.0.0"),
		CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		StaticDir:          getEnvString("STATIC_DIR", "public"),
		UploadDir:          getEnvString("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:     getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),
		ChromePath:         os.Getenv("CHROME_PATH"),
		RenderTimeout:      getEnvDuration("RENDER_TIMEOUT", 60*time.Second),
		RenderRatePerMin:   getEnvInt("RENDER_RATE_PER_MIN", 30),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:           getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// DrainTimeout is how long the HTTP listener may drain on shutdown. It stays
// below ShutdownTimeout so the pool can still be closed before the forced exit.
func (c *Config) DrainTimeout() time.Duration {
	margin := c.ShutdownTimeout / 10
	if margin > time.Second {
		margin = time.Second
	}
	return c.ShutdownTimeout - margin
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvLevel(key string, defaultVal slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return defaultVal
	}
	return l
}
