package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

const (
	defaultAccessMinutes  = 30
	fallbackAccessMinutes = 15
	defaultRefreshDays    = 7
)

// Config is read once at startup and treated as immutable afterwards.
// Nothing reads the environment after Load returns.
type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	SecretKey          string
	Algorithm          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	FrontendURL        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		SecretKey:          strings.TrimSpace(os.Getenv("SECRET_KEY")),
		Algorithm:          signingAlgorithm(),
		AccessTokenTTL:     accessTokenTTL(),
		RefreshTokenTTL:    refreshTokenTTL(),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// accessTokenTTL reads ACCESS_TOKEN_EXPIRE_MINUTES: unset means 30 minutes,
// while an unparsable or non-positive value falls back to 15.
func accessTokenTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if raw == "" {
		return defaultAccessMinutes * time.Minute
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return fallbackAccessMinutes * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

// refreshTokenTTL reads REFRESH_TOKEN_EXPIRE_DAYS with the same rule;
// anything unset, unparsable, or non-positive yields 7 days.
func refreshTokenTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"))
	if raw == "" {
		return defaultRefreshDays * 24 * time.Hour
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultRefreshDays * 24 * time.Hour
	}

	return time.Duration(days) * 24 * time.Hour
}

// signingAlgorithm accepts any registered HMAC algorithm name and falls
// back to HS256 for anything else.
func signingAlgorithm() string {
	raw := strings.ToUpper(strings.TrimSpace(os.Getenv("ALGORITHM")))
	if raw == "" {
		return "HS256"
	}

	if _, ok := jwt.GetSigningMethod(raw).(*jwt.SigningMethodHMAC); !ok {
		return "HS256"
	}

	return raw
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}
