package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Seed     SeedConfig
	HTTP     HTTPConfig
	Contact  ContactConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int32
	ConnectTimeout time.Duration
}

type SeedMode string

const (
	SeedModeReconcile SeedMode = "reconcile"
	SeedModeReset     SeedMode = "reset"
	SeedModeOff       SeedMode = "off"
)

func ParseSeedMode(raw string) (SeedMode, error) {
	switch m := SeedMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case SeedModeReconcile, SeedModeReset, SeedModeOff:
		return m, nil
	case "":
		return SeedModeReconcile, nil
	default:
		return "", fmt.Errorf("unknown seed mode %q (want reconcile, reset or off)", raw)
	}
}

type SeedConfig struct {
	Mode SeedMode
}

type HTTPConfig struct {
	AllowOrigins []string
}

// ContactConfig.Email may be empty; callers fall back to the seeded profile email.
type ContactConfig struct {
	Email string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the environment, loading a .env file first when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "portfolio-api"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	maxConns, err := strconv.Atoi(opt("DB_MAX_CONNS", "10"))
	if err != nil || maxConns <= 0 {
		invalid = append(invalid, "DB_MAX_CONNS")
	}
	connectTimeout, err := time.ParseDuration(opt("DB_CONNECT_TIMEOUT", "5s"))
	if err != nil || connectTimeout <= 0 {
		invalid = append(invalid, "DB_CONNECT_TIMEOUT")
	}
	cfg.Database = DatabaseConfig{
		URL:            req("DATABASE_URL"),
		MaxConns:       int32(maxConns),
		ConnectTimeout: connectTimeout,
	}

	mode, err := ParseSeedMode(getenv("SEED_MODE"))
	if err != nil {
		invalid = append(invalid, "SEED_MODE")
	}
	cfg.Seed = SeedConfig{Mode: mode}

	cfg.HTTP = HTTPConfig{AllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS", "*"))}
	cfg.Contact = ContactConfig{Email: opt("CONTACT_EMAIL", "")}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
