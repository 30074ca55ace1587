package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"kiosk/internal/storage"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env  string
	Port string

	DatabaseURL string
	JWTSecret   string

	KitchenStaffName         string
	KitchenStaffPasswordHash string

	MenuFile    string
	ImageDir    string
	CORSOrigins []string

	R2       storage.R2Config
	R2Prefix string

	SessionIdleTimeout time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. Outside production a
// .env file in the working directory is loaded first.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv without touching .env files.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Env:                      get("APP_ENV", "development"),
		Port:                     get("PORT", "8080"),
		DatabaseURL:              get("DATABASE_URL", ""),
		JWTSecret:                get("JWT_SECRET", ""),
		KitchenStaffName:         get("KITCHEN_STAFF_NAME", ""),
		KitchenStaffPasswordHash: get("KITCHEN_STAFF_PASSWORD_HASH", ""),
		MenuFile:                 get("MENU_FILE", ""),
		ImageDir:                 get("IMAGE_DIR", "./img"),
		CORSOrigins:              splitList(get("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		R2: storage.R2Config{
			Endpoint:  get("R2_ENDPOINT", ""),
			AccessKey: get("R2_ACCESS_KEY", ""),
			SecretKey: get("R2_SECRET_KEY", ""),
			Bucket:    get("R2_BUCKET_NAME", ""),
		},
		R2Prefix: get("R2_PREFIX", "snapshots"),
	}

	idle, err := time.ParseDuration(get("SESSION_IDLE_TIMEOUT", "2h"))
	if err != nil || idle <= 0 {
		return nil, fmt.Errorf("%w: SESSION_IDLE_TIMEOUT must be a positive duration", ErrInvalidConfig)
	}
	cfg.SessionIdleTimeout = idle

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: missing env var JWT_SECRET", ErrInvalidConfig)
	}

	r2 := []string{c.R2.Endpoint, c.R2.AccessKey, c.R2.SecretKey, c.R2.Bucket}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return fmt.Errorf("%w: R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME must be set together", ErrInvalidConfig)
	}

	if (c.KitchenStaffName == "") != (c.KitchenStaffPasswordHash == "") {
		return fmt.Errorf("%w: KITCHEN_STAFF_NAME and KITCHEN_STAFF_PASSWORD_HASH must be set together", ErrInvalidConfig)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
