package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DatabaseURL        string        `koanf:"database_url" validate:"required"`
	Port               string        `koanf:"port" validate:"required,numeric"`
	LogLevel           string        `koanf:"log_level" validate:"oneof=debug info warn error disabled"`
	LogJSON            bool          `koanf:"log_json"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	DBMaxOpenConns     int           `koanf:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns     int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime  time.Duration `koanf:"db_conn_max_lifetime" validate:"gte=0"`
	DBConnectTimeout   time.Duration `koanf:"db_connect_timeout" validate:"gt=0"`
	PostsMaxLimit      int           `koanf:"posts_max_limit" validate:"gte=1"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RetryAfter         time.Duration `koanf:"retry_after" validate:"gte=0"`
}

// envKeys lists the environment variables the service reads. Anything else in
// the environment is ignored.
var envKeys = map[string]string{
	"DATABASE_URL":         "database_url",
	"PORT":                 "port",
	"LOG_LEVEL":            "log_level",
	"LOG_JSON":             "log_json",
	"CORS_ALLOWED_ORIGINS": "cors_allowed_origins",
	"DB_MAX_OPEN_CONNS":    "db_max_open_conns",
	"DB_MAX_IDLE_CONNS":    "db_max_idle_conns",
	"DB_CONN_MAX_LIFETIME": "db_conn_max_lifetime",
	"DB_CONNECT_TIMEOUT":   "db_connect_timeout",
	"POSTS_MAX_LIMIT":      "posts_max_limit",
	"SHUTDOWN_TIMEOUT":     "shutdown_timeout",
	"RETRY_AFTER":          "retry_after",
}

func Default() *Config {
	return &Config{
		Port:              "8080",
		LogLevel:          "info",
		DBMaxOpenConns:    20,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 30 * time.Minute,
		DBConnectTimeout:  5 * time.Second,
		PostsMaxLimit:     100,
		ShutdownTimeout:   10 * time.Second,
		RetryAfter:        5 * time.Second,
	}
}

// Load reads defaults, then the process environment, and validates the result.
func Load() (*Config, error) {
	return load(os.Environ)
}

func load(environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok || strings.TrimSpace(value) == "" {
				return "", nil
			}
			if path == "cors_allowed_origins" {
				return path, strings.Split(value, ",")
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.CORSAllowedOrigins = trimOrigins(cfg.CORSAllowedOrigins)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
