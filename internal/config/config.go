package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. It is populated once at startup and
// treated as read-only afterwards.
type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`

	DB   DB   `mapstructure:"db"`
	JWT  JWT  `mapstructure:"jwt"`
	CORS CORS `mapstructure:"cors"`
}

// DB configures the SQLite store.
type DB struct {
	Path string `mapstructure:"path"`
}

// JWT configures token signing. Secret has no default on purpose.
type JWT struct {
	Secret     string `mapstructure:"secret"`
	Algorithm  string `mapstructure:"algorithm"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// CORS lists origins allowed to call the API from a browser.
type CORS struct {
	Origins []string `mapstructure:"origins"`
}

const (
	defaultPort        = "8080"
	defaultEnvironment = "development"
	defaultLogLevel    = "info"
	defaultDBPath      = "app.db"
	defaultAlgorithm   = "HS256"
	defaultTTLMinutes  = 30
)

// Load reads configs/config.yml and ITEMVAULT_* environment overrides
// (e.g. ITEMVAULT_JWT_SECRET) into a Config. A missing config file is fine
// as long as the required values arrive via environment.
func Load() (*Config, error) {
	v := viper.New()

	v.AddConfigPath("configs")
	v.SetConfigName("config")

	v.SetEnvPrefix("ITEMVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("environment", defaultEnvironment)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("db.path", defaultDBPath)
	// Registered empty so env-only values survive Unmarshal (viper skips
	// env keys it has never seen).
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.algorithm", defaultAlgorithm)
	v.SetDefault("jwt.ttl_minutes", defaultTTLMinutes)
	v.SetDefault("cors.origins", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required (set ITEMVAULT_JWT_SECRET or configs/config.yml)")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return nil, fmt.Errorf("jwt.ttl_minutes must be positive, got %d", cfg.JWT.TTLMinutes)
	}
	switch cfg.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported jwt.algorithm %q (want HS256, HS384 or HS512)", cfg.JWT.Algorithm)
	}

	return &cfg, nil
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}
