package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. TASKMANAGER_AUTH_JWT_SECRET.
const EnvPrefix = "TASKMANAGER"

// defaults lists every known key. Viper only binds environment variables for
// keys it already knows about, so required keys get an empty default too.
var defaults = map[string]any{
	"server.port":                     8081,
	"server.log_level":                "info",
	"server.cors_allowed_origins":     []string{"*"},
	"server.shutdown_timeout_seconds": 10,
	"database.url":                    "",
	"database.max_open_conns":         10,
	"database.max_idle_conns":         5,
	"database.connect_retries":        5,
	"database.auto_migrate":           false,
	"auth.jwt_secret":                 "",
	"auth.token_lifetime_minutes":     1440,
	"auth.clock_skew_seconds":         0,
	"auth.bcrypt_cost":                10,
}

// Load reads configuration from, in increasing order of precedence: built-in
// defaults, an optional YAML file, and environment variables. A .env file in
// the working directory is loaded into the environment first if present.
//
// configFile may be empty, in which case ./config.yaml is used when it exists.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
