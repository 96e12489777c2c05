// Package config resolves flashdeck settings from defaults, an optional YAML
// file, FLASHDECK_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flashdeck/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (FLASHDECK_STORAGE, ...).
const EnvPrefix = "FLASHDECK"

// Keys shared by viper, the YAML file and flag bindings.
const (
	KeyStorage       = "storage"
	KeyDataDir       = "data_dir"
	KeyDSN           = "dsn"
	KeyStorageKey    = "storage_key"
	KeyFeedbackDelay = "feedback_delay"
	KeyLogFile       = "log_file"
	KeyLogLevel      = "log_level"
	KeyOTLPEndpoint  = "otlp_endpoint"
	KeyOTLPInsecure  = "otlp_insecure"
	KeyServiceName   = "service_name"
)

// Config holds the resolved settings.
type Config struct {
	Storage       string        `mapstructure:"storage"`
	DataDir       string        `mapstructure:"data_dir"`
	DSN           string        `mapstructure:"dsn"`
	StorageKey    string        `mapstructure:"storage_key"`
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
	LogFile       string        `mapstructure:"log_file"`
	LogLevel      string        `mapstructure:"log_level"`
	OTLPEndpoint  string        `mapstructure:"otlp_endpoint"`
	OTLPInsecure  bool          `mapstructure:"otlp_insecure"`
	ServiceName   string        `mapstructure:"service_name"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorage, storage.BackendFile)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyDSN, "")
	v.SetDefault(KeyStorageKey, storage.DefaultKey)
	v.SetDefault(KeyFeedbackDelay, 3*time.Second)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOTLPEndpoint, "")
	v.SetDefault(KeyOTLPInsecure, true)
	v.SetDefault(KeyServiceName, "flashdeck")
}

// LoadDotEnv loads .env from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load resolves a Config from v. configFile may be empty, in which case
// config.yaml in the data directory is read when it exists.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := storage.DefaultDataDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() error {
	if c.DataDir == "" {
		dir, err := storage.DefaultDataDir()
		if err != nil {
			return fmt.Errorf("data dir: %w", err)
		}
		c.DataDir = dir
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "flashdeck.log")
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Storage {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("invalid storage %q: want file, sqlite or memory", c.Storage)
	}
	if c.FeedbackDelay <= 0 {
		return fmt.Errorf("invalid feedback_delay %s: must be positive", c.FeedbackDelay)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// StorageOptions converts the storage settings for storage.Open.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{Backend: c.Storage, DataDir: c.DataDir, DSN: c.DSN}
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
