// Package config resolves daybook's runtime configuration from the config
// file, environment (optionally seeded from .env files) and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type Config struct {
	// Database is a sqlite file path or a postgres connection string.
	Database string `mapstructure:"database"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	// Timezone overrides the stored timezone setting when non-empty.
	Timezone  string `mapstructure:"timezone"`
	ExportDir string `mapstructure:"export_dir"`
}

func Default() Config {
	return Config{
		Database:  constants.DefaultConfigPath,
		LogLevel:  "info",
		ExportDir: ".",
	}
}

// Dir returns the default configuration directory, ~/.config/daybook.
func Dir() (string, error) {
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads <dir>/config.yaml and DAYBOOK_* environment variables over the
// defaults. envFiles are loaded into the environment first without overriding
// variables that are already set; with none given, a .env in the working
// directory is used when present.
func Load(dir string, envFiles ...string) (Config, error) {
	cfg := Default()

	if err := loadEnvFiles(envFiles); err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database", cfg.Database)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("export_dir", cfg.ExportDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("database must not be empty")
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// DatabasePath returns the expanded database location. Postgres connection
// strings are returned unchanged.
func (c Config) DatabasePath() (string, error) {
	if IsPostgres(c.Database) {
		return c.Database, nil
	}
	return ExpandPath(c.Database)
}

func IsPostgres(database string) bool {
	return strings.HasPrefix(database, "postgres://") || strings.HasPrefix(database, "postgresql://")
}
