package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LEXIZ"

// Load builds the configuration. Sources in increasing precedence:
// defaults, the YAML file at path (or the default config file when path is
// empty and it exists), and environment variables, including those from a
// .env file in the working directory.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if path == "" {
		path = defaultConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("storage.db_path", "LEXIZ_STORAGE_DB_PATH", "LEXIZ_DB"); err != nil {
		return nil, fmt.Errorf("bind LEXIZ_DB: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("drill.words_per_day", d.Drill.WordsPerDay)
	v.SetDefault("drill.thinking_time", d.Drill.ThinkingTime)
	v.SetDefault("drill.settle_delay", d.Drill.SettleDelay)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("vocab.path", d.Vocab.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// defaultConfigFile returns $XDG_CONFIG_HOME/lexiz/config.yaml when it
// exists, or "".
func defaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "lexiz", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
