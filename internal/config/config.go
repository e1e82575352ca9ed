// Package config loads lexiz settings from defaults, an optional YAML file,
// a .env file and LEXIZ_* environment variables.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Drill   DrillConfig   `mapstructure:"drill"`
	Storage StorageConfig `mapstructure:"storage"`
	Vocab   VocabConfig   `mapstructure:"vocab"`
	Log     LogConfig     `mapstructure:"log"`
}

// DrillConfig controls day size and prompt timing. The countdown always
// ticks once per second.
type DrillConfig struct {
	WordsPerDay  int           `mapstructure:"words_per_day" validate:"gt=0"`
	ThinkingTime int           `mapstructure:"thinking_time" validate:"min=1,max=600"` // seconds
	SettleDelay  time.Duration `mapstructure:"settle_delay" validate:"gte=0"`
}

// StorageConfig locates the SQLite database. Empty means the default path.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// VocabConfig points at a vocabulary file or directory. Empty means the
// built-in dataset.
type VocabConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Drill: DrillConfig{
			WordsPerDay:  10,
			ThinkingTime: 10,
			SettleDelay:  1500 * time.Millisecond,
		},
		Log: LogConfig{Level: "info"},
	}
}
