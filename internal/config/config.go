// Package config handles importer configuration loading and management.
package config

import "time"

// Config holds all importer settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds bundle processing settings.
type ImportConfig struct {
	BundleDir   string `yaml:"bundle_dir"`   // Directory scanned for exported bundle files
	DetailLevel int    `yaml:"detail_level"` // Highest mesh detail element to import, -1 for all
	ImportExtra bool   `yaml:"import_extra"` // Also materialize files that are not bundle elements
}

// WatchConfig holds directory watching settings.
type WatchConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SettleDelay time.Duration `yaml:"settle_delay"` // Quiet period before a changed bundle is processed
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			BundleDir:   ".",
			DetailLevel: -1,
			ImportExtra: false,
		},
		Watch: WatchConfig{
			Enabled:     false,
			SettleDelay: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
