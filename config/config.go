package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the codemap tool.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Tree    TreeConfig    `yaml:"tree"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig holds indexing configuration.
type IndexConfig struct {
	Excludes    []string `yaml:"excludes"`
	MaxFileSize int64    `yaml:"max_file_size"`
	Workers     int      `yaml:"workers"` // 0 = number of CPUs
}

// SearchConfig holds search configuration.
type SearchConfig struct {
	MaxResults   int `yaml:"max_results"`
	ContextFiles int `yaml:"context_files"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TreeConfig holds tree rendering configuration.
type TreeConfig struct {
	MaxDepth    int `yaml:"max_depth"`
	MaxChildren int `yaml:"max_children"`
}

// WatchConfig holds file watching configuration.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Excludes:    nil, // nil means the built-in ignore list
			MaxFileSize: 10 << 20,
			Workers:     0,
		},
		Search: SearchConfig{
			MaxResults:   20,
			ContextFiles: 10,
		},
		Cache: CacheConfig{
			MaxEntries: 100,
			TTLSeconds: 300,
		},
		Tree: TreeConfig{
			MaxDepth:    4,
			MaxChildren: 50,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// codemap.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "codemap.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".codemap", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LogLevel maps the configured level string to a slog level.
// Unrecognized values fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
