package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultScanWindow is the default lookback window in runes.
const DefaultScanWindow = 500

// Config holds the engine settings.
type Config struct {
	// ScanWindow bounds the lookback buffer, in runes. Zero or negative
	// means unbounded within the block.
	ScanWindow int `toml:"scan_window"`

	// Rules toggles built-in rules by name. Rules not listed are enabled.
	Rules map[string]bool `toml:"rules"`

	// PluginDir is the directory scanned for Lua rule scripts. Empty
	// disables script loading.
	PluginDir string `toml:"plugin_dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ScanWindow: DefaultScanWindow,
		Rules:      map[string]bool{},
	}
}

// RuleEnabled reports whether the named rule is enabled.
func (c *Config) RuleEnabled(name string) bool {
	enabled, listed := c.Rules[name]
	return !listed || enabled
}

// FileSystem abstracts file access so tests can use in-memory files.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
}

// OSFS is the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Load reads a TOML configuration file, merging it over defaults. A
// missing file returns the defaults with no error.
func Load(path string) (*Config, error) {
	return LoadFS(OSFS{}, path)
}

// LoadFS is Load against an arbitrary file system.
func LoadFS(fsys FileSystem, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]bool{}
	}
	return cfg, nil
}
