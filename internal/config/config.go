package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const appName = "shoal"

type Config struct {
	IndexPath      string   `koanf:"index_path"`      // media index database
	StatePath      string   `koanf:"state_path"`      // excluded paths and playback state
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music library
	Language       string   `koanf:"language"`        // BCP 47 tag for fallback names
	LogLevel       string   `koanf:"log_level"`       // zerolog level name (default: "info")

	Scanner ScannerConfig `koanf:"scanner"`
	Watch   WatchConfig   `koanf:"watch"`
	Art     ArtConfig     `koanf:"art"`
}

// ScannerConfig holds media index refresh settings.
type ScannerConfig struct {
	Workers int `koanf:"workers"` // parallel tag readers (1-64, default: 8)
}

// WatchConfig holds filesystem watch settings.
type WatchConfig struct {
	Debounce string `koanf:"debounce"` // quiet window before a rescan (default: "2s")
}

// ArtConfig holds cover art settings.
type ArtConfig struct {
	URIBase string `koanf:"uri_base"` // album id is appended (default: content://media/external/audio/albumart)
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier ones.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.IndexPath = expandPath(cfg.IndexPath)
	cfg.StatePath = expandPath(cfg.StatePath)

	// Expand ~ in library_sources
	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/shoal/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetIndexPath returns the media index path, defaulting to the XDG data dir.
func (c *Config) GetIndexPath() (string, error) {
	if c.IndexPath != "" {
		return c.IndexPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, "index.db"))
}

// GetLogLevel returns the configured log level, info when unset or invalid.
func (c *Config) GetLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// GetLanguage returns the configured language, "en" when unset.
func (c *Config) GetLanguage() string {
	if c.Language == "" {
		return "en"
	}
	return c.Language
}

// GetScannerConfig returns the scanner configuration with defaults applied.
func (c *Config) GetScannerConfig() ScannerConfig {
	cfg := c.Scanner
	if cfg.Workers <= 0 || cfg.Workers > 64 {
		cfg.Workers = 8
	}
	return cfg
}

// GetDebounce returns the watch debounce window, 2s when unset or invalid.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// GetArtURIBase returns the cover art locator prefix.
func (c *Config) GetArtURIBase() string {
	if c.Art.URIBase == "" {
		return "content://media/external/audio/albumart"
	}
	return c.Art.URIBase
}
