package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration. The file doubles as the user's
// control surface: edits are picked up live by the settings watcher.
type Config struct {
	Version   int             `toml:"version"`
	Features  FeaturesConfig  `toml:"features"`
	Interests InterestsConfig `toml:"interests"`
	Scan      ScanConfig      `toml:"scan"`
	Debug     DebugConfig     `toml:"debug"`
}

// FeaturesConfig toggles the three annotation features independently.
type FeaturesConfig struct {
	Scoring     bool `toml:"scoring"`
	NicheFilter bool `toml:"niche_filter"`
	QuickStats  bool `toml:"quick_stats"`
}

type InterestsConfig struct {
	// Keywords are matched as lowercase substrings against post text.
	// The editing surface owns dedup and the 20-entry cap.
	Keywords []string `toml:"keywords"`
}

type ScanConfig struct {
	DebounceMs int `toml:"debounce_ms"`
	// RefreshIntervalHours forces a full reprocess of the visible feed on a
	// schedule. 0 disables it; stale badges then persist until a settings
	// change forces reprocessing.
	RefreshIntervalHours int  `toml:"refresh_interval_hours"`
	Headless             bool `toml:"headless"`
}

type DebugConfig struct {
	// CachePosts writes each pass's scored posts to a JSON file in the
	// cache dir.
	CachePosts bool `toml:"cache_posts"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Features: FeaturesConfig{
			Scoring:     true,
			NicheFilter: true,
			QuickStats:  true,
		},
		Interests: InterestsConfig{
			Keywords: []string{},
		},
		Scan: ScanConfig{
			DebounceMs:           300,
			RefreshIntervalHours: 0,
			Headless:             false,
		},
		Debug: DebugConfig{
			CachePosts: false,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "x-growth"), nil
}

// CacheDir returns the platform-appropriate cache directory
func CacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "x-growth"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataPath returns the full path to the sqlite database
func DataPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xgrowth.db"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
