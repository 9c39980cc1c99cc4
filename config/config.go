// Package config provides configuration loading for menufs.
//
// Defaults are derived from the XDG base directory environment. An optional
// YAML file overrides them; ${VAR} references in paths are expanded after
// loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config is the master configuration for menufs.
type Config struct {
	// Desktop is the active desktop environment, a colon separated list as
	// in XDG_CURRENT_DESKTOP. Empty shows every entry.
	Desktop string `yaml:"desktop"`

	// MenuFile overrides the located applications.menu.
	MenuFile string `yaml:"menu_file"`

	// MenuPrefix is prepended to applications.menu when locating it.
	MenuPrefix string `yaml:"menu_prefix"`

	// MergePattern selects the files read from a MergeDir.
	MergePattern string `yaml:"merge_pattern"`

	Paths   PathsConfig   `yaml:"paths"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PathsConfig holds the XDG base directories.
type PathsConfig struct {
	ConfigHome string   `yaml:"config_home"`
	ConfigDirs []string `yaml:"config_dirs"`
	DataHome   string   `yaml:"data_home"`
	DataDirs   []string `yaml:"data_dirs"`
	CacheHome  string   `yaml:"cache_home"`
}

// CacheConfig configures the menu cache.
type CacheConfig struct {
	// Snapshot is the SQLite file the item tree is persisted to.
	// Empty disables snapshots.
	Snapshot string `yaml:"snapshot"`

	// Debounce is the quiet period before a file change triggers a reload.
	Debounce time.Duration `yaml:"debounce"`

	// EntryCacheSize bounds the number of parsed desktop entries kept.
	EntryCacheSize int `yaml:"entry_cache_size"`
}

type LogConfig struct {
	Level    log.LogLevel        `yaml:"level"`
	File     string              `yaml:"file"`
	JSON     bool                `yaml:"json"`
	NoColor  bool                `yaml:"no_color"`
	Rotation *log.LoggerRotation `yaml:"rotation,omitempty"`
}

type MetricsConfig struct {
	// Listen is the address of the /metrics endpoint. Empty disables it.
	Listen string `yaml:"listen"`
}

// Default returns the configuration derived from the process environment.
func Default() *Config {
	return FromEnvironment(os.Getenv)
}

// FromEnvironment derives the defaults from getenv.
func FromEnvironment(getenv func(string) string) *Config {
	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	cacheHome := envOr(getenv, "XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	return &Config{
		Desktop:      getenv("XDG_CURRENT_DESKTOP"),
		MenuPrefix:   getenv("XDG_MENU_PREFIX"),
		MergePattern: "*.menu",
		Paths: PathsConfig{
			ConfigHome: envOr(getenv, "XDG_CONFIG_HOME", filepath.Join(home, ".config")),
			ConfigDirs: envList(getenv, "XDG_CONFIG_DIRS", []string{"/etc/xdg"}),
			DataHome:   envOr(getenv, "XDG_DATA_HOME", filepath.Join(home, ".local", "share")),
			DataDirs:   envList(getenv, "XDG_DATA_DIRS", []string{"/usr/local/share", "/usr/share"}),
			CacheHome:  cacheHome,
		},
		Cache: CacheConfig{
			Snapshot:       filepath.Join(cacheHome, "menufs", "snapshot.db"),
			Debounce:       500 * time.Millisecond,
			EntryCacheSize: 512,
		},
		Log: LogConfig{
			Level: log.Info,
		},
	}
}

// LoadFile loads path on top of the defaults derived from getenv.
func LoadFile(path string, getenv func(string) string) (*Config, error) {
	cfg := FromEnvironment(getenv)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	cfg.expandVariables(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks for values that cannot work.
func (c *Config) Validate() error {
	if c.Paths.DataHome == "" {
		return fmt.Errorf("config: paths.data_home must not be empty")
	}
	if _, err := glob.Compile(c.MergePattern); err != nil || c.MergePattern == "" {
		return fmt.Errorf("config: merge_pattern '%s' is not a valid glob", c.MergePattern)
	}
	if c.Cache.Debounce < 0 {
		return fmt.Errorf("config: cache.debounce must not be negative")
	}
	if c.Cache.EntryCacheSize <= 0 {
		return fmt.Errorf("config: cache.entry_cache_size must be positive")
	}

	return nil
}

func (c *Config) expandVariables(getenv func(string) string) {
	expand := func(value string) string {
		return os.Expand(value, getenv)
	}

	c.MenuFile = expand(c.MenuFile)
	c.Paths.ConfigHome = expand(c.Paths.ConfigHome)
	c.Paths.DataHome = expand(c.Paths.DataHome)
	c.Paths.CacheHome = expand(c.Paths.CacheHome)
	for i := range c.Paths.ConfigDirs {
		c.Paths.ConfigDirs[i] = expand(c.Paths.ConfigDirs[i])
	}
	for i := range c.Paths.DataDirs {
		c.Paths.DataDirs[i] = expand(c.Paths.DataDirs[i])
	}
	c.Cache.Snapshot = expand(c.Cache.Snapshot)
	c.Log.File = expand(c.Log.File)
}

// ConfigSearchDirs returns the config roots, highest precedence first.
func (c *Config) ConfigSearchDirs() []string {
	return append([]string{c.Paths.ConfigHome}, c.Paths.ConfigDirs...)
}

// UserAppDir is the writable applications directory every mutation targets.
func (c *Config) UserAppDir() string {
	return filepath.Join(c.Paths.DataHome, "applications")
}

// AppDirs returns every applications directory, highest precedence first.
func (c *Config) AppDirs() []string {
	return c.dataSubdirs("applications")
}

// DirectoryDirs returns every desktop-directories directory, highest precedence first.
func (c *Config) DirectoryDirs() []string {
	return c.dataSubdirs("desktop-directories")
}

func (c *Config) dataSubdirs(name string) []string {
	dirs := []string{filepath.Join(c.Paths.DataHome, name)}
	for _, dir := range c.Paths.DataDirs {
		dirs = append(dirs, filepath.Join(dir, name))
	}

	return dirs
}

// LocateMenuFile returns MenuFile if set, otherwise the first
// menus/<prefix>applications.menu found in the config roots.
func (c *Config) LocateMenuFile(fs afero.Fs) (string, error) {
	if c.MenuFile != "" {
		return c.MenuFile, nil
	}

	name := c.MenuPrefix + "applications.menu"
	for _, dir := range c.ConfigSearchDirs() {
		candidate := filepath.Join(dir, "menus", name)
		if exists, _ := afero.Exists(fs, candidate); exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no '%s' in %s", data.ErrNotFound, name, strings.Join(c.ConfigSearchDirs(), ", "))
}

func envOr(getenv func(string) string, key, fallback string) string {
	if value := getenv(key); value != "" {
		return value
	}

	return fallback
}

func envList(getenv func(string) string, key string, fallback []string) []string {
	value := getenv(key)
	if value == "" {
		return fallback
	}

	var list []string
	for _, item := range filepath.SplitList(value) {
		if item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return fallback
	}

	return list
}
