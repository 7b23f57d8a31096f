// Package config handles loading tada.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvHome overrides the data directory (default ~/.tada).
const EnvHome = "TADA_HOME"

// ProjectFileName is the per-directory config file.
const ProjectFileName = "tada.toml"

// Config represents the tada.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	UI      UI      `toml:"ui"`
	Log     Log     `toml:"log"`
}

// Storage selects where tasks and the session live.
type Storage struct {
	// Backend is "file" (default) or "sqlite".
	Backend string `toml:"backend"`

	// Path overrides the data file. Relative paths are resolved against the
	// data directory.
	Path string `toml:"path"`
}

// UI contains presentation settings.
type UI struct {
	// Theme is classic, neon or mono.
	Theme string `toml:"theme"`

	// Group lists pending and completed tasks in separate sections.
	Group bool `toml:"group"`
}

// Log configures diagnostic logging.
type Log struct {
	// File receives debug logs. Empty disables them.
	File string `toml:"file"`
}

// Load merges the global config with ./tada.toml from dir.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, projectMeta), nil
}

// LoadFile reads a single explicit config file. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg, meta, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return mergeConfigs(&Config{}, cfg, meta), nil
}

// GlobalPath is ~/.config/tada/config.toml.
func GlobalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tada", "config.toml"), nil
}

// DataDir is $TADA_HOME, or ~/.tada.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// StoragePath resolves the data file for the configured backend. defaultName
// is used when no path is configured.
func (c *Config) StoragePath(defaultName string) (string, error) {
	p := c.Storage.Path
	if p != "" && filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if p == "" {
		p = defaultName
	}
	return filepath.Join(dir, p), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = strings.ToLower(mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend))
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.UI.Theme = mergeString(projectMeta.IsDefined("ui", "theme"), projectCfg.UI.Theme, globalCfg.UI.Theme)
	merged.Log.File = mergeString(projectMeta.IsDefined("log", "file"), projectCfg.Log.File, globalCfg.Log.File)

	merged.UI.Group = globalCfg.UI.Group
	if projectMeta.IsDefined("ui", "group") {
		merged.UI.Group = projectCfg.UI.Group
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
