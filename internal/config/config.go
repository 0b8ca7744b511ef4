package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/docedit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger     logger.Config    `toml:"logger"`
	Editor     EditorConfig     `toml:"editor"`
	Spellcheck SpellcheckConfig `toml:"spellcheck"`
	// Plugins holds one table per plugin, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`

	// Source is the file the configuration was read from, if any.
	Source string `toml:"-"`
	// UnknownKeys lists keys in the file that matched no setting.
	UnknownKeys []string `toml:"-"`
}

// EditorConfig holds document editing settings.
type EditorConfig struct {
	HistoryLimit int    `toml:"history_limit"` // 0 keeps every step
	DefaultKind  string `toml:"default_kind"`  // "text" or "xml"
}

// SpellcheckConfig holds spell checker settings.
type SpellcheckConfig struct {
	Dictionary    string `toml:"dictionary"`
	MinWordLength int    `toml:"min_word_length"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			HistoryLimit: DefaultHistoryLimit,
			DefaultKind:  DefaultKind,
		},
		Spellcheck: SpellcheckConfig{
			MinWordLength: DefaultMinWordLength,
		},
	}
}

// ConfigDir returns the configuration directory: $DOCEDIT_CONFIG_HOME, or
// docedit under the user config directory ($XDG_CONFIG_HOME on Linux).
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigHomeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, ConfigDirName), nil
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	cfg.Source = filePath
	for _, key := range metadata.Undecoded() {
		cfg.UnknownKeys = append(cfg.UnknownKeys, key.String())
	}
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.HistoryLimit < 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Editor.DefaultKind != "text" && c.Editor.DefaultKind != "xml" {
		c.Editor.DefaultKind = defaults.Editor.DefaultKind
	}
	if c.Spellcheck.MinWordLength < 1 {
		c.Spellcheck.MinWordLength = defaults.Spellcheck.MinWordLength
	}
}

// LoadConfig layers defaults, the config file and flag overrides, then validates.
// An empty configFilePath means config.toml in ConfigDir. flags may be nil.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir, err := ConfigDir(); err == nil {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var loadErr error
	if effectivePath != "" {
		loadErr = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}
