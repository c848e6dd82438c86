package editor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the editor configuration store. Keys are dotted paths such as
// "highlight.options" and are case-insensitive.
type Config struct {
	v *viper.Viper
}

// NewConfig creates an empty configuration store.
func NewConfig() *Config {
	return &Config{v: viper.New()}
}

// NewConfigFromMap creates a store seeded with nested values.
func NewConfigFromMap(values map[string]any) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.Merge(values); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig loads configuration in the given format (json, yaml, toml).
func (c *Config) ReadConfig(r io.Reader, format string) error {
	c.v.SetConfigType(format)
	if err := c.v.MergeConfig(r); err != nil {
		return fmt.Errorf("failed to read %s config: %w", format, err)
	}
	return nil
}

// ReadConfigFile loads configuration from a file; the format follows the
// file extension.
func (c *Config) ReadConfigFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "yaml"
	}
	return c.ReadConfig(f, format)
}

// Merge merges nested values into the store.
func (c *Config) Merge(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	if err := c.v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// Set overrides a single key.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// IsSet reports whether key has a value.
func (c *Config) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// Get returns the raw value stored at key.
func (c *Config) Get(key string) any {
	return c.v.Get(key)
}

// GetString returns the value at key as a string.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// UnmarshalKey decodes the value at key into out using mapstructure tags.
func (c *Config) UnmarshalKey(key string, out any) error {
	if err := c.v.UnmarshalKey(key, out); err != nil {
		return fmt.Errorf("failed to decode config key %q: %w", key, err)
	}
	return nil
}

// UnmarshalKeyStrict is UnmarshalKey failing on fields out does not declare.
func (c *Config) UnmarshalKeyStrict(key string, out any) error {
	err := c.v.UnmarshalKey(key, out, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	})
	if err != nil {
		return fmt.Errorf("failed to decode config key %q: %w", key, err)
	}
	return nil
}
