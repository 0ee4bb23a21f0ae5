// Package config loads and persists the chainwire service configuration.
package config

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the chainwire configuration.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Bind    string  `yaml:"bind"`
	Port    int     `yaml:"port"`
	Wire    Wire    `yaml:"wire"`
	Journal Journal `yaml:"journal"`
	Logging Logging `yaml:"logging"`
}

// Wire selects codec-level settings shared by every component.
type Wire struct {
	// ByteOrder is "little" or "big" and must match between the encode
	// and decode sides of any buffer.
	ByteOrder string `yaml:"byte_order"`
}

// Journal contains journal durability settings.
type Journal struct {
	FsyncInterval time.Duration `yaml:"fsync_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Bind:    "127.0.0.1",
		Port:    8080,
		Wire: Wire{
			ByteOrder: "little",
		},
		Journal: Journal{
			FsyncInterval: time.Second,
			BufferSize:    64 << 10,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Order resolves the configured byte order.
func (w Wire) Order() (binary.ByteOrder, error) {
	switch w.ByteOrder {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want \"little\" or \"big\")", w.ByteOrder)
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if _, err := config.Wire.Order(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./chainwire.yaml"
	}
	return filepath.Join(homeDir, ".config", "chainwire", "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
