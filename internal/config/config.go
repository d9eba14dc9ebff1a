package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	EnvInventoryFile = "RESTOCK_INVENTORY_FILE"
	EnvLogLevel      = "RESTOCK_LOG_LEVEL"
	EnvLogFormat     = "RESTOCK_LOG_FORMAT"

	configDirName  = ".restock"
	configFileName = "config.json"
)

// Config represents the CLI configuration
type Config struct {
	InventoryFile string `json:"inventory_file"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		InventoryFile: "inventory.txt",
		LogLevel:      "warn",
		LogFormat:     "text",
	}
}

// DefaultPath returns the path to the configuration file in the user's home directory
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	return filepath.Join(homeDir, configDirName, configFileName), nil
}

// LoadConfig loads the configuration from path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "failed to read config file")
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), errors.Wrap(err, "failed to parse config file")
	}

	return cfg, nil
}

// SaveConfig saves the configuration to path, creating its directory
func (c *Config) SaveConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// ApplyEnv overrides fields from RESTOCK_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvInventoryFile); v != "" {
		c.InventoryFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"text": true, "json": true}

// Set updates a single field by its JSON key
func (c *Config) Set(key, value string) error {
	switch key {
	case "inventory_file":
		if value == "" {
			return errors.New("inventory_file cannot be empty")
		}
		c.InventoryFile = value
	case "log_level":
		if !validLogLevels[value] {
			return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", value)
		}
		c.LogLevel = value
	case "log_format":
		if !validLogFormats[value] {
			return fmt.Errorf("invalid log_format %q: must be one of text, json", value)
		}
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown config key %q: must be one of %v", key, Keys())
	}
	return nil
}

// Keys returns the settable config keys
func Keys() []string {
	keys := []string{"inventory_file", "log_level", "log_format"}
	sort.Strings(keys)
	return keys
}
