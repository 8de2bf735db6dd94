package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/hostfile/src/internal/log"
)

// DefaultConfigPath is read when no -config flag is given. It may be absent.
const DefaultConfigPath = "/etc/hostfile/hostfile.toml"

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config.applyDefaults()
	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

// LoadConfigOrDefault loads configPath. A missing file yields the defaults
// unless required is set.
func LoadConfigOrDefault(configPath string, required bool) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) && !required {
		log.Debugf("Configuration file %s not found, using defaults", configPath)
		return Default(), nil
	}
	return LoadConfig(configPath)
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig writes the configuration to path, or back to the file it was loaded from when path is empty.
func (c *Config) WriteConfig(path string) error {
	if path == "" {
		path = c._absConfigFilePath
	}
	if path == "" {
		return fmt.Errorf("no destination for configuration")
	}

	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %v", err)
	}
	if err := os.WriteFile(path, config.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}
