package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the tagdump configuration file
// ($XDG_CONFIG_HOME/tagdump/config.yaml). Pointer fields distinguish "not
// set" from zero values; explicit flags always win.
type Config struct {
	Format      string `yaml:"format"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Compression string `yaml:"compression"`
	Concurrency *int   `yaml:"concurrency"`
	Verify      *bool  `yaml:"verify_checksum"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "tagdump", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}
