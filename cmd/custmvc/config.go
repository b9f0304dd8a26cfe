package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFilename = "custmvc.yaml"
	defaultPort    = 5000
)

// Config holds the defaults for all commands.
// Loaded from custmvc.yaml if present; flags override it.
type Config struct {
	// DataDir is where BadgerDB stores data. Empty means in-memory.
	DataDir string `yaml:"dataDir"`

	// Port is the HTTP port of the web server.
	Port int `yaml:"port"`

	// Table is the customers table name.
	Table string `yaml:"table"`

	AWS AWSConfig `yaml:"aws"`
}

// AWSConfig selects and configures the DynamoDB service backend.
type AWSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// LoadConfig searches for custmvc.yaml starting from the current directory
// and walking up to the filesystem root. Returns the default config if not
// found.
func LoadConfig() (Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFrom(dir)
}

func defaultConfig() Config {
	return Config{Port: defaultPort}
}

func loadConfigFrom(dir string) (Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(dir)
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	// Relative data directories are relative to the config file.
	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(configPath), cfg.DataDir)
	}
	return cfg, nil
}

// findConfigFile searches for custmvc.yaml walking up from dir.
func findConfigFile(dir string) string {
	for {
		path := filepath.Join(dir, configFilename)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}
