package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one docs sync run.
type Config struct {
	// DocsDir is the docs output root holding the implementors directory.
	DocsDir string `yaml:"docsDir"`

	// DocsVersion labels the build the tables came from.
	DocsVersion string `yaml:"docsVersion"`

	// Sync controls persistence to DynamoDB. When disabled the run only
	// loads and indexes.
	Sync struct {
		Enabled   bool   `yaml:"enabled"`
		TableName string `yaml:"tableName"`
		Region    string `yaml:"region"`
	} `yaml:"sync"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.DocsDir == "" {
		return nil, fmt.Errorf("config: docsDir is required")
	}
	if cfg.Sync.Enabled && cfg.Sync.TableName == "" {
		return nil, fmt.Errorf("config: sync.tableName is required when sync is enabled")
	}
	return &cfg, nil
}
