package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type ModelConfig struct {
	Path string `yaml:"path,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

type Config struct {
	Model     ModelConfig `yaml:"model"`
	Stats     string      `yaml:"stats"`
	Dims      int         `yaml:"dims"`
	BatchSize int         `yaml:"batch_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     ModelConfig{URL: DefaultModelURL},
		Stats:     DefaultStatsFilename,
		Dims:      DimFinalPool,
		BatchSize: DefaultBatchSize,
	}
}

func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fid", "config.yaml"), nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Model.URL == "" {
		cfg.Model.URL = DefaultModelURL
	}
	if cfg.Stats == "" {
		cfg.Stats = DefaultStatsFilename
	}
	if cfg.Dims == 0 {
		cfg.Dims = DimFinalPool
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	return &cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
