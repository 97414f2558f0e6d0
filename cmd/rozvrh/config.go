package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Core   CoreConfig   `toml:"core"`
	Filter FilterConfig `toml:"filter"`
}

type CoreConfig struct {
	BaseURL     string `toml:"base_url"`
	Concurrency int    `toml:"concurrency"`
	Output      string `toml:"output"` // "auto", "table" or "json"
	LogLevel    string `toml:"log_level"`
}

type FilterConfig struct {
	Electives bool `toml:"electives"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			BaseURL:     "https://rozvrhy.fei.stuba.sk/",
			Concurrency: 3,
			Output:      "auto",
			LogLevel:    "info",
		},
		Filter: FilterConfig{
			Electives: false,
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}
