package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for incident-atlas.
type Config struct {
	Data     DataConfig     `toml:"data"`
	Server   ServerConfig   `toml:"server"`
	Advisory AdvisoryConfig `toml:"advisory"`
}

type DataConfig struct {
	CSV       string `toml:"csv"`
	ModelsDir string `toml:"models_dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type AdvisoryConfig struct {
	Model             string  `toml:"model"`
	MaxTokens         int     `toml:"max_tokens"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{CSV: "gt.csv", ModelsDir: "models"},
		Server: ServerConfig{Host: "localhost", Port: 8000},
		Advisory: AdvisoryConfig{
			Model:             "claude-sonnet-4-20250514",
			MaxTokens:         1024,
			TimeoutSeconds:    15,
			RequestsPerMinute: 30,
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
