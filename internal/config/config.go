package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liek944/Bgone/pkg/geometry"
	"github.com/liek944/Bgone/pkg/presets"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `json:"server"`
	Output OutputConfig `json:"output"`
	Resize ResizeConfig `json:"resize"`
}

// ServerConfig holds the background-removal backend settings
type ServerConfig struct {
	URL string `json:"url"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Dir       string `json:"dir"`
	Suffix    string `json:"suffix"`
	Overwrite bool   `json:"overwrite"`
}

// ResizeConfig holds defaults for resize batches
type ResizeConfig struct {
	Preset     string `json:"preset"`
	Mode       string `json:"mode"`
	Prefix     string `json:"prefix"`
	Background string `json:"background"` // #RRGGBB or #RRGGBBAA
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:7000",
		},
		Output: OutputConfig{
			Dir:       "output",
			Suffix:    "_transparent",
			Overwrite: false,
		},
		Resize: ResizeConfig{
			Preset:     "Etsy",
			Mode:       string(geometry.Fit),
			Prefix:     "image",
			Background: "#FFFFFF00",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url cannot be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}

	if _, err := geometry.ParseMode(c.Resize.Mode); err != nil {
		return fmt.Errorf("resize.mode: %w", err)
	}

	if _, ok := presets.Lookup(c.Resize.Preset); !ok {
		return fmt.Errorf("resize.preset: unknown preset %q", c.Resize.Preset)
	}

	return nil
}

// Path returns the default configuration file path
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "bgone", "config.json")
}
