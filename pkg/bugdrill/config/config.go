// Package config loads dashboard and engine settings from a YAML file.
// Missing files and missing fields fall back to defaults; only malformed
// YAML or invalid values are errors.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// Addr is the dashboard listen address.
	Addr string `yaml:"addr"`
	// CheckDelay is the artificial latency applied to every check.
	CheckDelay time.Duration `yaml:"check_delay"`
	// MaxClients caps concurrent websocket connections.
	MaxClients int `yaml:"max_clients"`
	// ExerciseDir holds extra exercise YAML files, loaded on top of the
	// builtin catalog. Empty means builtin only.
	ExerciseDir string `yaml:"exercise_dir"`
}

// UnmarshalYAML fills only the fields present in the document, leaving the
// rest at their prior values, and accepts Go duration strings ("600ms",
// "2s") for check_delay.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Addr        string `yaml:"addr"`
		CheckDelay  string `yaml:"check_delay"`
		MaxClients  *int   `yaml:"max_clients"`
		ExerciseDir string `yaml:"exercise_dir"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Addr != "" {
		c.Addr = raw.Addr
	}
	if raw.CheckDelay != "" {
		d, err := time.ParseDuration(raw.CheckDelay)
		if err != nil {
			return fmt.Errorf("check_delay: %w", err)
		}
		c.CheckDelay = d
	}
	if raw.MaxClients != nil {
		c.MaxClients = *raw.MaxClients
	}
	if raw.ExerciseDir != "" {
		c.ExerciseDir = raw.ExerciseDir
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:       ":9090",
		CheckDelay: 600 * time.Millisecond,
		MaxClients: 100,
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr must not be empty")
	}
	if c.CheckDelay < 0 {
		return fmt.Errorf("config: check_delay must not be negative")
	}
	if c.MaxClients <= 0 {
		return fmt.Errorf("config: max_clients must be positive")
	}
	return nil
}
