package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/params"
	"gopkg.in/yaml.v3"
)

// GroupConfig holds the public key agreement parameters
type GroupConfig struct {
	Generator int `yaml:"generator"`
	Modulus   int `yaml:"modulus"`
}

// Config is the on-disk configuration shared by the command line tools
type Config struct {
	Group    GroupConfig `yaml:"group"`
	Compress bool        `yaml:"compress"`
	LogLevel string      `yaml:"log_level"`

	// Sweep parallelism for the decoder's key sweep
	SweepWorkers int `yaml:"sweep_workers"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Group: GroupConfig{
			Generator: params.GENERATOR,
			Modulus:   params.MODULUS,
		},
		Compress:     false,
		LogLevel:     "info",
		SweepWorkers: 4,
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a file may have set
func (c *Config) Validate() error {
	if _, err := c.KeyGroup(); err != nil {
		return err
	}
	if c.SweepWorkers < 1 {
		return errors.New("sweep_workers must be at least 1")
	}
	return nil
}

// KeyGroup builds the key agreement group described by the config
func (c *Config) KeyGroup() (keyx.Group, error) {
	g, err := keyx.NewGroup(c.Group.Generator, c.Group.Modulus)
	if err != nil {
		return keyx.Group{}, fmt.Errorf("group: %w", err)
	}
	return g, nil
}
