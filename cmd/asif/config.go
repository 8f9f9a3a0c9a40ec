package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	configDirName  = "asif"
	configFileName = "config.yaml"
)

// cliConfig is the on-disk CLI configuration.
type cliConfig struct {
	// Parallel enables concurrent channel processing. Nil means unset.
	Parallel *bool `yaml:"parallel,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`

	// CapacityHint is the initial per-channel buffer size in samples.
	CapacityHint int `yaml:"capacity_hint,omitempty"`

	// Raw describes headerless interleaved u8 input and output.
	Raw rawFormat `yaml:"raw,omitempty"`

	path string
}

// rawFormat describes headerless PCM, which carries no format of its own.
type rawFormat struct {
	SampleRate int `yaml:"sample_rate,omitempty"`
	Channels   int `yaml:"channels,omitempty"`
}

// defaultConfigPath returns the default config location, or "" when the user
// config directory cannot be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFileName)
}

// loadConfig reads the config at path. An empty path selects the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (*cliConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return &cliConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cliConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &cliConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

func (c *cliConfig) validate() error {
	if c.CapacityHint < 0 {
		return fmt.Errorf("capacity_hint must not be negative")
	}
	if c.Raw.SampleRate < 0 {
		return fmt.Errorf("raw.sample_rate must not be negative")
	}
	if c.Raw.Channels < 0 {
		return fmt.Errorf("raw.channels must not be negative")
	}
	return nil
}

func (c *cliConfig) parallel() bool {
	return c.Parallel != nil && *c.Parallel
}
