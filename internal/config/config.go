// Package config loads the YAML run configuration: which shell to
// start, where, with what environment and geometry, and how to log.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/deep60/VoidCLI/internal/limits"
	"github.com/deep60/VoidCLI/internal/logging"
)

// Config is the top-level run configuration.
type Config struct {
	// Command is a full shell command line; it is shell-quoted and
	// split into argv. Empty means the user's login shell.
	Command string `yaml:"command,omitempty"`

	Dir string            `yaml:"dir,omitempty"`
	Env map[string]string `yaml:"env,omitempty"`

	Cols int `yaml:"cols,omitempty"`
	Rows int `yaml:"rows,omitempty"`

	// Scrollback caps the screen model's scrollback line store.
	// Zero means the built-in default; negative disables it.
	Scrollback int `yaml:"scrollback,omitempty"`

	Logging logging.Config `yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cols: 80,
		Rows: 24,
	}
}

// Load reads and validates a YAML config file, merged over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks geometry and the command line without mutating.
func (c Config) Validate() error {
	if c.Cols < 0 || c.Rows < 0 {
		return fmt.Errorf("config: negative dimensions %dx%d", c.Cols, c.Rows)
	}
	if err := limits.ValidateMax(max(c.Cols, 1), max(c.Rows, 1)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, _, err := c.CommandArgs(); err != nil {
		return err
	}
	if _, err := c.Logging.Normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// CommandArgs splits Command into an executable name and arguments.
// An empty Command yields an empty name, meaning shell autodetection.
func (c Config) CommandArgs() (name string, args []string, err error) {
	if c.Command == "" {
		return "", nil, nil
	}
	words, err := shellquote.Split(c.Command)
	if err != nil {
		return "", nil, fmt.Errorf("config: parse command %q: %w", c.Command, err)
	}
	if len(words) == 0 {
		return "", nil, nil
	}
	return words[0], words[1:], nil
}

// EnvList renders Env as sorted KEY=VALUE pairs.
func (c Config) EnvList() []string {
	if len(c.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
