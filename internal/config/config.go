// pattern: Imperative Shell

// Package config loads the tool configuration from
// $XDG_CONFIG_HOME/gitdepend/config.yaml.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in a config directory.
const FileName = "config.yaml"

type Config struct {
	Theme          string               `yaml:"theme"`
	LogLevel       string               `yaml:"log_level"`
	Git            GitConfig            `yaml:"git"`
	Build          BuildConfig          `yaml:"build"`
	PackageManager PackageManagerConfig `yaml:"package_manager"`
}

type GitConfig struct {
	// Backend is "exec" to run the git binary or "native" to use the
	// built-in implementation. Empty picks exec when git is installed.
	Backend string `yaml:"backend"`
	Binary  string `yaml:"binary"`
}

type BuildConfig struct {
	// Shell is the command prefix for build scripts, e.g. ["bash", "-e"].
	Shell []string `yaml:"shell"`
}

type PackageManagerConfig struct {
	Command string `yaml:"command"`
	// UpdateArgs may reference {id}, {version}, {source} and {dir}.
	UpdateArgs []string `yaml:"update_args"`
}

// LookPathFunc is the function signature for looking up executables.
type LookPathFunc func(name string) (string, error)

func DefaultConfig() Config {
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
		Git: GitConfig{
			Binary: "git",
		},
		PackageManager: PackageManagerConfig{
			Command: "nuget",
		},
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir loads config.yaml from dir. An empty dir uses the default
// location.
func LoadFromDir(dir string) (Config, error) {
	if dir == "" {
		return Load()
	}
	return LoadFrom(filepath.Join(dir, FileName))
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Git.Binary == "" {
		cfg.Git.Binary = "git"
	}
	if cfg.PackageManager.Command == "" {
		cfg.PackageManager.Command = "nuget"
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got: %s", c.LogLevel)
	}
	return c.ValidateGitWith(exec.LookPath)
}

// ValidateGitWith checks the configured git backend, looking up the binary
// with lookPath when the exec backend is requested explicitly.
func (c *Config) ValidateGitWith(lookPath LookPathFunc) error {
	switch c.Git.Backend {
	case "", "native":
		return nil
	case "exec":
		if _, err := lookPath(c.Git.Binary); err != nil {
			return fmt.Errorf("git binary '%s' not found in PATH", c.Git.Binary)
		}
		return nil
	default:
		return fmt.Errorf("git backend must be 'exec' or 'native', got: %s", c.Git.Backend)
	}
}

// DetectedGitBackend returns the configured backend or picks one.
func (c *Config) DetectedGitBackend() string {
	return c.DetectedGitBackendWith(exec.LookPath)
}

// DetectedGitBackendWith returns the configured backend, or "exec" when the
// git binary can be found with lookPath and "native" otherwise.
func (c *Config) DetectedGitBackendWith(lookPath LookPathFunc) string {
	if c.Git.Backend != "" {
		return c.Git.Backend
	}
	if _, err := lookPath(c.Git.Binary); err == nil {
		return "exec"
	}
	return "native"
}

// ConfigPath returns the default configuration file location.
func ConfigPath() string {
	return getConfigPath()
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gitdepend", FileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitdepend", FileName)
	}

	return filepath.Join(home, ".config", "gitdepend", FileName)
}
