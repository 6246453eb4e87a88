// Package config provides configuration file support for echeck.
package config

import (
	"os"
	"path/filepath"

	humane "github.com/sierrasoftworks/humane-errors-go"
	"gopkg.in/yaml.v3"

	"github.com/spechtlabs/echeck/expand"
	"github.com/spechtlabs/echeck/profile"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = ".echeck.yaml"

// Config represents the echeck configuration.
type Config struct {
	// Linter overrides the linter executable. Relative paths resolve
	// against the directory holding the config file.
	Linter string `yaml:"linter"`

	// ConfigPackage is the package the profile files are loaded from.
	ConfigPackage string `yaml:"configPackage"`

	// Ignore lists extra globs excluded from expansion.
	Ignore []string `yaml:"ignore"`

	// DefaultIgnore set to false drops the built-in ignore globs.
	DefaultIgnore *bool `yaml:"defaultIgnore"`

	// Dot lets wildcards match dot-files and dot-directories.
	Dot bool `yaml:"dot"`

	// path is the file the configuration was read from, empty for defaults.
	path string
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{ConfigPackage: profile.DefaultPackage}
}

// Load attempts to load configuration from .echeck.yaml in dir or any
// parent directory up to the filesystem root.
func Load(dir string) (*Config, error) {
	path, err := findConfigFile(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}

	return LoadFrom(path)
}

// LoadFrom loads configuration from the specified path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, humane.Wrap(err, "failed to read "+path,
			"check the file permissions of your "+ConfigFileName,
		)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, humane.Wrap(err, "failed to parse "+path,
			"check the YAML syntax of your "+ConfigFileName,
		)
	}

	if cfg.ConfigPackage == "" {
		cfg.ConfigPackage = profile.DefaultPackage
	}
	if cfg.Linter != "" && !filepath.IsAbs(cfg.Linter) {
		cfg.Linter = filepath.Join(filepath.Dir(path), cfg.Linter)
	}
	cfg.path = path

	return cfg, nil
}

// findConfigFile searches for .echeck.yaml starting from dir and walking up
// to parent directories.
func findConfigFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", humane.Wrap(err, "failed to resolve the working directory",
			"check that the working directory still exists",
		)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Path returns the file the configuration was loaded from, or "" for
// defaults.
func (c *Config) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// UseDefaultIgnore reports whether the built-in ignore globs apply.
func (c *Config) UseDefaultIgnore() bool {
	if c == nil || c.DefaultIgnore == nil {
		return true
	}
	return *c.DefaultIgnore
}

// ExpandOptions returns the expansion options the configuration implies,
// followed by the extra ignore globs given on the command line.
func (c *Config) ExpandOptions(extraIgnore ...string) []expand.Option {
	opts := []expand.Option{
		expand.WithDefaultIgnore(c.UseDefaultIgnore()),
	}
	if c != nil {
		opts = append(opts, expand.WithIgnore(c.Ignore...), expand.WithDot(c.Dot))
	}
	return append(opts, expand.WithIgnore(extraIgnore...))
}
