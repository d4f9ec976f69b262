// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package config handles asyncgen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// EnvPrefix prefixes environment overrides, e.g. ASYNCGEN_OUTPUT or ASYNCGEN_DOCS_OUTPUT.
const EnvPrefix = "ASYNCGEN"

// Config represents the asyncgen.yaml project configuration file.
type Config struct {
	Version   int        `yaml:"version" mapstructure:"version"`
	Spec      string     `yaml:"spec" mapstructure:"spec"`
	Output    string     `yaml:"output" mapstructure:"output"`
	Format    string     `yaml:"format" mapstructure:"format"`
	Package   string     `yaml:"package,omitempty" mapstructure:"package"`
	Templates string     `yaml:"templates,omitempty" mapstructure:"templates"`
	Workers   int        `yaml:"workers,omitempty" mapstructure:"workers"`
	Docs      DocsConfig `yaml:"docs,omitempty" mapstructure:"docs"`
}

// DocsConfig configures the HTML documentation generator.
type DocsConfig struct {
	Command   string            `yaml:"command,omitempty" mapstructure:"command"`
	Output    string            `yaml:"output,omitempty" mapstructure:"output"`
	Template  string            `yaml:"template,omitempty" mapstructure:"template"`
	Pyproject string            `yaml:"pyproject,omitempty" mapstructure:"pyproject"`
	Params    map[string]string `yaml:"params,omitempty" mapstructure:"params"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Spec:    "asyncapi.yml",
		Output:  "payloads.py",
		Format:  "pydantic",
		Docs: DocsConfig{
			Command:   "npx ag",
			Output:    "docs",
			Template:  "@asyncapi/html-template",
			Pyproject: "pyproject.toml",
		},
	}
}

// SetDefaults registers every key with viper so environment overrides apply
// even when the key is absent from the file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("spec", d.Spec)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("package", d.Package)
	v.SetDefault("templates", d.Templates)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("docs.command", d.Docs.Command)
	v.SetDefault("docs.output", d.Docs.Output)
	v.SetDefault("docs.template", d.Docs.Template)
	v.SetDefault("docs.pyproject", d.Docs.Pyproject)
}

// Load reads a Config from a file path. Values may be overridden by
// ASYNCGEN_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config from %s: %w", path, err)
	}

	params, err := loadDocsParams(path)
	if err != nil {
		return nil, err
	}
	cfg.Docs.Params = params
	return &cfg, nil
}

// loadDocsParams decodes docs.params straight from the file. Viper lowercases
// map keys, and generator params such as singleFile are case sensitive.
func loadDocsParams(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw struct {
		Docs struct {
			Params map[string]string `yaml:"params"`
		} `yaml:"docs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config from %s: %w", path, err)
	}
	return raw.Docs.Params, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
// Format names are checked by the caller against the registered translators.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Spec == "" {
		return errors.New("spec is required")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Format == "" {
		return errors.New("format is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}
