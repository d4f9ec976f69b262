// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "asyncgen.yaml")

	cfg := Default()
	cfg.Spec = "mqtt/asyncapi.yml"
	cfg.Format = "gotypes"
	cfg.Package = "mqtt"
	cfg.Workers = 2
	cfg.Docs.Params = map[string]string{"favicon": "icon.png"}

	require.NoError(t, cfg.Save(cfgPath))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "unsupported version",
			mutate:  func(c *Config) { c.Version = 99 },
			wantErr: "unsupported config version",
		},
		{
			name:    "missing spec",
			mutate:  func(c *Config) { c.Spec = "" },
			wantErr: "spec is required",
		},
		{
			name:    "missing output",
			mutate:  func(c *Config) { c.Output = "" },
			wantErr: "output is required",
		},
		{
			name:    "missing format",
			mutate:  func(c *Config) { c.Format = "" },
			wantErr: "format is required",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: "workers must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveFormat(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "asyncgen.yaml")

	require.NoError(t, Default().Save(cfgPath))

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "spec: asyncapi.yml")
	assert.Contains(t, output, "format: pydantic")
	assert.Contains(t, output, "docs:\n  command: npx ag\n  output: docs\n")
	assert.NotContains(t, output, "workers:")
}

func TestConfig_Load(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "mqtt/asyncapi.yml", cfg.Spec)
	assert.Equal(t, "mqtt/payloads.py", cfg.Output)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "site", cfg.Docs.Output)
	assert.Equal(t, "https://example.com/favicon.png", cfg.Docs.Params["favicon"])

	// absent keys fall back to defaults
	assert.Equal(t, "@asyncapi/html-template", cfg.Docs.Template)
	assert.Equal(t, "pyproject.toml", cfg.Docs.Pyproject)
}

func TestConfig_Load_ParamKeysKeepCase(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"favicon":    "https://example.com/favicon.png",
		"singleFile": "true",
		"baseHref":   "/docs/",
	}, cfg.Docs.Params)
}

func TestConfig_Load_EnvOverride(t *testing.T) {
	t.Setenv("ASYNCGEN_OUTPUT", "out/models.py")
	t.Setenv("ASYNCGEN_WORKERS", "8")
	t.Setenv("ASYNCGEN_DOCS_OUTPUT", "public")

	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, "out/models.py", cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "public", cfg.Docs.Output)
}

func TestConfig_Load_NotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestConfig_Save_InvalidPath(t *testing.T) {
	err := Default().Save("/nonexistent/directory/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_EmptyUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	emptyFile := filepath.Join(tmpDir, "asyncgen.yaml")
	require.NoError(t, os.WriteFile(emptyFile, []byte(""), 0o600))

	cfg, err := Load(emptyFile)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
