// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bellflight/asyncgen/internal/asyncapi"
	"github.com/bellflight/asyncgen/internal/config"
)

var (
	// ErrNotInitialized indicates no asyncgen.yaml was found in the project directory.
	ErrNotInitialized = errors.New("not in an asyncgen project (asyncgen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSpecNotFound indicates the spec file referenced by config doesn't exist.
	ErrSpecNotFound = errors.New("spec file not found")

	// ErrInvalidSpec indicates the spec file exists but couldn't be parsed.
	ErrInvalidSpec = errors.New("invalid AsyncAPI spec")
)

// ConfigFileName is the name of the asyncgen configuration file.
const ConfigFileName = "asyncgen.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the project configuration and the loaded AsyncAPI document.
type Context struct {
	// Dir is the project directory holding asyncgen.yaml.
	Dir string

	Config *config.Config

	// Spec is the loaded document with dereferenced payloads.
	Spec *asyncapi.Spec
}

// Path resolves a config-relative path against the project directory.
func (c *Context) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the session Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadDir(ctx, cwd)
}

// LoadDir is Load for an explicit project directory.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	sc, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return WithContext(ctx, sc), nil
}

// Open reads asyncgen.yaml from dir and loads the spec it references.
func Open(dir string) (*Context, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	sc := &Context{Dir: dir, Config: cfg}
	if err := sc.ReloadSpec(); err != nil {
		return nil, err
	}
	return sc, nil
}

// ReloadSpec parses the spec file again, e.g. after it changed on disk.
// Relative references resolve against the spec file's directory.
func (c *Context) ReloadSpec() error {
	specPath := c.Path(c.Config.Spec)
	if _, err := os.Stat(specPath); err != nil {
		return fmt.Errorf("%w: %v", ErrSpecNotFound, err)
	}

	spec, err := asyncapi.LoadFile(os.DirFS(filepath.Dir(specPath)), filepath.Base(specPath))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if err := spec.CheckVersion(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	c.Spec = spec
	return nil
}

// WithContext stores sc in ctx.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sc
	}
	return nil
}
