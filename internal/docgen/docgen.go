// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package docgen drives the external AsyncAPI HTML documentation generator.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/kballard/go-shellquote"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// SkipChromiumEnv stops puppeteer from downloading a browser during install.
const SkipChromiumEnv = "PUPPETEER_SKIP_CHROMIUM_DOWNLOAD=true"

// ErrNoVersion is returned when a pyproject file declares no version.
var ErrNoVersion = errors.New("no version in pyproject")

// Options describes one generator invocation.
type Options struct {
	Command  string            // generator command line, e.g. "npx ag"
	Spec     string            // AsyncAPI document
	Template string            // generator template package
	Output   string            // output directory
	Version  string            // passed as --param version=...
	Params   map[string]string // extra --param key=value pairs
}

// Args builds the full argument vector. Params are emitted in key order
// after the version.
func Args(opts Options) ([]string, error) {
	base, err := shellquote.Split(opts.Command)
	if err != nil {
		return nil, fmt.Errorf("parsing docs command %q: %w", opts.Command, err)
	}
	if len(base) == 0 {
		return nil, errors.New("docs command is empty")
	}

	args := append(base,
		opts.Spec,
		opts.Template,
		"--output", opts.Output,
		"--force-write",
	)
	if opts.Version != "" {
		args = append(args, "--param", "version="+opts.Version)
	}

	keys := make([]string, 0, len(opts.Params))
	for k := range opts.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--param", k+"="+opts.Params[k])
	}
	return args, nil
}

type pyproject struct {
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
}

// ProjectVersion reads the package version from pyproject.toml data,
// preferring tool.poetry.version over project.version.
func ProjectVersion(data []byte) (string, error) {
	var p pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return "", err
	}
	if v := p.Tool.Poetry.Version; v != "" {
		return v, nil
	}
	if v := p.Project.Version; v != "" {
		return v, nil
	}
	return "", ErrNoVersion
}

// ProjectVersionFile reads ProjectVersion from a file.
func ProjectVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by config
	if err != nil {
		return "", err
	}
	v, err := ProjectVersion(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Runner executes the generator.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *zap.SugaredLogger

	// LookPath resolves the generator executable; exec.LookPath when nil.
	LookPath func(string) (string, error)
}

// Run resolves the executable, echoes the quoted command line to Stdout
// and runs it.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	args, err := Args(opts)
	if err != nil {
		return err
	}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(args[0])
	if err != nil {
		return fmt.Errorf("docs generator %q not found: %w", args[0], err)
	}
	args[0] = bin

	log := r.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log.Infow("building docs", "output", opts.Output, "template", opts.Template)

	stdout := r.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	fmt.Fprintln(stdout, shellquote.Join(args...)) //nolint:errcheck

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // command comes from project config
	cmd.Env = append(os.Environ(), SkipChromiumEnv)
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docs generator failed: %w", err)
	}
	return nil
}
