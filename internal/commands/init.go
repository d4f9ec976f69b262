// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bellflight/asyncgen/internal/config"
	"github.com/bellflight/asyncgen/internal/logger"
	"github.com/bellflight/asyncgen/internal/prompts"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/spf13/cobra"
)

type initOptions struct {
	spec           string
	output         string
	format         string
	pkg            string
	templates      string
	nonInteractive bool
}

func newInitCmd(translators translate.Register) *cobra.Command {
	d := config.Default()
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new asyncgen project",
		Long: `Initialize a new asyncgen project with an asyncgen.yaml configuration file
pointing at an existing AsyncAPI document.`,
		Example: `  # Interactive mode
  asyncgen init

  # Non-interactive
  asyncgen init --spec mqtt/asyncapi.yml --output mqtt/payloads.py --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(cmd.OutOrStdout(), cwd, translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.spec, "spec", "s", d.Spec, "Path to the AsyncAPI document")
	cmd.Flags().StringVarP(&opts.output, "output", "o", d.Output, "Output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", d.Format, "Output format")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package or namespace for gotypes, protobuf and avro")
	cmd.Flags().StringVarP(&opts.templates, "templates", "t", "", "Directory of *.tmpl files rendered next to the output")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(w io.Writer, dir string, translators translate.Register, opts *initOptions) error {
	configPath := filepath.Join(dir, session.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.New("asyncgen.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		values := prompts.InitValues{
			Spec:    opts.spec,
			Output:  opts.output,
			Format:  opts.format,
			Package: opts.pkg,
		}
		if err := prompts.RunInitForm(&values, translators.Available()); err != nil {
			return err
		}
		opts.spec, opts.output, opts.format, opts.pkg = values.Spec, values.Output, values.Format, values.Package
	}

	if _, err := translators.Get(opts.format); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Spec = opts.spec
	cfg.Output = opts.output
	cfg.Format = opts.format
	cfg.Package = opts.pkg
	cfg.Templates = opts.templates

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	specPath := cfg.Spec
	if !filepath.IsAbs(specPath) {
		specPath = filepath.Join(dir, specPath)
	}
	if _, err := os.Stat(specPath); err != nil {
		logger.Logger.Warnw("AsyncAPI document not found yet", "path", specPath)
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(w, []prompts.ResultField{
		{Label: "Spec", Value: cfg.Spec},
		{Label: "Format", Value: cfg.Format},
		{Label: "Output", Value: cfg.Output},
	}, "Initialization completed")
	return nil
}
