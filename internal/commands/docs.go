// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"context"
	"errors"
	"io/fs"

	"github.com/bellflight/asyncgen/internal/docgen"
	"github.com/bellflight/asyncgen/internal/logger"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/spf13/cobra"
)

type docsOptions struct {
	version string
	output  string
}

func newDocsCmd() *cobra.Command {
	opts := &docsOptions{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Build HTML documentation for the AsyncAPI document",
		Long: `Run the AsyncAPI HTML generator on the configured document.

The version parameter comes from --version, then pyproject.toml
(tool.poetry.version or project.version), then the document's info.version.`,
		Example: `  # Build docs into the configured directory
  asyncgen docs

  # Override version and output
  asyncgen docs --version 1.4.0 --output site`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			runner := &docgen.Runner{
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				Log:    logger.Logger,
			}
			return runDocs(cmd.Context(), runner, sc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "Version passed to the template, overrides pyproject.toml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory, overrides config")

	return cmd
}

func runDocs(ctx context.Context, runner *docgen.Runner, sc *session.Context, opts *docsOptions) error {
	version, err := docsVersion(sc, opts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = sc.Config.Docs.Output
	}

	return runner.Run(ctx, docgen.Options{
		Command:  sc.Config.Docs.Command,
		Spec:     sc.Path(sc.Config.Spec),
		Template: sc.Config.Docs.Template,
		Output:   sc.Path(output),
		Version:  version,
		Params:   sc.Config.Docs.Params,
	})
}

func docsVersion(sc *session.Context, opts *docsOptions) (string, error) {
	if opts.version != "" {
		return opts.version, nil
	}
	if sc.Config.Docs.Pyproject != "" {
		v, err := docgen.ProjectVersionFile(sc.Path(sc.Config.Docs.Pyproject))
		switch {
		case err == nil:
			return v, nil
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, docgen.ErrNoVersion):
			logger.Logger.Debugw("no pyproject version, using document version", "error", err)
		default:
			return "", err
		}
	}
	return sc.Spec.Info.Version, nil
}
