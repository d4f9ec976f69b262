// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/logger"
	"github.com/bellflight/asyncgen/internal/prompts"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/bellflight/asyncgen/internal/templates"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/bellflight/asyncgen/internal/watch"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	format      string
	output      string
	pkg         string
	workers     int
	workersSet  bool // --workers given, so 0 forces sequential
	watch       bool
	interactive bool
}

// generateResult summarizes one generation pass.
type generateResult struct {
	output    string
	templates []string
	unit      *compile.Unit
}

func newGenerateCmd(translators translate.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate payload classes from the AsyncAPI document",
		Long: fmt.Sprintf(`Generate payload classes, the topic mapping and handler signatures
from the AsyncAPI document configured in asyncgen.yaml.

Templates (*.tmpl) in the configured templates directory are rendered
next to the output file.

Available formats: %s`, strings.Join(translators.Available(), ", ")),
		Example: `  # Generate using asyncgen.yaml settings
  asyncgen generate

  # Generate Go structs into a package
  asyncgen generate --format gotypes --output payloads/payloads.go --package payloads

  # Regenerate whenever the document or templates change
  asyncgen generate --watch`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			opts.workersSet = cmd.Flags().Changed("workers")
			if opts.interactive {
				if err := promptGenerate(cmd, sc, translators, opts); err != nil {
					return err
				}
			}

			res, err := runGenerate(cmd.Context(), sc, translators, opts)
			if err != nil {
				return err
			}
			printGenerateResult(cmd, res)

			if !opts.watch {
				return nil
			}
			return watchGenerate(cmd, sc, translators, opts, res)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s), overrides config", strings.Join(translators.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, overrides config")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package or namespace for gotypes, protobuf and avro")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Compile messages concurrently with this many workers")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Regenerate when the document or templates change")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for format and output")

	return cmd
}

func promptGenerate(cmd *cobra.Command, sc *session.Context, translators translate.Register, opts *generateOptions) error {
	askOutput := !cmd.Flags().Changed("output")
	if askOutput && opts.output == "" {
		opts.output = sc.Config.Output
	}
	return prompts.RunGenerateForm(&opts.format, &opts.output, askOutput, translators.Available())
}

// resolveOutput picks the output path. When the format is overridden but the
// output is not, the configured output keeps its name with the new extension.
func resolveOutput(sc *session.Context, opts *generateOptions, tr translate.Translator) string {
	if opts.output != "" {
		return sc.Path(opts.output)
	}
	out := sc.Config.Output
	if opts.format != "" && opts.format != sc.Config.Format {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + tr.FileExtension()
	}
	return sc.Path(out)
}

// resolveWorkers prefers the --workers flag over the configured value.
func resolveWorkers(sc *session.Context, opts *generateOptions) int {
	if opts.workersSet {
		return opts.workers
	}
	return sc.Config.Workers
}

func runGenerate(ctx context.Context, sc *session.Context, translators translate.Register, opts *generateOptions) (*generateResult, error) {
	format := opts.format
	if format == "" {
		format = sc.Config.Format
	}
	tr, err := translators.Get(format)
	if err != nil {
		return nil, err
	}

	var tmplDir string
	if sc.Config.Templates != "" {
		tmplDir = sc.Path(sc.Config.Templates)
		info, err := os.Stat(tmplDir)
		if err != nil {
			return nil, fmt.Errorf("templates directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("templates directory: %s is not a directory", tmplDir)
		}
	}

	unit, err := compile.New(
		compile.WithWorkers(resolveWorkers(sc, opts)),
		compile.WithLogger(logger.Logger),
	).Compile(ctx, sc.Spec)
	if err != nil {
		return nil, err
	}

	pkg := opts.pkg
	if pkg == "" {
		pkg = sc.Config.Package
	}
	data, err := tr.Translate(unit, translate.Options{Package: pkg})
	if err != nil {
		return nil, fmt.Errorf("translating to %s: %w", format, err)
	}

	output := resolveOutput(sc, opts, tr)
	outDir := filepath.Dir(output)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec // generated sources are world-readable
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Logger.Infow("wrote output", "path", output, "format", format)

	res := &generateResult{output: output, unit: unit}

	if tmplDir == "" {
		return res, nil
	}
	rendered, err := templates.Render(os.DirFS(tmplDir), templates.NewData(unit))
	if err != nil {
		return nil, err
	}
	if err := templates.WriteAll(outDir, rendered); err != nil {
		return nil, fmt.Errorf("failed to write templates: %w", err)
	}
	for _, r := range rendered {
		res.templates = append(res.templates, filepath.Join(outDir, r.Name))
	}
	return res, nil
}

func printGenerateResult(cmd *cobra.Command, res *generateResult) {
	fields := []prompts.ResultField{
		{Label: "Output", Value: res.output},
		{Label: "Classes", Value: strconv.Itoa(len(res.unit.Classes))},
		{Label: "Topics", Value: strconv.Itoa(len(res.unit.Topics))},
	}
	for _, t := range res.templates {
		fields = append(fields, prompts.ResultField{Label: "Template", Value: t})
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, "Generation completed")
}

func watchGenerate(cmd *cobra.Command, sc *session.Context, translators translate.Register, opts *generateOptions, first *generateResult) error {
	dirs := []string{filepath.Dir(sc.Path(sc.Config.Spec))}
	if sc.Config.Templates != "" {
		dirs = append(dirs, sc.Path(sc.Config.Templates))
	}

	// Generated files may live next to the document.
	var ignore []string
	for _, p := range append([]string{first.output}, first.templates...) {
		if abs, err := filepath.Abs(p); err == nil {
			ignore = append(ignore, abs)
		}
	}

	w := &watch.Watcher{
		Dirs:   dirs,
		Ignore: ignore,
		Log:    logger.Logger,
		OnChange: func(ctx context.Context) error {
			if err := sc.ReloadSpec(); err != nil {
				return err
			}
			res, err := runGenerate(ctx, sc, translators, opts)
			if err != nil {
				return err
			}
			printGenerateResult(cmd, res)
			return nil
		},
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes. Press Ctrl+C to stop.")
	return w.Run(cmd.Context())
}
