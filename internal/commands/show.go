// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"fmt"
	"io"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/logger"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/bellflight/asyncgen/internal/translate/markdown"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type showOptions struct {
	width int
	raw   bool
}

func newShowCmd() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Preview the generated classes in the terminal",
		Long: `Compile the AsyncAPI document and render the classes, topics and
handler signatures as a markdown summary.`,
		Example: `  # Styled preview
  asyncgen show

  # Plain markdown
  asyncgen show --raw > PAYLOADS.md`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd, sc, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 80, "Word wrap width")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print markdown without styling")

	return cmd
}

func runShow(cmd *cobra.Command, sc *session.Context, opts *showOptions) error {
	unit, err := compile.New(
		compile.WithWorkers(sc.Config.Workers),
		compile.WithLogger(logger.Logger),
	).Compile(cmd.Context(), sc.Spec)
	if err != nil {
		return err
	}

	md, err := (&markdown.Translator{}).Translate(unit, translate.Options{})
	if err != nil {
		return err
	}
	return renderMarkdown(cmd.OutOrStdout(), md, opts)
}

func renderMarkdown(w io.Writer, md []byte, opts *showOptions) error {
	if opts.raw {
		_, err := w.Write(md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.width),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := renderer.Render(string(md))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
