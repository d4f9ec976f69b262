// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/bellflight/asyncgen/internal/logger"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbosity int
	logJSON   bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators translate.Register) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "asyncgen",
		Short: "Generate payload classes from an AsyncAPI document",
		Long: `asyncgen compiles the message payload schemas of an AsyncAPI document
into typed classes, a topic to class mapping and handler signatures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Initialize(opts.verbosity, opts.logJSON)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(newInitCmd(translators))
	rootCmd.AddCommand(newGenerateCmd(translators))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
