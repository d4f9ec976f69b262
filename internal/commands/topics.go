// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"fmt"
	"io"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/prompts"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type topicsOptions struct {
	json bool
}

func newTopicsCmd() *cobra.Command {
	opts := &topicsOptions{}

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List topics and their payload classes",
		Long: `List every channel of the AsyncAPI document with the payload class
bound to it and the handler signature generated for that class.`,
		Example: `  # List topics
  asyncgen topics

  # As JSON, topic to class
  asyncgen topics --json`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runTopics(cmd.OutOrStdout(), sc, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the topic to class mapping as JSON")

	return cmd
}

func runTopics(w io.Writer, sc *session.Context, opts *topicsOptions) error {
	topics, err := compile.BindTopics(sc.Spec.Channels)
	if err != nil {
		return err
	}

	if opts.json {
		data, err := json.MarshalIndent(topics, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(topics) == 0 {
		_, err := fmt.Fprintln(w, "No topics defined.")
		return err
	}

	_, err = fmt.Fprintln(w, prompts.TopicsTable(prompts.TopicRows(topics, compile.CallbackName)))
	return err
}
