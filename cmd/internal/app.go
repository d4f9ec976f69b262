// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/bellflight/asyncgen/internal/commands"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/bellflight/asyncgen/internal/translate/avro"
	"github.com/bellflight/asyncgen/internal/translate/gotypes"
	"github.com/bellflight/asyncgen/internal/translate/markdown"
	"github.com/bellflight/asyncgen/internal/translate/protobuf"
	"github.com/bellflight/asyncgen/internal/translate/pydantic"
)

// Translators returns every output format the CLI supports.
func Translators() translate.Register {
	translators := make(translate.Register)
	translators["pydantic"] = &pydantic.Translator{}
	translators["gotypes"] = &gotypes.Translator{}
	translators["markdown"] = &markdown.Translator{}
	translators["protobuf"] = &protobuf.Translator{}
	translators["avro"] = &avro.Translator{}
	return translators
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(Translators())
	return rootCmd.ExecuteContext(ctx)
}
