// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package prompts

import (
	"github.com/charmbracelet/huh"
)

// InitValues holds the answers collected by RunInitForm.
type InitValues struct {
	Spec    string
	Output  string
	Format  string
	Package string
}

// RunInitForm runs the interactive form for the init command.
// Fields already set in v are used as defaults.
func RunInitForm(v *InitValues, formats []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to AsyncAPI document").
				Placeholder("asyncapi.yml").
				Validate(requiredValidator("spec path")).
				Value(&v.Spec),
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions(formats)...).
				Value(&v.Format),
			huh.NewInput().
				Title("Output file").
				Placeholder("payloads.py").
				Validate(requiredValidator("output file")).
				Value(&v.Output),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Package name").
				Description("Used by the gotypes, protobuf and avro formats").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return IdentifierValidator(s)
				}).
				Value(&v.Package),
		).WithHideFunc(func() bool { return v.Format == "pydantic" || v.Format == "markdown" }),
	).WithTheme(Theme()).Run()
}
