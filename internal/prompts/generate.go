// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package prompts

import "github.com/charmbracelet/huh"

// RunGenerateForm prompts for the output format and, when askOutput is set,
// the output file. Empty values are the only ones asked for.
func RunGenerateForm(format, output *string, askOutput bool, formats []string) error {
	var fields []huh.Field
	if *format == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Output format").
			Options(formatOptions(formats)...).
			Value(format))
	}
	if askOutput {
		fields = append(fields, huh.NewInput().
			Title("Output file").
			Validate(requiredValidator("output file")).
			Value(output))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}
