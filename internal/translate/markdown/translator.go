// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package markdown renders compiled units as markdown documentation.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

//go:embed markdown.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"formatConstraints": formatConstraints,
	"anchor":            anchor,
}

var tmpl = template.Must(template.New("markdown.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.go.tmpl"))

// Translator translates compiled units to markdown documentation.
type Translator struct{}

// FileExtension returns the file extension for markdown files.
func (t *Translator) FileExtension() string {
	return ".md"
}

// Translate converts a compiled unit to markdown documentation.
func (t *Translator) Translate(unit *compile.Unit, _ translate.Options) ([]byte, error) {
	data, err := translate.Prepare(unit, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// formatConstraints formats the constraints for a field as a human-readable string.
func formatConstraints(c translate.Constraints) string {
	var parts []string

	if len(c.Enum) > 0 {
		enumVals := make([]string, len(c.Enum))
		for i, v := range c.Enum {
			enumVals[i] = fmt.Sprintf("`%s`", v)
		}
		parts = append(parts, "enum: "+strings.Join(enumVals, ", "))
	}

	if c.Default != "" {
		parts = append(parts, fmt.Sprintf("default: `%s`", c.Default))
	}

	if c.Minimum != "" {
		parts = append(parts, "minimum: "+c.Minimum)
	}

	if c.Maximum != "" {
		parts = append(parts, "maximum: "+c.Maximum)
	}

	if c.MinItems != nil {
		parts = append(parts, fmt.Sprintf("minItems: %d", *c.MinItems))
	}

	if c.MaxItems != nil {
		parts = append(parts, fmt.Sprintf("maxItems: %d", *c.MaxItems))
	}

	return strings.Join(parts, ", ")
}
