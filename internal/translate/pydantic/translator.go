// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package pydantic renders compiled units as Pydantic BaseModel classes with
// typed callback protocols.
package pydantic

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

//go:embed pydantic.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "pydantic.go.tmpl"))

// Translator translates compiled units to Pydantic model definitions.
type Translator struct{}

// FileExtension returns the file extension for Python files.
func (t *Translator) FileExtension() string {
	return ".py"
}

// Translate renders every class in declaration order followed by one
// callback protocol per bound payload class.
func (t *Translator) Translate(unit *compile.Unit, _ translate.Options) ([]byte, error) {
	data, err := translate.Prepare(unit, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "pydantic.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
