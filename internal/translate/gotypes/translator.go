// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package gotypes renders compiled units as Go struct types with handler
// signatures and a topic lookup table.
package gotypes

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"comment": comment,
}

var tmpl = template.Must(template.New("gotypes.go.tmpl").Funcs(funcMap).ParseFS(tmplFS, "gotypes.go.tmpl"))

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "payloads"

// Translator translates compiled units to Go struct type definitions.
type Translator struct{}

// FileExtension returns the file extension for Go source files.
func (t *Translator) FileExtension() string {
	return ".go"
}

// Translate converts a compiled unit to gofmt-formatted Go source.
func (t *Translator) Translate(unit *compile.Unit, opts translate.Options) ([]byte, error) {
	data, err := translate.Prepare(unit, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	data.Extra["Package"] = pkg

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "gotypes.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return out, nil
}

// comment renders s as a // comment block at the given indentation.
func comment(indent, s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(indent+"// "+line, " ")
	}
	return strings.Join(lines, "\n")
}
