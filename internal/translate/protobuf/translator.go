// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package protobuf renders compiled units as Protocol Buffers (proto3) messages.
package protobuf

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

//go:embed protobuf.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "protobuf.go.tmpl"))

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "payloads"

// Translator translates compiled units to proto3 message definitions.
type Translator struct{}

// FileExtension returns the file extension for Protocol Buffers files.
func (t *Translator) FileExtension() string {
	return ".proto"
}

// Translate converts a compiled unit to proto3 message definitions.
// Arrays of arrays cannot be expressed in proto3 and are rejected.
func (t *Translator) Translate(unit *compile.Unit, opts translate.Options) ([]byte, error) {
	data, err := translate.Prepare(unit, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	data.Extra["Package"] = translate.ToSnakeCase(pkg)

	// sets sequential proto field numbers (= 1, = 2, ...) on each message.
	for i := range data.Types {
		for j := range data.Types[i].Fields {
			f := &data.Types[i].Fields[j]
			if strings.Contains(f.Type, "repeated repeated") {
				return nil, fmt.Errorf("%s.%s: nested arrays are not supported by proto3", data.Types[i].Name, f.Name)
			}
			f.Tag = fmt.Sprintf("= %d", j+1)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "protobuf.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
