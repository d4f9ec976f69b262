// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package templates renders user-provided text templates with the topic map
// of a compiled unit.
package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

// Suffix marks files rendered by Render. It is stripped from the output name.
const Suffix = ".tmpl"

// Data is the value passed to every template.
type Data struct {
	Title   string
	Version string

	// Topics maps topic strings to payload class names.
	Topics map[string]string

	// Classes lists every generated class in declaration order.
	Classes []string

	Callbacks []compile.Callback
}

// NewData extracts template data from a compiled unit.
func NewData(unit *compile.Unit) Data {
	classes := make([]string, len(unit.Classes))
	for i, c := range unit.Classes {
		classes[i] = c.Name
	}
	return Data{
		Title:     unit.Title,
		Version:   unit.Version,
		Topics:    unit.Topics,
		Classes:   classes,
		Callbacks: unit.Callbacks,
	}
}

// Rendered is the output of one template.
type Rendered struct {
	Name    string // output file name
	Content []byte
}

var funcMap = template.FuncMap{
	"title":    compile.TitleCase,
	"pascal":   translate.ToPascalCase,
	"snake":    translate.ToSnakeCase,
	"callback": compile.CallbackName,
	"join":     strings.Join,
	"payloads": payloads,
}

// Render executes every *.tmpl file at the root of fsys, in name order.
func Render(fsys fs.FS, data Data) ([]Rendered, error) {
	names, err := fs.Glob(fsys, "*"+Suffix)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	rendered := make([]Rendered, 0, len(names))
	for _, name := range names {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}

		rendered = append(rendered, Rendered{
			Name:    strings.TrimSuffix(path.Base(name), Suffix),
			Content: buf.Bytes(),
		})
	}
	return rendered, nil
}

// WriteAll writes rendered templates into dir.
func WriteAll(dir string, rendered []Rendered) error {
	for _, r := range rendered {
		if err := os.WriteFile(filepath.Join(dir, r.Name), r.Content, 0o644); err != nil { //nolint:gosec // generated sources are world-readable
			return err
		}
	}
	return nil
}

// payloads returns the distinct payload classes bound to topics, sorted.
func payloads(topics map[string]string) []string {
	return compile.PayloadClasses(topics)
}
