// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package translate renders compiled units into target-language source.
package translate

import (
	"fmt"
	"sort"

	"github.com/bellflight/asyncgen/internal/compile"
)

// Translator defines the interface all output formats must implement.
type Translator interface {
	// Translate renders a compiled unit in the target format.
	Translate(unit *compile.Unit, opts Options) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".py", ".go")
	FileExtension() string
}

// Options carries per-run settings shared by translators.
type Options struct {
	// Package is the package or namespace name for targets that need one.
	Package string
}

// Register maps format names to translators.
type Register map[string]Translator

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, r.Available())
	}
	return t, nil
}

// Available returns all registered format names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
