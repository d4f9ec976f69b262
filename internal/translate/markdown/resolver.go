// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package markdown

import (
	"strconv"
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindInteger:
		return "integer"
	case compile.KindNumber:
		return "number"
	case compile.KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

func (r *resolver) LiteralType(_ []string) string {
	return "enum"
}

func (r *resolver) ArrayType(elemType string) string {
	return "array(" + elemType + ")"
}

func (r *resolver) TupleType(elemType string, n int) string {
	return "array(" + elemType + ")[" + strconv.Itoa(n) + "]"
}

func (r *resolver) ClassType(className string) string {
	return "[" + className + "](#" + anchor(className) + ")"
}

func (r *resolver) FormatTypeName(className string) string {
	return className
}

func (r *resolver) FormatCallbackName(className string) string {
	return compile.CallbackName(className)
}

func (r *resolver) EnrichField(f *translate.Field) {
	f.Description = cell(f.Description)
}

// anchor returns the heading anchor generated for a type name.
func anchor(name string) string {
	return strings.ToLower(name)
}

// cell makes text safe for a single table cell.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
