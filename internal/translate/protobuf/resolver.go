// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package protobuf

import (
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindInteger:
		return "int64"
	case compile.KindNumber:
		return "double"
	case compile.KindBoolean:
		return "bool"
	default:
		return "string"
	}
}

// LiteralType maps enums to string; allowed values are listed in a comment.
func (r *resolver) LiteralType(_ []string) string {
	return "string"
}

func (r *resolver) ArrayType(elemType string) string {
	return "repeated " + elemType
}

// TupleType has no fixed-length counterpart in proto3.
func (r *resolver) TupleType(elemType string, _ int) string {
	return "repeated " + elemType
}

func (r *resolver) ClassType(className string) string {
	return className
}

func (r *resolver) FormatTypeName(className string) string {
	return className
}

func (r *resolver) FormatCallbackName(className string) string {
	return className
}

func (r *resolver) EnrichField(f *translate.Field) {
	if f.Nullable && !strings.HasPrefix(f.Type, "repeated ") {
		f.Type = "optional " + f.Type
	}
	f.Name = translate.ToSnakeCase(f.Name)

	var notes []string
	if d := strings.TrimSpace(f.Description); d != "" {
		notes = append(notes, strings.ReplaceAll(d, "\n", " "))
	}
	if len(f.Constraints.Enum) > 0 {
		notes = append(notes, "one of: "+strings.Join(f.Constraints.Enum, ", "))
	}
	f.Description = strings.Join(notes, "; ")
}
