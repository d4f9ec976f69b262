// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package translate

import "github.com/bellflight/asyncgen/internal/compile"

// TypeResolver converts compiled types to target-language type strings and naming conventions.
// Each translator implements this interface to control how a unit maps to its output format.
type TypeResolver interface {
	// PrimitiveType maps a scalar kind (string, integer, number, boolean) to a target type.
	PrimitiveType(kind compile.Kind) string

	// LiteralType returns the type for a closed set of string literals.
	LiteralType(values []string) string

	// ArrayType wraps an element type string in a variable-length array type.
	ArrayType(elemType string) string

	// TupleType returns a fixed-length array of n elements.
	TupleType(elemType string, n int) string

	// ClassType returns the type string used to reference a generated class.
	ClassType(className string) string

	// FormatTypeName formats a class name for its declaration.
	FormatTypeName(className string) string

	// FormatCallbackName formats the handler signature name for a payload class.
	FormatCallbackName(className string) string

	// EnrichField applies language-specific post-processing to a resolved field.
	// It may mutate any combination of the field's properties:
	//   - Name: rename for target conventions (e.g. snake_case to PascalCase for Go)
	//   - Type: wrap for nullability (e.g. Optional[T] for Python, *T for Go)
	//   - Tag:  set annotations (e.g. json struct tags for Go, " = Field(...)" for Python)
	// Called once per field after type resolution, before template execution.
	EnrichField(f *Field)
}
