// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package avro renders compiled units as Apache Avro record schemas.
package avro

import (
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
	gojson "github.com/goccy/go-json"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindInteger:
		return "long"
	case compile.KindNumber:
		return "double"
	case compile.KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

func (r *resolver) LiteralType(values []string) string {
	symbols, err := gojson.Marshal(values)
	if err != nil {
		return "string"
	}
	return "enum:" + string(symbols)
}

func (r *resolver) ArrayType(elemType string) string {
	return "array:" + elemType
}

// TupleType is a plain array; Avro has no fixed-length arrays.
func (r *resolver) TupleType(elemType string, _ int) string {
	return "array:" + elemType
}

func (r *resolver) ClassType(className string) string {
	return "ref:" + className
}

func (r *resolver) FormatTypeName(className string) string {
	return className
}

func (r *resolver) FormatCallbackName(className string) string {
	return className
}

func (r *resolver) EnrichField(f *translate.Field) {
	f.Description = strings.TrimSpace(f.Description)
}
