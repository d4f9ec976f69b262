// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package avro

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
	gojson "github.com/goccy/go-json"
)

// DefaultNamespace is used when no package name is configured.
const DefaultNamespace = "payloads"

var avroName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Translator translates compiled units to Apache Avro schema definitions.
type Translator struct{}

// FileExtension returns the file extension for Avro schema files.
func (t *Translator) FileExtension() string {
	return ".avsc"
}

// avroRecord represents an Avro record schema.
type avroRecord struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Namespace string      `json:"namespace,omitempty"`
	Fields    []avroField `json:"fields"`
}

// avroField represents a field within an Avro record.
type avroField struct {
	Name    string             `json:"name"`
	Type    any                `json:"type"`
	Doc     string             `json:"doc,omitempty"`
	Default *gojson.RawMessage `json:"default,omitempty"`
}

// avroArray represents an Avro array type.
type avroArray struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

// avroEnum represents an Avro enum type.
type avroEnum struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

// Translate converts a compiled unit to a JSON array of Avro records in
// declaration order, so every record is defined before it is referenced.
func (t *Translator) Translate(unit *compile.Unit, opts translate.Options) ([]byte, error) {
	data, err := translate.Prepare(unit, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	namespace := opts.Package
	if namespace == "" {
		namespace = DefaultNamespace
	}

	records := make([]avroRecord, 0, len(data.Types))
	for _, def := range data.Types {
		fields, err := buildFields(def)
		if err != nil {
			return nil, err
		}
		records = append(records, avroRecord{
			Type:      "record",
			Name:      def.Name,
			Namespace: namespace,
			Fields:    fields,
		})
	}

	out, err := gojson.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Avro schema: %w", err)
	}

	return append(out, '\n'), nil
}

// buildFields converts translate.Fields to avroFields. Nullable fields become
// ["null", T] unions defaulting to null.
func buildFields(def translate.TypeDef) ([]avroField, error) {
	result := make([]avroField, 0, len(def.Fields))
	for _, f := range def.Fields {
		avroType, err := buildAvroType(f.Type, def.Name+translate.ToPascalCase(f.Name)+"Enum")
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name, f.Name, err)
		}

		field := avroField{
			Name: f.Name,
			Type: avroType,
			Doc:  f.Description,
		}
		switch {
		case f.Nullable:
			field.Type = []any{"null", avroType}
			null := gojson.RawMessage("null")
			field.Default = &null
		case f.Constraints.Default != "":
			value := gojson.RawMessage(f.Constraints.Default)
			field.Default = &value
		}
		result = append(result, field)
	}
	return result, nil
}

// buildAvroType converts a resolver type string to an Avro type value.
func buildAvroType(typeStr, enumName string) (any, error) {
	// Handle ref markers
	if name, ok := strings.CutPrefix(typeStr, "ref:"); ok {
		return name, nil
	}

	// Handle array markers
	if elemStr, ok := strings.CutPrefix(typeStr, "array:"); ok {
		items, err := buildAvroType(elemStr, enumName)
		if err != nil {
			return nil, err
		}
		return avroArray{Type: "array", Items: items}, nil
	}

	// Handle enum markers; symbols that are not Avro names fall back to string
	if raw, ok := strings.CutPrefix(typeStr, "enum:"); ok {
		var symbols []string
		if err := gojson.Unmarshal([]byte(raw), &symbols); err != nil {
			return nil, fmt.Errorf("decoding enum symbols: %w", err)
		}
		for _, s := range symbols {
			if !avroName.MatchString(s) {
				return "string", nil
			}
		}
		return avroEnum{Type: "enum", Name: enumName, Symbols: symbols}, nil
	}

	// Primitive types pass through as strings
	return typeStr, nil
}
