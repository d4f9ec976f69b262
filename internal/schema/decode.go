// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// FromJSONSchema converts a dereferenced JSON Schema into a Node tree.
// keyOrder maps dotted paths (e.g. "properties", "properties.pos.properties")
// to property names in document order; see ExtractYAMLNodeKeyOrder.
// Properties missing from keyOrder are emitted in sorted order.
func FromJSONSchema(s *jsonschema.Schema, keyOrder map[string][]string) (Node, error) {
	return fromJSONSchema(s, keyOrder, "")
}

func fromJSONSchema(s *jsonschema.Schema, keyOrder map[string][]string, path string) (Node, error) {
	if s == nil {
		return nil, errors.New("nil schema")
	}

	switch typ := schemaType(s); typ {
	case "string":
		n := &String{Desc: s.Description}
		for _, v := range s.Enum {
			n.Enum = append(n.Enum, fmt.Sprint(v))
		}
		return n, nil
	case "number", "integer":
		return &Number{
			Desc:    s.Description,
			Integer: typ == "integer",
			Default: s.Default,
			Minimum: s.Minimum,
			Maximum: s.Maximum,
		}, nil
	case "boolean":
		return &Boolean{Desc: s.Description}, nil
	case "object":
		n := &Object{
			Desc:     s.Description,
			Required: s.Required,
			Closed:   isFalseSchema(s.AdditionalProperties),
		}
		for _, name := range OrderedKeys(s.Properties, keyOrder, joinPath(path, "properties")) {
			child, err := fromJSONSchema(s.Properties[name], keyOrder, joinPath(path, "properties", name))
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			n.Properties = append(n.Properties, Property{Name: name, Schema: child})
		}
		return n, nil
	case "array":
		if s.Items == nil {
			return nil, errors.New("array schema has no items")
		}
		items, err := fromJSONSchema(s.Items, keyOrder, joinPath(path, "items"))
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return &Array{
			Desc:     s.Description,
			Items:    items,
			MinItems: s.MinItems,
			MaxItems: s.MaxItems,
		}, nil
	default:
		return &Unknown{Desc: s.Description, Type: typ}, nil
	}
}

func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	return strings.Join(s.Types, "|")
}

// isFalseSchema reports whether s is the boolean schema false, which jsonschema
// decodes as {"not": {}}.
func isFalseSchema(s *jsonschema.Schema) bool {
	if s == nil || s.Not == nil {
		return false
	}
	rest := *s
	rest.Not = nil
	return isEmptySchema(&rest) && isEmptySchema(s.Not)
}

func isEmptySchema(s *jsonschema.Schema) bool {
	data, err := json.Marshal(s)
	if err != nil {
		return false
	}
	text := string(data)
	return text == "true" || text == "{}"
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
