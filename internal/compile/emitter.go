// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import "github.com/bellflight/asyncgen/internal/schema"

// EmitClass builds the class definition for a closed object schema. The result
// ends with the class itself; every nested class it depends on comes earlier.
func EmitClass(className string, node schema.Node) ([]ClassDef, error) {
	obj, ok := node.(*schema.Object)
	if !ok {
		return nil, schemaError(ErrInvalidSchemaShape, "class %s: schema is %T, want an object", className, node)
	}
	if !obj.Closed {
		return nil, schemaError(ErrInvalidSchemaShape, "class %s: additionalProperties must be false", className)
	}

	def := ClassDef{
		Name:   className,
		Fields: make([]Field, 0, len(obj.Properties)),
	}

	var hoisted []ClassDef
	for _, p := range obj.Properties {
		t, nested, err := Resolve(p.Schema, obj.IsRequired(p.Name), p.Name, className, false)
		if err != nil {
			return nil, err
		}

		// each property's nested classes go in front of everything emitted so far
		if len(nested) > 0 {
			hoisted = append(append(make([]ClassDef, 0, len(nested)+len(hoisted)), nested...), hoisted...)
		}

		def.Fields = append(def.Fields, Field{
			Name: p.Name,
			Type: t,
			Doc:  p.Schema.Description(),
		})
	}

	return append(hoisted, def), nil
}
