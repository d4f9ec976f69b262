// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import (
	"strconv"
	"strings"

	"github.com/bellflight/asyncgen/internal/schema"
)

// Resolve maps one schema node to a Type. Object nodes produce a class named
// after parent and property; the returned defs hold that class and everything
// it depends on, and must be declared before the caller's class.
//
// In nested (array item) position numeric constraints are dropped, since
// element types cannot carry field annotations. A non-required result is
// marked Optional and keeps any field annotation, including its default.
func Resolve(node schema.Node, required bool, property, parent string, nested bool) (Type, []ClassDef, error) {
	t, defs, err := resolve(node, property, parent, nested)
	if err != nil {
		return Type{}, nil, err
	}
	if !required {
		t.Optional = true
	}
	return t, defs, nil
}

func resolve(node schema.Node, property, parent string, nested bool) (Type, []ClassDef, error) {
	switch n := node.(type) {
	case *schema.String:
		if len(n.Enum) > 0 {
			return Type{Kind: KindLiteral, Literals: n.Enum}, nil, nil
		}
		return Type{Kind: KindString}, nil, nil
	case *schema.Number:
		return resolveNumber(n, nested), nil, nil
	case *schema.Boolean:
		return Type{Kind: KindBoolean}, nil, nil
	case *schema.Object:
		name := NestedClassName(parent, property)
		defs, err := EmitClass(name, n)
		if err != nil {
			return Type{}, nil, err
		}
		return Type{Kind: KindClass, Class: name}, defs, nil
	case *schema.Array:
		return resolveArray(n, property, parent, nested)
	case *schema.Unknown:
		return Type{}, nil, schemaError(ErrUnsupportedSchemaType, "%s.%s: type %q", parent, property, n.Type)
	default:
		return Type{}, nil, schemaError(ErrUnsupportedSchemaType, "%s.%s: %T", parent, property, node)
	}
}

func resolveNumber(n *schema.Number, nested bool) Type {
	t := Type{Kind: KindNumber}
	if n.Integer {
		t.Kind = KindInteger
	}
	if nested || !n.HasConstraints() {
		return t
	}

	spec := &FieldSpec{}
	if d := strings.TrimSpace(string(n.Default)); d != "" && d != "null" {
		spec.Default = d
	}
	if n.Minimum != nil {
		spec.Ge = formatNumber(*n.Minimum)
	}
	if n.Maximum != nil {
		spec.Le = formatNumber(*n.Maximum)
	}
	t.Field = spec
	return t
}

func resolveArray(n *schema.Array, property, parent string, nested bool) (Type, []ClassDef, error) {
	elem, defs, err := Resolve(n.Items, true, property, parent, true)
	if err != nil {
		return Type{}, nil, err
	}

	t := Type{Kind: KindList, Elem: &elem}
	if size, ok := n.FixedLength(); ok {
		if size < 0 {
			return Type{}, nil, schemaError(ErrInvalidSchemaShape, "%s.%s: negative item count %d", parent, property, size)
		}
		t = Type{Kind: KindTuple, Elem: &elem, Len: size}
	}

	if nested || (n.MinItems == nil && n.MaxItems == nil) {
		return t, defs, nil
	}
	t.Field = &FieldSpec{MinItems: n.MinItems, MaxItems: n.MaxItems}
	return t, defs, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
