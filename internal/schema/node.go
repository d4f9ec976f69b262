// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package schema provides the typed payload schema tree consumed by the compiler.
package schema

import "encoding/json"

// Node is one typed subtree of a payload schema.
// The set of implementations is closed: *String, *Number, *Boolean, *Object,
// *Array and *Unknown.
type Node interface {
	// Description returns the schema description, if any.
	Description() string

	node()
}

// String is a string schema. A non-empty Enum selects a closed set of literals.
type String struct {
	Desc string
	Enum []string
}

// Number is a number or integer schema with optional inclusive bounds.
type Number struct {
	Desc    string
	Integer bool
	Default json.RawMessage // literal JSON text, nil when absent
	Minimum *float64
	Maximum *float64
}

// Boolean is a boolean schema.
type Boolean struct {
	Desc string
}

// Object is an object schema. Closed is true only for additionalProperties: false.
type Object struct {
	Desc       string
	Properties []Property // declared order
	Required   []string
	Closed     bool
}

// Property is a named object member.
type Property struct {
	Name   string
	Schema Node
}

// Array is an array schema.
type Array struct {
	Desc     string
	Items    Node
	MinItems *int
	MaxItems *int
}

// Unknown carries a type tag outside the supported set so the compiler can reject it.
type Unknown struct {
	Desc string
	Type string
}

func (n *String) Description() string  { return n.Desc }
func (n *Number) Description() string  { return n.Desc }
func (n *Boolean) Description() string { return n.Desc }
func (n *Object) Description() string  { return n.Desc }
func (n *Array) Description() string   { return n.Desc }
func (n *Unknown) Description() string { return n.Desc }

func (*String) node()  {}
func (*Number) node()  {}
func (*Boolean) node() {}
func (*Object) node()  {}
func (*Array) node()   {}
func (*Unknown) node() {}

// IsRequired reports whether name is listed in the object's required set.
func (n *Object) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// HasConstraints reports whether any of default, minimum or maximum is set.
func (n *Number) HasConstraints() bool {
	return n.Default != nil || n.Minimum != nil || n.Maximum != nil
}

// FixedLength returns the item count when minItems and maxItems are both set and equal.
func (n *Array) FixedLength() (int, bool) {
	if n.MinItems == nil || n.MaxItems == nil || *n.MinItems != *n.MaxItems {
		return 0, false
	}
	return *n.MinItems, true
}
