// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package translate

// SchemaData is the complete input passed to a translator template.
type SchemaData struct {
	Title     string
	Version   string
	Types     []TypeDef      // declaration order
	Topics    []Topic        // sorted by topic
	Callbacks []CallbackDef  // sorted by payload
	Extra     map[string]any // translator-specific template data
}

// TypeDef represents a named record definition.
type TypeDef struct {
	Name   string  // formatted name
	Fields []Field // ordered fields
}

// Field represents a single member of a type definition.
type Field struct {
	Name        string      // property name (may be mutated by EnrichField)
	Type        string      // fully resolved target type string
	Nullable    bool        // true if the property is not required
	Tag         string      // language-specific annotation, e.g. " = Field(...)" or a Go struct tag
	Description string      // schema description, if any
	Constraints Constraints // constraints carried by the field annotation
}

// Constraints holds the field-level annotation of a compiled type.
type Constraints struct {
	Annotated bool   // a constrained-field annotation is attached
	Default   string // literal default, empty when mandatory
	Minimum   string
	Maximum   string
	MinItems  *int
	MaxItems  *int
	Enum      []string // literal values, for documentation targets
}

// Topic binds a topic string to its payload type.
type Topic struct {
	Name string
	Type string // formatted type name
}

// CallbackDef is a handler signature for one payload type.
type CallbackDef struct {
	Name    string
	Payload string // formatted type name
}
