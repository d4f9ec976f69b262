// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

// Kind identifies the shape of a resolved Type.
type Kind int

// Type kinds.
const (
	KindString Kind = iota
	KindLiteral
	KindInteger
	KindNumber
	KindBoolean
	KindClass
	KindList
	KindTuple
)

// Type is a target-language type expression.
type Type struct {
	Kind     Kind
	Literals []string // KindLiteral
	Class    string   // KindClass
	Elem     *Type    // KindList, KindTuple
	Len      int      // KindTuple

	// Optional wraps the expression as nullable. It never removes Field.
	Optional bool

	// Field is the constrained-field annotation, nil when the type carries none.
	Field *FieldSpec
}

// FieldSpec holds the constraints attached to a top-level field.
type FieldSpec struct {
	// Default is the literal default value. Empty means the field is
	// mandatory, which renderers express with a sentinel (pydantic "...").
	Default string

	Ge string // inclusive lower bound literal
	Le string // inclusive upper bound literal

	MinItems *int
	MaxItems *int
}

// HasDefault reports whether an explicit default value is present.
func (f *FieldSpec) HasDefault() bool {
	return f != nil && f.Default != ""
}

// ClassRefs returns the class names referenced by t, outermost first.
func (t Type) ClassRefs() []string {
	switch t.Kind {
	case KindClass:
		return []string{t.Class}
	case KindList, KindTuple:
		if t.Elem != nil {
			return t.Elem.ClassRefs()
		}
	}
	return nil
}

// ClassDef is a generated record definition. Generated classes reject unknown fields.
type ClassDef struct {
	Name   string
	Fields []Field
}

// Field is one member of a ClassDef.
type Field struct {
	Name string
	Type Type
	Doc  string
}

// Callback is a single-argument handler signature for one payload class.
type Callback struct {
	Name    string // e.g. "_AVRPCMServoCallable"
	Payload string // payload class name
}

// Unit is the complete output of one compilation pass.
type Unit struct {
	Title   string
	Version string

	// Classes are ordered so that every class is declared before use.
	Classes []ClassDef

	// Topics maps topic strings to payload class names.
	Topics map[string]string

	Callbacks []Callback
}

// Class returns the class definition with the given name.
func (u *Unit) Class(name string) (ClassDef, bool) {
	for _, c := range u.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDef{}, false
}
