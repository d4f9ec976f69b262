// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package translate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver is a minimal TypeResolver for testing Prepare logic.
type stubResolver struct {
	enriched int
}

func (s *stubResolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindInteger:
		return "int"
	case compile.KindNumber:
		return "num"
	case compile.KindBoolean:
		return "bool"
	default:
		return "str"
	}
}

func (s *stubResolver) LiteralType(values []string) string {
	return "lit(" + strings.Join(values, "|") + ")"
}

func (s *stubResolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

func (s *stubResolver) TupleType(elemType string, n int) string {
	return fmt.Sprintf("[%d]%s", n, elemType)
}

func (s *stubResolver) ClassType(className string) string {
	return "&" + className
}

func (s *stubResolver) FormatTypeName(className string) string {
	return "T" + className
}

func (s *stubResolver) FormatCallbackName(className string) string {
	return "On" + className
}

func (s *stubResolver) EnrichField(f *Field) {
	s.enriched++
	if f.Nullable {
		f.Type = "?" + f.Type
	}
}

func sampleUnit() *compile.Unit {
	return &compile.Unit{
		Title:   "Demo",
		Version: "1.0.0",
		Classes: []compile.ClassDef{
			{Name: "FooState", Fields: []compile.Field{
				{Name: "angle", Type: compile.Type{Kind: compile.KindNumber, Optional: true}},
			}},
			{Name: "Foo", Fields: []compile.Field{
				{Name: "servo", Type: compile.Type{
					Kind:  compile.KindInteger,
					Field: &compile.FieldSpec{Ge: "0", Le: "15"},
				}, Doc: "Servo number"},
				{Name: "action", Type: compile.Type{Kind: compile.KindLiteral, Literals: []string{"open", "close"}}},
				{Name: "state", Type: compile.Type{Kind: compile.KindClass, Class: "FooState", Optional: true}},
				{Name: "wrgb", Type: compile.Type{
					Kind: compile.KindTuple,
					Len:  4,
					Elem: &compile.Type{Kind: compile.KindInteger},
				}},
				{Name: "tags", Type: compile.Type{
					Kind: compile.KindList,
					Elem: &compile.Type{Kind: compile.KindString},
				}},
			}},
		},
		Topics: map[string]string{
			"z/last":  "Foo",
			"a/first": "FooState",
		},
		Callbacks: []compile.Callback{{Name: "_FooCallable", Payload: "Foo"}},
	}
}

func TestPrepare_TypesInDeclaredOrder(t *testing.T) {
	data, err := Prepare(sampleUnit(), &stubResolver{})
	require.NoError(t, err)

	require.Len(t, data.Types, 2)
	assert.Equal(t, "TFooState", data.Types[0].Name)
	assert.Equal(t, "TFoo", data.Types[1].Name)
	assert.Equal(t, "Demo", data.Title)
	assert.Equal(t, "1.0.0", data.Version)
	assert.NotNil(t, data.Extra)
}

func TestPrepare_FieldTypes(t *testing.T) {
	data, err := Prepare(sampleUnit(), &stubResolver{})
	require.NoError(t, err)

	fields := data.Types[1].Fields
	require.Len(t, fields, 5)

	tests := []struct {
		name     string
		wantType string
		nullable bool
	}{
		{"servo", "int", false},
		{"action", "lit(open|close)", false},
		{"state", "?&FooState", true},
		{"wrgb", "[4]int", false},
		{"tags", "[]str", false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, fields[i].Name)
			assert.Equal(t, tt.wantType, fields[i].Type)
			assert.Equal(t, tt.nullable, fields[i].Nullable)
		})
	}
}

func TestPrepare_Constraints(t *testing.T) {
	data, err := Prepare(sampleUnit(), &stubResolver{})
	require.NoError(t, err)

	servo := data.Types[1].Fields[0]
	assert.True(t, servo.Constraints.Annotated)
	assert.Empty(t, servo.Constraints.Default)
	assert.Equal(t, "0", servo.Constraints.Minimum)
	assert.Equal(t, "15", servo.Constraints.Maximum)
	assert.Equal(t, "Servo number", servo.Description)

	action := data.Types[1].Fields[1]
	assert.False(t, action.Constraints.Annotated)
	assert.Equal(t, []string{"open", "close"}, action.Constraints.Enum)
}

func TestPrepare_TopicsSorted(t *testing.T) {
	data, err := Prepare(sampleUnit(), &stubResolver{})
	require.NoError(t, err)

	assert.Equal(t, []Topic{
		{Name: "a/first", Type: "TFooState"},
		{Name: "z/last", Type: "TFoo"},
	}, data.Topics)
}

func TestPrepare_Callbacks(t *testing.T) {
	data, err := Prepare(sampleUnit(), &stubResolver{})
	require.NoError(t, err)

	assert.Equal(t, []CallbackDef{{Name: "OnFoo", Payload: "TFoo"}}, data.Callbacks)
}

func TestPrepare_EnrichFieldCalled(t *testing.T) {
	r := &stubResolver{}
	_, err := Prepare(sampleUnit(), r)
	require.NoError(t, err)
	assert.Equal(t, 6, r.enriched)
}

func TestPrepare_Errors(t *testing.T) {
	_, err := Prepare(nil, &stubResolver{})
	assert.Error(t, err)

	unit := &compile.Unit{Classes: []compile.ClassDef{
		{Name: "Bad", Fields: []compile.Field{{Name: "xs", Type: compile.Type{Kind: compile.KindList}}}},
	}}
	_, err = Prepare(unit, &stubResolver{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.xs")
}

func TestResolveType_NestedArrays(t *testing.T) {
	typ := compile.Type{
		Kind: compile.KindList,
		Elem: &compile.Type{
			Kind: compile.KindTuple,
			Len:  2,
			Elem: &compile.Type{Kind: compile.KindClass, Class: "Point"},
		},
	}

	got, err := ResolveType(typ, &stubResolver{})
	require.NoError(t, err)
	assert.Equal(t, "[][2]&Point", got)
}

func TestRegister(t *testing.T) {
	r := Register{"b": nil, "a": nil, "c": nil}
	assert.Equal(t, []string{"a", "b", "c"}, r.Available())

	_, err := r.Get("zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "zzz"`)
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"servo_state", "ServoState"},
		{"set-base-color", "SetBaseColor"},
		{"avr/pcm/servo", "AvrPcmServo"},
		{"Already", "Already"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"servoState", "servostate"},
		{"servo_state", "servo_state"},
		{"WRGB value", "wrgb_value"},
		{"2fast", "_2fast"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSnakeCase(tt.input))
		})
	}
}
