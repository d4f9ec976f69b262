// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package translate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
)

// Prepare converts a compiled unit into a SchemaData ready for template execution.
// Types keep the unit's declaration order; every field type is resolved with the
// provided TypeResolver and then passed through EnrichField.
func Prepare(unit *compile.Unit, resolver TypeResolver) (*SchemaData, error) {
	if unit == nil {
		return nil, fmt.Errorf("nil unit")
	}

	data := &SchemaData{
		Title:   unit.Title,
		Version: unit.Version,
		Types:   make([]TypeDef, 0, len(unit.Classes)),
		Extra:   make(map[string]any),
	}

	for _, class := range unit.Classes {
		fields := make([]Field, 0, len(class.Fields))
		for _, cf := range class.Fields {
			typeStr, err := ResolveType(cf.Type, resolver)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", class.Name, cf.Name, err)
			}

			f := Field{
				Name:        cf.Name,
				Type:        typeStr,
				Nullable:    cf.Type.Optional,
				Description: cf.Doc,
				Constraints: extractConstraints(cf.Type),
			}
			resolver.EnrichField(&f)
			fields = append(fields, f)
		}

		data.Types = append(data.Types, TypeDef{
			Name:   resolver.FormatTypeName(class.Name),
			Fields: fields,
		})
	}

	topics := make([]string, 0, len(unit.Topics))
	for topic := range unit.Topics {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		data.Topics = append(data.Topics, Topic{
			Name: topic,
			Type: resolver.FormatTypeName(unit.Topics[topic]),
		})
	}

	for _, cb := range unit.Callbacks {
		data.Callbacks = append(data.Callbacks, CallbackDef{
			Name:    resolver.FormatCallbackName(cb.Payload),
			Payload: resolver.FormatTypeName(cb.Payload),
		})
	}

	return data, nil
}

// ResolveType renders a compiled type expression without its optional wrapper
// or field annotation; those are left to EnrichField.
func ResolveType(t compile.Type, resolver TypeResolver) (string, error) {
	switch t.Kind {
	case compile.KindString, compile.KindInteger, compile.KindNumber, compile.KindBoolean:
		return resolver.PrimitiveType(t.Kind), nil
	case compile.KindLiteral:
		return resolver.LiteralType(t.Literals), nil
	case compile.KindClass:
		return resolver.ClassType(t.Class), nil
	case compile.KindList, compile.KindTuple:
		if t.Elem == nil {
			return "", fmt.Errorf("array type without element")
		}
		elem, err := ResolveType(*t.Elem, resolver)
		if err != nil {
			return "", err
		}
		if t.Kind == compile.KindTuple {
			return resolver.TupleType(elem, t.Len), nil
		}
		return resolver.ArrayType(elem), nil
	default:
		return "", fmt.Errorf("unsupported type kind %d", t.Kind)
	}
}

func extractConstraints(t compile.Type) Constraints {
	c := Constraints{Enum: t.Literals}
	if t.Field == nil {
		return c
	}
	c.Annotated = true
	c.Default = t.Field.Default
	c.Minimum = t.Field.Ge
	c.Maximum = t.Field.Le
	c.MinItems = t.Field.MinItems
	c.MaxItems = t.Field.MaxItems
	return c
}

// ToSnakeCase converts a string to a valid snake_case identifier.
// It splits on non-alphanumeric characters, lowercases each part,
// and prefixes with underscore if the result starts with a digit.
func ToSnakeCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	result := strings.Join(parts, "_")
	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// ToPascalCase converts a snake_case string to PascalCase.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '/'
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}
