// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package gotypes

import (
	"strconv"
	"strings"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind compile.Kind) string {
	switch kind {
	case compile.KindInteger:
		return "int64"
	case compile.KindNumber:
		return "float64"
	case compile.KindBoolean:
		return "bool"
	default:
		return "string"
	}
}

// LiteralType maps enums to string; the allowed values go into the validate tag.
func (r *resolver) LiteralType(_ []string) string {
	return "string"
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

func (r *resolver) TupleType(elemType string, n int) string {
	return "[" + strconv.Itoa(n) + "]" + elemType
}

func (r *resolver) ClassType(className string) string {
	return toPascalCase(className)
}

func (r *resolver) FormatTypeName(className string) string {
	return toPascalCase(className)
}

func (r *resolver) FormatCallbackName(className string) string {
	return toPascalCase(className) + "Handler"
}

func (r *resolver) EnrichField(f *translate.Field) {
	tag := f.Name
	if f.Nullable {
		tag += ",omitempty"
		if !strings.HasPrefix(f.Type, "[]") {
			f.Type = "*" + f.Type
		}
	}

	tags := []string{`json:"` + tag + `"`}
	if rules := validateRules(f); rules != "" {
		tags = append(tags, `validate:"`+rules+`"`)
	}
	if f.Constraints.Default != "" {
		tags = append(tags, `default:"`+strings.ReplaceAll(f.Constraints.Default, `"`, `'`)+`"`)
	}
	f.Tag = "`" + strings.Join(tags, " ") + "`"
	f.Name = toPascalCase(f.Name)
}

// validateRules builds go-playground/validator style rules for a field.
func validateRules(f *translate.Field) string {
	c := f.Constraints
	var rules []string
	if c.Minimum != "" {
		rules = append(rules, "gte="+c.Minimum)
	}
	if c.Maximum != "" {
		rules = append(rules, "lte="+c.Maximum)
	}
	if c.MinItems != nil {
		rules = append(rules, "min="+strconv.Itoa(*c.MinItems))
	}
	if c.MaxItems != nil {
		rules = append(rules, "max="+strconv.Itoa(*c.MaxItems))
	}
	if len(c.Enum) > 0 {
		rules = append(rules, "oneof="+strings.Join(c.Enum, " "))
	}
	if len(rules) > 0 && f.Nullable {
		rules = append([]string{"omitempty"}, rules...)
	}
	return strings.Join(rules, ",")
}

// toPascalCase converts a snake_case or camelCase string to PascalCase.
// It handles common Go acronyms (ID, URL, HTTP, API, JSON, XML, SQL, HTML).
func toPascalCase(s string) string {
	// Common Go acronyms that should be fully uppercased.
	acronyms := map[string]string{
		"id":   "ID",
		"url":  "URL",
		"http": "HTTP",
		"api":  "API",
		"json": "JSON",
		"xml":  "XML",
		"sql":  "SQL",
		"html": "HTML",
		"ip":   "IP",
		"tcp":  "TCP",
		"udp":  "UDP",
		"cpu":  "CPU",
		"uri":  "URI",
		"rgb":  "RGB",
		"led":  "LED",
		"pcm":  "PCM",
		"avr":  "AVR",
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var sb strings.Builder
	for _, part := range parts {
		lower := strings.ToLower(part)
		if acronym, ok := acronyms[lower]; ok {
			sb.WriteString(acronym)
		} else if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}
