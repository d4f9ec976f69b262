// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package pydantic

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
		return "int"
	case compile.KindNumber:
		return "float"
	case compile.KindBoolean:
		return "bool"
	default:
		return "str"
	}
}

func (r *resolver) LiteralType(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "Literal[" + strings.Join(quoted, ", ") + "]"
}

func (r *resolver) ArrayType(elemType string) string {
	return "List[" + elemType + "]"
}

func (r *resolver) TupleType(elemType string, n int) string {
	if n == 0 {
		return "Tuple[()]"
	}
	elems := make([]string, n)
	for i := range elems {
		elems[i] = elemType
	}
	return "Tuple[" + strings.Join(elems, ", ") + "]"
}

func (r *resolver) ClassType(className string) string {
	return className
}

func (r *resolver) FormatTypeName(className string) string {
	return className
}

func (r *resolver) FormatCallbackName(className string) string {
	return compile.CallbackName(className)
}

func (r *resolver) EnrichField(f *translate.Field) {
	if f.Nullable {
		f.Type = "Optional[" + f.Type + "]"
	}
	if f.Constraints.Annotated {
		f.Tag = " = " + fieldCall(f.Constraints)
	}
	if f.Description != "" {
		f.Description = docstring(f.Description)
	}
}

// fieldCall renders the pydantic Field(...) annotation. A missing default
// is written as the required sentinel "...".
func fieldCall(c translate.Constraints) string {
	args := []string{"..."}
	if c.Default != "" {
		args[0] = "default=" + pythonLiteral(c.Default)
	}
	if c.Minimum != "" {
		args = append(args, "ge="+c.Minimum)
	}
	if c.Maximum != "" {
		args = append(args, "le="+c.Maximum)
	}
	if c.MinItems != nil {
		args = append(args, "min_items="+strconv.Itoa(*c.MinItems))
	}
	if c.MaxItems != nil {
		args = append(args, "max_items="+strconv.Itoa(*c.MaxItems))
	}
	return "Field(" + strings.Join(args, ", ") + ")"
}

// pythonLiteral converts JSON scalar text to its Python spelling.
func pythonLiteral(v string) string {
	switch v {
	case "true":
		return "True"
	case "false":
		return "False"
	case "null":
		return "None"
	}
	return v
}

// docstring indents continuation lines and escapes closing quotes.
func docstring(s string) string {
	s = strings.ReplaceAll(s, `"""`, `\"\"\"`)
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n\t")
}
