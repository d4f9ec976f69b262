// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import (
	"strings"
	"unicode"
)

// NestedClassName derives the class name for an object property: the parent
// class name followed by the title-cased property name, with underscores removed.
func NestedClassName(parent, property string) string {
	return strings.ReplaceAll(parent+TitleCase(property), "_", "")
}

// TitleCase uppercases every letter that follows a non-letter and lowercases
// the remaining letters, so "servo_state" becomes "Servo_State" and
// "rgb2hex" becomes "Rgb2Hex".
func TitleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			sb.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}

// CallbackName returns the handler signature name for a payload class.
func CallbackName(class string) string {
	return "_" + class + "Callable"
}
