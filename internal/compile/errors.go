// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import "github.com/cockroachdb/errors"

// Compile errors. All of them abort the whole compilation; match with errors.Is.
var (
	// ErrUnsupportedSchemaType indicates a node type outside
	// string, number, integer, boolean, object and array.
	ErrUnsupportedSchemaType = errors.New("unsupported schema type")

	// ErrInvalidSchemaShape indicates a class schema that is not a closed object.
	ErrInvalidSchemaShape = errors.New("invalid schema shape")

	// ErrMissingDirection indicates a channel with neither subscribe nor publish.
	ErrMissingDirection = errors.New("publish or subscribe not found")

	// ErrMissingMessageRef indicates a channel operation without a message $ref.
	ErrMissingMessageRef = errors.New("message reference not found")

	// ErrNameCollision indicates two classes derived the same name.
	ErrNameCollision = errors.New("class name collision")

	// ErrUnknownMessage indicates a topic bound to a message that was not compiled.
	ErrUnknownMessage = errors.New("unknown message")
)

const fixSchemaHint = "fix the input schema"

func schemaError(sentinel error, format string, args ...any) error {
	return errors.WithHint(errors.Wrapf(sentinel, format, args...), fixSchemaHint)
}
