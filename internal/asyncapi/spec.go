// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package asyncapi loads AsyncAPI documents into dereferenced payload schemas
// and raw channel bindings.
package asyncapi

import "github.com/bellflight/asyncgen/internal/schema"

// Spec is a loaded AsyncAPI document.
type Spec struct {
	AsyncAPI string
	Info     Info
	Channels []Channel // document order
	Messages []Message // document order of components.messages
}

// Info contains document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Channel is a topic with its publish and subscribe operations.
type Channel struct {
	Topic       string
	Description string
	Subscribe   *Operation
	Publish     *Operation
}

// Operation is one direction of a channel. MessageRef is the raw $ref string,
// e.g. "#/components/messages/AVRPCMServo".
type Operation struct {
	Summary    string
	MessageRef string
}

// Message is a named message from components.messages with its dereferenced payload.
type Message struct {
	Name        string
	Title       string
	Description string
	Payload     schema.Node
}

// Message returns the message with the given name.
func (s *Spec) Message(name string) (Message, bool) {
	for _, m := range s.Messages {
		if m.Name == name {
			return m, true
		}
	}
	return Message{}, false
}
