// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import (
	"strings"

	"github.com/bellflight/asyncgen/internal/asyncapi"
)

// BindTopics maps every channel topic to the class name of its message.
// Subscribe wins when a channel declares both directions.
func BindTopics(channels []asyncapi.Channel) (map[string]string, error) {
	topics := make(map[string]string, len(channels))
	for _, ch := range channels {
		op := ch.Subscribe
		if op == nil {
			op = ch.Publish
		}
		if op == nil {
			return nil, schemaError(ErrMissingDirection, "channel %q", ch.Topic)
		}
		if op.MessageRef == "" {
			return nil, schemaError(ErrMissingMessageRef, "channel %q", ch.Topic)
		}
		topics[ch.Topic] = MessageName(op.MessageRef)
	}
	return topics, nil
}

// MessageName returns the final "/" segment of a message reference.
func MessageName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}
