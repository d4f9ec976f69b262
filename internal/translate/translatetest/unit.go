// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

// Package translatetest builds compiled units shared by translator tests.
package translatetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bellflight/asyncgen/internal/asyncapi"
	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/schema"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// Spec returns a small servo/LED document covering every supported shape.
func Spec() *asyncapi.Spec {
	servo := &schema.Object{
		Closed:   true,
		Required: []string{"servo", "action"},
		Properties: []schema.Property{
			{Name: "servo", Schema: &schema.Number{Integer: true, Desc: "Servo number", Minimum: ptr(0.0), Maximum: ptr(15.0)}},
			{Name: "action", Schema: &schema.String{Enum: []string{"open", "close"}}},
			{Name: "servo_state", Schema: &schema.Object{
				Closed: true,
				Properties: []schema.Property{
					{Name: "angle", Schema: &schema.Number{}},
					{Name: "moving", Schema: &schema.Boolean{}},
				},
			}},
		},
	}

	color := &schema.Object{
		Closed:   true,
		Required: []string{"wrgb"},
		Properties: []schema.Property{
			{Name: "wrgb", Schema: &schema.Array{
				Desc:     "A list of 4 ints between 0 and 255.",
				Items:    &schema.Number{Integer: true, Minimum: ptr(0.0), Maximum: ptr(255.0)},
				MinItems: ptr(4),
				MaxItems: ptr(4),
			}},
			{Name: "brightness", Schema: &schema.Number{Default: json.RawMessage("0.5"), Minimum: ptr(0.0), Maximum: ptr(1.0)}},
			{Name: "label", Schema: &schema.String{}},
			{Name: "history", Schema: &schema.Array{Items: &schema.String{}, MinItems: ptr(1)}},
		},
	}

	return &asyncapi.Spec{
		Info: asyncapi.Info{Title: "AVR MQTT API", Version: "1.2.0"},
		Channels: []asyncapi.Channel{
			{Topic: "avr/pcm/set_servo_open_close", Subscribe: &asyncapi.Operation{MessageRef: "#/components/messages/AVRPCMServo"}},
			{Topic: "avr/pcm/set_base_color", Publish: &asyncapi.Operation{MessageRef: "#/components/messages/AVRPCMColor"}},
			{Topic: "avr/status/light", Subscribe: &asyncapi.Operation{MessageRef: "#/components/messages/AVRPCMColor"}},
		},
		Messages: []asyncapi.Message{
			{Name: "AVRPCMServo", Payload: servo},
			{Name: "AVRPCMColor", Payload: color},
		},
	}
}

// Unit compiles Spec.
func Unit(t *testing.T) *compile.Unit {
	t.Helper()
	unit, err := compile.New().Compile(context.Background(), Spec())
	require.NoError(t, err)
	return unit
}
