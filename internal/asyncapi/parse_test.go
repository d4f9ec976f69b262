// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package asyncapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bellflight/asyncgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyNames(obj *schema.Object) []string {
	names := make([]string, len(obj.Properties))
	for i, p := range obj.Properties {
		names[i] = p.Name
	}
	return names
}

func TestParse_ServoMessage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		parser Parser
	}{
		{"YAML", "asyncapi.yml", YAML},
		{"JSON", "asyncapi.json", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := os.Open(filepath.Join("testdata", tt.file))
			require.NoError(t, err)
			defer f.Close() //nolint:errcheck

			spec, err := tt.parser.Parse(f, os.DirFS("testdata"))
			require.NoError(t, err)

			assert.Equal(t, "2.3.0", spec.AsyncAPI)
			assert.Equal(t, "AVR MQTT API", spec.Info.Title)
			assert.Equal(t, "1.2.0", spec.Info.Version)

			msg, ok := spec.Message("AVRPCMSetServoOpenClose")
			require.True(t, ok, "message not found")

			obj, ok := msg.Payload.(*schema.Object)
			require.True(t, ok)
			assert.True(t, obj.Closed)
			assert.Equal(t, []string{"servo", "action", "servo_state"}, propertyNames(obj))
			assert.True(t, obj.IsRequired("servo"))
			assert.False(t, obj.IsRequired("servo_state"))

			servo, ok := obj.Properties[0].Schema.(*schema.Number)
			require.True(t, ok)
			assert.True(t, servo.Integer)
			require.NotNil(t, servo.Maximum)
			assert.InDelta(t, 15, *servo.Maximum, 0)

			action, ok := obj.Properties[1].Schema.(*schema.String)
			require.True(t, ok)
			assert.Equal(t, []string{"open", "close"}, action.Enum)

			state, ok := obj.Properties[2].Schema.(*schema.Object)
			require.True(t, ok)
			assert.True(t, state.Closed)
		})
	}
}

func TestParse_ResolvesInternalRef(t *testing.T) {
	spec := loadTestSpec(t)

	msg, ok := spec.Message("AVRPCMSetServoOpenClose")
	require.True(t, ok)

	servo := msg.Payload.(*schema.Object).Properties[0].Schema
	assert.Equal(t, "Servo number", servo.Description())
}

func TestParse_ResolvesExternalRef(t *testing.T) {
	spec := loadTestSpec(t)

	msg, ok := spec.Message("AVRPCMSetBaseColor")
	require.True(t, ok)

	obj, ok := msg.Payload.(*schema.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"wrgb", "brightness"}, propertyNames(obj))

	// back into the root document from the external file
	wrgb, ok := obj.Properties[0].Schema.(*schema.Array)
	require.True(t, ok)
	n, fixed := wrgb.FixedLength()
	assert.True(t, fixed)
	assert.Equal(t, 4, n)

	// local to the external file
	level, ok := obj.Properties[1].Schema.(*schema.Number)
	require.True(t, ok)
	assert.Equal(t, "1", string(level.Default))
}

func TestParse_ChannelsKeepRawRefs(t *testing.T) {
	spec := loadTestSpec(t)

	require.Len(t, spec.Channels, 3)
	assert.Equal(t, "avr/pcm/set_servo_open_close", spec.Channels[0].Topic)
	assert.Equal(t, "Open or close a servo.", spec.Channels[0].Description)
	require.NotNil(t, spec.Channels[0].Subscribe)
	assert.Nil(t, spec.Channels[0].Publish)
	assert.Equal(t, "Servo command", spec.Channels[0].Subscribe.Summary)
	assert.Equal(t, "#/components/messages/AVRPCMSetServoOpenClose", spec.Channels[0].Subscribe.MessageRef)

	require.NotNil(t, spec.Channels[1].Publish)
	assert.Nil(t, spec.Channels[1].Subscribe)
	assert.Equal(t, "#/components/messages/AVRPCMSetBaseColor", spec.Channels[1].Publish.MessageRef)
}

func TestParse_MessagesInDeclaredOrder(t *testing.T) {
	spec := loadTestSpec(t)

	require.Len(t, spec.Messages, 2)
	assert.Equal(t, "AVRPCMSetServoOpenClose", spec.Messages[0].Name)
	assert.Equal(t, "Set servo open/close", spec.Messages[0].Title)
	assert.Equal(t, "AVRPCMSetBaseColor", spec.Messages[1].Name)
}

func TestParse_CircularRef(t *testing.T) {
	_, err := LoadFile(os.DirFS("testdata"), "circular.yml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircularRef)
	assert.Contains(t, err.Error(), `message "Loop"`)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		parser  Parser
		input   string
		wantErr string
	}{
		{
			name:    "invalid JSON",
			parser:  JSON,
			input:   `{"asyncapi": `,
			wantErr: "invalid JSON",
		},
		{
			name:    "root is not a mapping",
			parser:  YAML,
			input:   "- a\n- b\n",
			wantErr: "document root must be a mapping",
		},
		{
			name:    "empty document",
			parser:  YAML,
			input:   "",
			wantErr: "empty document",
		},
		{
			name:   "message without payload",
			parser: YAML,
			input: `
components:
  messages:
    Foo:
      title: no payload
`,
			wantErr: `message "Foo": no payload`,
		},
		{
			name:   "dangling ref",
			parser: YAML,
			input: `
components:
  messages:
    Foo:
      payload:
        $ref: "#/components/schemas/Missing"
`,
			wantErr: `key "schemas" not found`,
		},
		{
			name:   "external ref without filesystem",
			parser: YAML,
			input: `
components:
  messages:
    Foo:
      payload:
        $ref: "other.yaml"
`,
			wantErr: "needs a filesystem",
		},
		{
			name:   "array without items",
			parser: YAML,
			input: `
components:
  messages:
    Foo:
      payload:
        type: object
        additionalProperties: false
        properties:
          xs:
            type: array
`,
			wantErr: "array schema has no items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse(strings.NewReader(tt.input), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_NilReader(t *testing.T) {
	_, err := YAML.Parse(nil, nil)
	assert.Error(t, err)
}

func TestParse_NoComponents(t *testing.T) {
	spec, err := YAML.Parse(strings.NewReader("asyncapi: 2.3.0\nchannels: {}\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, spec.Messages)
	assert.Empty(t, spec.Channels)
}

func TestLoadFile_RelativeToDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"api/asyncapi.yaml": {Data: []byte(`
components:
  messages:
    Ping:
      payload:
        $ref: "schemas/ping.yaml#/Ping"
`)},
		"api/schemas/ping.yaml": {Data: []byte(`
Ping:
  type: object
  additionalProperties: false
  properties:
    seq:
      type: integer
`)},
	}

	spec, err := LoadFile(fsys, "api/asyncapi.yaml")
	require.NoError(t, err)
	require.Len(t, spec.Messages, 1)

	obj, ok := spec.Messages[0].Payload.(*schema.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"seq"}, propertyNames(obj))
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Parser
		wantErr bool
	}{
		{"asyncapi.yml", YAML, false},
		{"api/asyncapi.YAML", YAML, false},
		{"asyncapi.json", JSON, false},
		{"asyncapi.toml", Parser{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParserFor(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.check == nil, p.check == nil)
		})
	}
}

func TestWalkPointer_Escapes(t *testing.T) {
	doc, err := parseDocument([]byte(`
"a/b":
  "c~d":
    - zero
    - one
`))
	require.NoError(t, err)

	node, err := walkPointer(doc, "/a~1b/c~0d/1")
	require.NoError(t, err)
	assert.Equal(t, "one", node.Value)

	_, err = walkPointer(doc, "/a~1b/c~0d/7")
	assert.Error(t, err)

	_, err = walkPointer(doc, "a")
	assert.Error(t, err)
}

func loadTestSpec(t *testing.T) *Spec {
	t.Helper()
	spec, err := LoadFile(os.DirFS("testdata"), "asyncapi.yml")
	require.NoError(t, err)
	return spec
}
