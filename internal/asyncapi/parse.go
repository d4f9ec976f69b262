// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package asyncapi

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/bellflight/asyncgen/internal/schema"
	gojson "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Parser decodes an AsyncAPI document from an io.Reader.
type Parser struct {
	check func([]byte) error
}

var (
	// JSON parses AsyncAPI documents from JSON.
	JSON = Parser{checkJSON}
	// YAML parses AsyncAPI documents from YAML.
	YAML = Parser{}
)

// ParserFor picks a parser from a file extension.
func ParserFor(filePath string) (Parser, error) {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return Parser{}, fmt.Errorf("unsupported spec format %q", path.Ext(filePath))
	}
}

// LoadFile reads and parses the document name from fsys. Relative external
// references are resolved against the directory of name.
func LoadFile(fsys fs.FS, name string) (*Spec, error) {
	p, err := ParserFor(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return p.parse(data, fsys, name)
}

// Parse decodes a document from r and dereferences every message payload.
// fsys is used for external file references and may be nil when there are none.
func (p Parser) Parse(r io.Reader, fsys fs.FS) (*Spec, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.parse(data, fsys, "")
}

func (p Parser) parse(data []byte, fsys fs.FS, name string) (*Spec, error) {
	if p.check != nil {
		if err := p.check(data); err != nil {
			return nil, err
		}
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	var raw rawSpec
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}

	spec := &Spec{
		AsyncAPI: raw.AsyncAPI,
		Info:     Info(raw.Info),
	}

	if channels := findYAMLMappingKey(doc, "channels"); channels != nil {
		spec.Channels, err = parseChannels(channels)
		if err != nil {
			return nil, err
		}
	}

	refs := newRefResolver(fsys, name, doc)
	if messages := findYAMLMappingKey(findYAMLMappingKey(doc, "components"), "messages"); messages != nil {
		spec.Messages, err = parseMessages(messages, refs, name)
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("document root must be a mapping")
	}
	return doc, nil
}

// parseChannels keeps message references as written; they are only used for naming.
func parseChannels(node *yaml.Node) ([]Channel, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("channels must be a mapping")
	}
	channels := make([]Channel, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		topic := node.Content[i].Value
		var rc rawChannel
		if err := node.Content[i+1].Decode(&rc); err != nil {
			return nil, fmt.Errorf("channel %q: %w", topic, err)
		}
		channels = append(channels, Channel{
			Topic:       topic,
			Description: rc.Description,
			Subscribe:   rc.Subscribe.operation(),
			Publish:     rc.Publish.operation(),
		})
	}
	return channels, nil
}

func parseMessages(node *yaml.Node, refs *refResolver, file string) ([]Message, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("components.messages must be a mapping")
	}
	messages := make([]Message, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		resolved, err := refs.Resolve(node.Content[i+1], file)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", name, err)
		}

		var rm rawMessage
		if err := resolved.Decode(&rm); err != nil {
			return nil, fmt.Errorf("message %q: %w", name, err)
		}

		payloadNode := findYAMLMappingKey(resolved, "payload")
		if payloadNode == nil {
			return nil, fmt.Errorf("message %q: no payload", name)
		}
		payload, err := decodePayload(payloadNode)
		if err != nil {
			return nil, fmt.Errorf("message %q: payload: %w", name, err)
		}

		messages = append(messages, Message{
			Name:        name,
			Title:       rm.Title,
			Description: rm.Description,
			Payload:     payload,
		})
	}
	return messages, nil
}

// decodePayload converts a dereferenced payload node into a schema.Node,
// keeping property order from the YAML node.
func decodePayload(node *yaml.Node) (schema.Node, error) {
	keyOrder := make(map[string][]string)
	schema.ExtractYAMLNodeKeyOrder(node, "", keyOrder)

	var value any
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	data, err := gojson.Marshal(value)
	if err != nil {
		return nil, err
	}

	var js jsonschema.Schema
	if err := gojson.Unmarshal(data, &js); err != nil {
		return nil, err
	}
	return schema.FromJSONSchema(&js, keyOrder)
}

func checkJSON(data []byte) error {
	var v any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// findYAMLMappingKey finds the value node for a given key in a YAML mapping node.
func findYAMLMappingKey(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

type rawSpec struct {
	AsyncAPI string  `yaml:"asyncapi"`
	Info     rawInfo `yaml:"info"`
}

type rawInfo struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

type rawChannel struct {
	Description string        `yaml:"description,omitempty"`
	Subscribe   *rawOperation `yaml:"subscribe,omitempty"`
	Publish     *rawOperation `yaml:"publish,omitempty"`
}

type rawOperation struct {
	Summary string `yaml:"summary,omitempty"`
	Message struct {
		Ref string `yaml:"$ref"`
	} `yaml:"message"`
}

func (o *rawOperation) operation() *Operation {
	if o == nil {
		return nil
	}
	return &Operation{Summary: o.Summary, MessageRef: o.Message.Ref}
}

type rawMessage struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
}
