// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package asyncapi

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrCircularRef is returned when a $ref chain points back to itself.
var ErrCircularRef = errors.New("circular $ref")

// refResolver replaces $ref mappings with their targets. Internal references
// ("#/...") are looked up in the document that contains them; external ones
// ("file.yaml#/...") are loaded from fsys relative to that document.
type refResolver struct {
	fsys fs.FS
	docs map[string]*yaml.Node // keyed by file path, "" for an unnamed root
}

func newRefResolver(fsys fs.FS, rootName string, root *yaml.Node) *refResolver {
	return &refResolver{
		fsys: fsys,
		docs: map[string]*yaml.Node{rootName: root},
	}
}

// Resolve returns a copy of node with every reachable $ref replaced.
// The input tree is not modified.
func (r *refResolver) Resolve(node *yaml.Node, file string) (*yaml.Node, error) {
	return r.resolve(node, file, nil)
}

func (r *refResolver) resolve(node *yaml.Node, file string, stack []string) (*yaml.Node, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.AliasNode:
		return r.resolve(node.Alias, file, stack)

	case yaml.MappingNode:
		if ref, ok := refOf(node); ok {
			target, targetFile, key, err := r.lookup(ref, file)
			if err != nil {
				return nil, fmt.Errorf("$ref %q: %w", ref, err)
			}
			if slices.Contains(stack, key) {
				return nil, fmt.Errorf("%w: %s", ErrCircularRef, strings.Join(append(stack, key), " -> "))
			}
			return r.resolve(target, targetFile, append(stack, key))
		}
		return r.resolveChildren(node, file, stack, 1)

	case yaml.SequenceNode:
		return r.resolveChildren(node, file, stack, 0)

	default:
		return node, nil
	}
}

// resolveChildren copies node and resolves its content. For mappings only
// values (odd indexes) are resolved.
func (r *refResolver) resolveChildren(node *yaml.Node, file string, stack []string, start int) (*yaml.Node, error) {
	step := 1
	if node.Kind == yaml.MappingNode {
		step = 2
	}

	out := *node
	out.Content = slices.Clone(node.Content)
	for i := start; i < len(out.Content); i += step {
		resolved, err := r.resolve(out.Content[i], file, stack)
		if err != nil {
			return nil, err
		}
		out.Content[i] = resolved
	}
	return &out, nil
}

// lookup finds the node a reference points at. It returns the node, the file
// that holds it and a key identifying the target for cycle detection.
func (r *refResolver) lookup(ref, file string) (*yaml.Node, string, string, error) {
	filePart, fragment, _ := strings.Cut(ref, "#")

	targetFile := file
	if filePart != "" {
		targetFile = path.Join(path.Dir(file), filePart)
	}

	doc, err := r.document(targetFile)
	if err != nil {
		return nil, "", "", err
	}

	target, err := walkPointer(doc, fragment)
	if err != nil {
		return nil, "", "", err
	}
	return target, targetFile, targetFile + "#" + fragment, nil
}

func (r *refResolver) document(file string) (*yaml.Node, error) {
	if doc, ok := r.docs[file]; ok {
		return doc, nil
	}
	if r.fsys == nil {
		return nil, fmt.Errorf("external reference to %q needs a filesystem", file)
	}

	data, err := fs.ReadFile(r.fsys, file)
	if err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%s: empty document", file)
	}

	r.docs[file] = root.Content[0]
	return root.Content[0], nil
}

// walkPointer follows a JSON pointer (RFC 6901) through a YAML node tree.
func walkPointer(doc *yaml.Node, pointer string) (*yaml.Node, error) {
	if pointer == "" || pointer == "/" {
		return doc, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q", pointer)
	}

	cur := doc
	for _, token := range strings.Split(pointer[1:], "/") {
		token, err := unescapeToken(token)
		if err != nil {
			return nil, err
		}
		for cur.Kind == yaml.AliasNode {
			cur = cur.Alias
		}

		switch cur.Kind {
		case yaml.MappingNode:
			next := findYAMLMappingKey(cur, token)
			if next == nil {
				return nil, fmt.Errorf("pointer %q: key %q not found", pointer, token)
			}
			cur = next
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(cur.Content) {
				return nil, fmt.Errorf("pointer %q: bad index %q", pointer, token)
			}
			cur = cur.Content[idx]
		default:
			return nil, fmt.Errorf("pointer %q: cannot descend into scalar at %q", pointer, token)
		}
	}
	return cur, nil
}

func unescapeToken(token string) (string, error) {
	token, err := url.PathUnescape(token)
	if err != nil {
		return "", err
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~"), nil
}

// refOf reports the $ref target of a mapping node. Sibling keys are ignored.
func refOf(node *yaml.Node) (string, bool) {
	ref := findYAMLMappingKey(node, "$ref")
	if ref == nil || ref.Kind != yaml.ScalarNode {
		return "", false
	}
	return ref.Value, true
}
