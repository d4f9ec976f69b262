// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package schema

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractYAMLNodeKeyOrder records, for every "properties" mapping under node,
// its keys in document order. Paths are dot-joined mapping keys; sequence
// elements do not add a path segment.
func ExtractYAMLNodeKeyOrder(node *yaml.Node, path string, result map[string][]string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.AliasNode:
		ExtractYAMLNodeKeyOrder(node.Alias, path, result)
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range node.Content {
			ExtractYAMLNodeKeyOrder(c, path, result)
		}
	case yaml.MappingNode:
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			keys = append(keys, key)
			newPath := key
			if path != "" {
				newPath = path + "." + key
			}
			ExtractYAMLNodeKeyOrder(node.Content[i+1], newPath, result)
		}
		if path == "properties" || strings.HasSuffix(path, ".properties") {
			result[path] = keys
		}
	}
}

// OrderedKeys returns the keys of props in the order recorded under path,
// followed by any unrecorded keys in sorted order.
func OrderedKeys[V any](props map[string]V, keyOrder map[string][]string, path string) []string {
	seen := make(map[string]bool, len(props))
	result := make([]string, 0, len(props))
	for _, key := range keyOrder[path] {
		if _, ok := props[key]; ok && !seen[key] {
			result = append(result, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range props {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(result, rest...)
}
