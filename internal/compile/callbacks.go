// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package compile

import "sort"

// PayloadClasses returns the distinct class names bound to any topic, sorted.
func PayloadClasses(topics map[string]string) []string {
	seen := make(map[string]bool, len(topics))
	classes := make([]string, 0, len(topics))
	for _, class := range topics {
		if !seen[class] {
			seen[class] = true
			classes = append(classes, class)
		}
	}
	sort.Strings(classes)
	return classes
}

// EmitCallbacks returns one handler signature per distinct class name.
func EmitCallbacks(classNames []string) []Callback {
	seen := make(map[string]bool, len(classNames))
	callbacks := make([]Callback, 0, len(classNames))
	for _, class := range classNames {
		if seen[class] {
			continue
		}
		seen[class] = true
		callbacks = append(callbacks, Callback{
			Name:    CallbackName(class),
			Payload: class,
		})
	}
	sort.Slice(callbacks, func(i, j int) bool {
		return callbacks[i].Payload < callbacks[j].Payload
	})
	return callbacks
}
