package coder

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FlattenLeafKeys returns the dot-joined paths of every leaf in a decoded
// locale object, sorted. Array values are leaves: components index into
// them, they are not traversed.
func FlattenLeafKeys(data map[string]any) []string {
	var keys []string
	var walk func(prefix string, node any)
	walk = func(prefix string, node any) {
		obj, ok := node.(map[string]any)
		if !ok {
			keys = append(keys, prefix)
			return
		}
		for k, v := range obj {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			walk(p, v)
		}
	}
	walk("", data)
	sort.Strings(keys)
	return keys
}

// ArrayLeafPaths returns the sorted paths of every array-typed leaf.
func ArrayLeafPaths(data map[string]any) []string {
	var paths []string
	var walk func(prefix string, node any)
	walk = func(prefix string, node any) {
		switch v := node.(type) {
		case map[string]any:
			for k, child := range v {
				p := k
				if prefix != "" {
					p = prefix + "." + k
				}
				walk(p, child)
			}
		case []any:
			paths = append(paths, prefix)
		}
	}
	walk("", data)
	sort.Strings(paths)
	return paths
}

// ValidateLocaleSymmetry checks the structural contract between two locale
// objects: every array-typed leaf in the reference locale must be an
// array-typed (not object-typed) leaf at the same path in the other.
// Components .map() and index these values positionally, so an asymmetry
// here only surfaces as a render-time failure.
func ValidateLocaleSymmetry(reference, other map[string]any) error {
	for _, path := range ArrayLeafPaths(reference) {
		node := lookupPath(other, path)
		if node == nil {
			return fmt.Errorf("locale missing array key %q", path)
		}
		if _, ok := node.([]any); !ok {
			return fmt.Errorf("locale key %q is %T, want array", path, node)
		}
	}
	return nil
}

func lookupPath(data map[string]any, path string) any {
	var node any = data
	for _, part := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return node
}

// decodeLocale parses generated locale JSON into a map, surfacing the
// decode error with the locale name attached.
func decodeLocale(locale, jsonStr string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, fmt.Errorf("locale %s: %w", locale, err)
	}
	return data, nil
}

// marshalLocale renders locale data back to stable, indented JSON so
// successive generations diff cleanly.
func marshalLocale(data map[string]any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out) + "\n"
}
