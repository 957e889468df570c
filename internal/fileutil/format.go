package fileutil

import (
	"bytes"
	"strings"
)

// HasYAMLExtension checks if a file path has a YAML extension (.yaml or .yml)
func HasYAMLExtension(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// IsYAML detects whether data looks like YAML rather than JSON by inspecting
// the first non-whitespace byte. JSON documents start with '{' or '['; empty
// data defaults to JSON.
func IsYAML(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] != '{' && trimmed[0] != '['
}
