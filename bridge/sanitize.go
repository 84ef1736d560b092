package bridge

import (
	"fmt"
	"regexp"
)

// maxToolNameLength is the longest tool name the local side accepts.
const maxToolNameLength = 64

var invalidToolNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeToolNames rewrites the name of every tool descriptor in a result
// payload to fit [A-Za-z0-9_-] and the length limit, substituting a
// positional tool_<n> name when nothing survives. Descriptors that are not
// objects, and payloads without a tool list, pass through untouched. The
// input is never mutated; callers get a fresh payload.
func SanitizeToolNames(result interface{}) interface{} {
	object, ok := result.(map[string]interface{})
	if !ok {
		return result
	}
	tools, ok := object["tools"].([]interface{})
	if !ok {
		return result
	}

	sanitized := make([]interface{}, len(tools))
	for i, tool := range tools {
		descriptor, ok := tool.(map[string]interface{})
		if !ok {
			sanitized[i] = tool
			continue
		}

		name, _ := descriptor["name"].(string)
		clean := invalidToolNameChars.ReplaceAllString(name, "_")
		if len(clean) > maxToolNameLength {
			clean = clean[:maxToolNameLength]
		}
		if clean == "" {
			clean = fmt.Sprintf("tool_%d", i+1)
		}

		replacement := make(map[string]interface{}, len(descriptor))
		for key, value := range descriptor {
			replacement[key] = value
		}
		replacement["name"] = clean
		sanitized[i] = replacement
	}

	replaced := make(map[string]interface{}, len(object))
	for key, value := range object {
		replaced[key] = value
	}
	replaced["tools"] = sanitized
	return replaced
}

// sanitizePayload applies SanitizeToolNames to the result field of a
// decoded remote payload, leaving everything else as is.
func sanitizePayload(payload interface{}) interface{} {
	object, ok := payload.(map[string]interface{})
	if !ok {
		return payload
	}
	result, present := object["result"]
	if !present {
		return payload
	}

	cleaned := SanitizeToolNames(result)
	replaced := make(map[string]interface{}, len(object))
	for key, value := range object {
		replaced[key] = value
	}
	replaced["result"] = cleaned
	return replaced
}
