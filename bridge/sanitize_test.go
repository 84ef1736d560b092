package bridge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeToolNames(t *testing.T) {
	tests := []struct {
		name     string
		result   interface{}
		expected interface{}
	}{
		{
			name:     "non-object passes through",
			result:   "just text",
			expected: "just text",
		},
		{
			name:     "object without tools passes through",
			result:   map[string]interface{}{"items": []interface{}{"a"}},
			expected: map[string]interface{}{"items": []interface{}{"a"}},
		},
		{
			name: "invalid characters replaced",
			result: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{"name": "My Tool!!"},
				},
			},
			expected: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{"name": "My_Tool__"},
				},
			},
		},
		{
			name: "empty name gets a positional fallback",
			result: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{"name": "fine"},
					map[string]interface{}{"name": ""},
				},
			},
			expected: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{"name": "fine"},
					map[string]interface{}{"name": "tool_2"},
				},
			},
		},
		{
			name: "other descriptor fields are preserved",
			result: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{
						"name":        "a.b.c",
						"description": "does things",
						"inputSchema": map[string]interface{}{"type": "object"},
					},
				},
				"nextCursor": "abc",
			},
			expected: map[string]interface{}{
				"tools": []interface{}{
					map[string]interface{}{
						"name":        "a_b_c",
						"description": "does things",
						"inputSchema": map[string]interface{}{"type": "object"},
					},
				},
				"nextCursor": "abc",
			},
		},
		{
			name: "non-object descriptors are left alone",
			result: map[string]interface{}{
				"tools": []interface{}{"not a descriptor", map[string]interface{}{"name": "ok"}},
			},
			expected: map[string]interface{}{
				"tools": []interface{}{"not a descriptor", map[string]interface{}{"name": "ok"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeToolNames(tt.result))
		})
	}
}

func TestSanitizeToolNames_Truncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	result := SanitizeToolNames(map[string]interface{}{
		"tools": []interface{}{map[string]interface{}{"name": long}},
	})

	tools := result.(map[string]interface{})["tools"].([]interface{})
	name := tools[0].(map[string]interface{})["name"].(string)
	assert.Len(t, name, 64)
	assert.Equal(t, strings.Repeat("a", 64), name)
}

func TestSanitizeToolNames_Idempotent(t *testing.T) {
	result := map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{"name": "My Tool!!"},
			map[string]interface{}{"name": ""},
			map[string]interface{}{"name": strings.Repeat("x y", 40)},
		},
	}

	once := SanitizeToolNames(result)
	twice := SanitizeToolNames(once)
	assert.Equal(t, once, twice)
}

func TestSanitizeToolNames_PureTransform(t *testing.T) {
	original := map[string]interface{}{
		"tools": []interface{}{map[string]interface{}{"name": "Dirty Name"}},
	}

	sanitized := SanitizeToolNames(original)
	require.NotEqual(t, original, sanitized)
	assert.Equal(t, "Dirty Name", original["tools"].([]interface{})[0].(map[string]interface{})["name"])
}

func TestSanitizePayload(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(1),
		"result": map[string]interface{}{
			"tools": []interface{}{map[string]interface{}{"name": "a b"}},
		},
	}

	cleaned := sanitizePayload(payload).(map[string]interface{})
	tools := cleaned["result"].(map[string]interface{})["tools"].([]interface{})
	assert.Equal(t, "a_b", tools[0].(map[string]interface{})["name"])

	// payloads without a result are untouched
	errPayload := map[string]interface{}{"error": map[string]interface{}{"message": "x"}}
	assert.Equal(t, errPayload, sanitizePayload(errPayload))
}
