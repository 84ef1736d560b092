package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		wire     string
		expected string
	}{
		{name: "string", wire: `"abc"`, expected: `"abc"`},
		{name: "integer", wire: `7`, expected: `7`},
		{name: "large integer stays integral", wire: `1234567890`, expected: `1234567890`},
		{name: "fractional number", wire: `1.5`, expected: `1.5`},
		{name: "null", wire: `null`, expected: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &id))

			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestID_UnmarshalRejectsStructuredValues(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x": 1}`), &id))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &id))
}

func TestID_ZeroValueIsNull(t *testing.T) {
	var id ID
	assert.True(t, id.IsNull())

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestID_Equal(t *testing.T) {
	assert.True(t, NewID(7).Equal(7))
	assert.True(t, NewID(7).Equal(NewID(float64(7))))
	assert.True(t, NewID("a").Equal("a"))
	assert.False(t, NewID(7).Equal("7"))
	assert.True(t, NewID(nil).Equal(NewID(nil)))
}

func TestResponse_MarshalExactlyOneOfResultOrError(t *testing.T) {
	t.Run("success with null result still emits result", func(t *testing.T) {
		out, err := json.Marshal(NewResponse(1, nil, nil))
		require.NoError(t, err)
		assert.Equal(t, `{"jsonrpc":"2.0","result":null,"id":1}`, string(out))
	})

	t.Run("error response has no result key", func(t *testing.T) {
		out, err := json.Marshal(NewResponse(1, nil, NewError(ErrInternal, nil)))
		require.NoError(t, err)
		assert.Equal(t, `{"jsonrpc":"2.0","error":{"code":-32603,"message":"Internal error"},"id":1}`, string(out))
	})

	t.Run("missing id marshals as null", func(t *testing.T) {
		out, err := json.Marshal(NewResponse(nil, "ok", nil))
		require.NoError(t, err)
		assert.Equal(t, `{"jsonrpc":"2.0","result":"ok","id":null}`, string(out))
	})
}

func TestResponse_Unmarshal(t *testing.T) {
	var response Response
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","result":{"x":1},"id":3}`), &response))
	assert.Equal(t, Version, response.Version)
	assert.True(t, response.ID.Equal(3))
	assert.Nil(t, response.Error)
}

func TestRequest_Unmarshal(t *testing.T) {
	t.Run("captures the raw line", func(t *testing.T) {
		line := `{"jsonrpc":"2.0","method":"tools/list","params":{"cursor":"c"},"id":1,"unknown":true}`
		var request Request
		require.NoError(t, json.Unmarshal([]byte(line), &request))

		assert.Equal(t, "tools/list", request.Method)
		assert.True(t, request.ID.Equal(1))
		assert.JSONEq(t, line, string(request.Raw()))
	})

	t.Run("wrong-typed fields degrade instead of failing", func(t *testing.T) {
		var request Request
		require.NoError(t, json.Unmarshal([]byte(`{"method": 42, "id": {"bad": true}}`), &request))
		assert.Empty(t, request.Method)
		assert.True(t, request.ID.IsNull())
	})

	t.Run("non-object input fails", func(t *testing.T) {
		var request Request
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &request))
		assert.Error(t, json.Unmarshal([]byte(`"text"`), &request))
	})
}

func TestNotification_Marshal(t *testing.T) {
	out, err := json.Marshal(NewNotification("log", map[string]interface{}{"level": "info"}))
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","method":"log","params":{"level":"info"}}`, string(out))
}

func TestNewError(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		message string
	}{
		{ErrParse, "Parse error"},
		{ErrInvalidRequest, "Invalid Request"},
		{ErrMethodNotFound, "Method not found"},
		{ErrInternal, "Internal error"},
		{ErrServer, "Server error"},
		{ErrNetwork, "Network error"},
		{ErrUpstream, "Upstream error"},
		{ErrorCode(-32050), "Server error"},
		{ErrorCode(1), "Unknown error"},
	}

	for _, tt := range tests {
		err := NewError(tt.code, nil)
		assert.Equal(t, tt.code, err.Code)
		assert.Equal(t, tt.message, err.Message)
	}
}
