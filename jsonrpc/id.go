package jsonrpc

import (
	"encoding/json"
	"fmt"
	"math"
)

// ID represents a JSON-RPC ID: a string, a number, or null. The value is
// opaque and never interpreted; it only correlates a request with its
// response. A null ID is legal here because every outbound response must
// carry an explicit id field even when the triggering request had none.
type ID struct {
	value interface{}
}

// NewID creates a JSON-RPC ID from a raw decoded value. Integral floats
// (the shape encoding/json produces for JSON numbers) are normalized to
// int64 so they round-trip without a fractional part. Anything that is not
// a string or number becomes the null ID.
func NewID(id interface{}) ID {
	switch v := id.(type) {
	case ID:
		return v
	case string:
		return ID{value: v}
	case int:
		return ID{value: int64(v)}
	case int32:
		return ID{value: int64(v)}
	case int64:
		return ID{value: v}
	case float32:
		return NewID(float64(v))
	case float64:
		if v == math.Trunc(v) {
			return ID{value: int64(v)}
		}
		return ID{value: v}
	default:
		return ID{}
	}
}

func (id ID) Value() interface{} {
	return id.value
}

// IsNull reports whether the ID is the null ID
func (id ID) IsNull() bool {
	return id.value == nil
}

// Equal compares two IDs for equality
func (id ID) Equal(other interface{}) bool {
	switch v := other.(type) {
	case ID:
		return id.value == v.value
	default:
		return id.value == NewID(other).value
	}
}

var _ fmt.GoStringer = ID{}

// GoString implements fmt.GoStringer
func (id ID) GoString() string {
	switch v := id.value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

var _ json.Marshaler = ID{}

// MarshalJSON implements json.Marshaler. The null ID marshals as null.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

var _ json.Unmarshaler = &ID{}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string, float64, nil:
		*id = NewID(v)
		return nil
	default:
		return fmt.Errorf("id must be string, number, or null, got %T", raw)
	}
}
