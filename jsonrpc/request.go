package jsonrpc

import "encoding/json"

// Request represents a JSON-RPC request or notification object
type Request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      ID              `json:"id"`

	raw []byte
}

// NewRequest creates a new Request object
func NewRequest(method string, params json.RawMessage, id interface{}) Request {
	return Request{
		Version: Version,
		Method:  method,
		Params:  params,
		ID:      NewID(id),
	}
}

// Raw returns the original wire bytes of the request, so it can be
// forwarded verbatim. Falls back to re-encoding when the request was
// constructed rather than decoded.
func (r Request) Raw() []byte {
	if r.raw != nil {
		return r.raw
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	return data
}

var _ json.Unmarshaler = &Request{}

// UnmarshalJSON implements json.Unmarshaler. The line must be a JSON
// object; fields of the wrong type are left at their zero value rather
// than failing the whole message, so that a request with, say, a numeric
// method is still answered with an invalid request error instead of being
// dropped on the floor.
func (r *Request) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.raw = append([]byte(nil), data...)

	if v, ok := fields["jsonrpc"]; ok {
		_ = json.Unmarshal(v, &r.Version)
	}
	if v, ok := fields["method"]; ok {
		_ = json.Unmarshal(v, &r.Method)
	}
	if v, ok := fields["params"]; ok {
		r.Params = v
	}
	if v, ok := fields["id"]; ok {
		_ = json.Unmarshal(v, &r.ID)
	}
	return nil
}
