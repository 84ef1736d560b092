package jsonrpc

import "encoding/json"

// Version is the JSON-RPC protocol version
const Version = "2.0"

// Message is a single outbound frame: either a Response or a Notification.
type Message interface {
	message()
}

// Result represents an arbitrary result value
type Result interface{}

// Response represents a JSON-RPC response object
type Response struct {
	Version string
	Result  Result
	Error   *Error
	ID      ID
}

// NewResponse creates a new Response object
func NewResponse(id interface{}, result Result, err *Error) Response {
	return Response{
		Version: Version,
		ID:      NewID(id),
		Result:  result,
		Error:   err,
	}
}

func (Response) message() {}

var _ json.Marshaler = Response{}

// MarshalJSON implements json.Marshaler. A response always carries an
// explicit id (null when none was known) and exactly one of result or
// error, even when the result value itself is null.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Version string `json:"jsonrpc"`
			Error   *Error `json:"error"`
			ID      ID     `json:"id"`
		}{r.Version, r.Error, r.ID})
	}
	return json.Marshal(struct {
		Version string `json:"jsonrpc"`
		Result  Result `json:"result"`
		ID      ID     `json:"id"`
	}{r.Version, r.Result, r.ID})
}

var _ json.Unmarshaler = &Response{}

// UnmarshalJSON implements json.Unmarshaler
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version string `json:"jsonrpc"`
		Result  Result `json:"result"`
		Error   *Error `json:"error"`
		ID      ID     `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Version = raw.Version
	r.Result = raw.Result
	r.Error = raw.Error
	r.ID = raw.ID
	return nil
}

// Notification represents a JSON-RPC notification object: a method call
// that expects no response and carries no id.
type Notification struct {
	Version string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// NewNotification creates a new Notification object
func NewNotification(method string, params interface{}) Notification {
	return Notification{
		Version: Version,
		Method:  method,
		Params:  params,
	}
}

func (Notification) message() {}
