package jsonrpc

import "context"

// Handler defines the interface for handling JSON-RPC requests. A single
// request may produce more than one outbound frame (a server-initiated
// notification followed by the response), so handlers return the frames
// to write, in order.
type Handler interface {
	Handle(ctx context.Context, request Request) []Message
}
