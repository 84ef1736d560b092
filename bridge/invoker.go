package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/loopwork-ai/mcp-bridge/jsonrpc"
)

// DefaultTimeout bounds each upstream call unless configured otherwise.
const DefaultTimeout = 60 * time.Second

// Invoker performs a single outbound call per inbound message. It never
// retries and never lets a transport-level failure escape as anything but
// a normalized JSON-RPC error.
type Invoker struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// NewInvoker creates an Invoker for the given endpoint
func NewInvoker(endpoint string, client *http.Client, timeout time.Duration, logger *slog.Logger) *Invoker {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Invoker{
		endpoint: endpoint,
		client:   client,
		timeout:  timeout,
		logger:   logger,
	}
}

// Call posts the raw JSON-RPC message to the configured endpoint and
// returns the decoded response payload. Failures come back as a
// *jsonrpc.Error: network failures and timeouts with the network error
// code and the underlying message as data, non-2xx statuses with the
// upstream error code and the raw body as data, undecodable bodies with
// the parse error code.
func (inv *Invoker) Call(ctx context.Context, message []byte) (interface{}, *jsonrpc.Error) {
	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inv.endpoint, bytes.NewReader(message))
	if err != nil {
		return nil, &jsonrpc.Error{
			Code:    jsonrpc.ErrNetwork,
			Message: "invalid upstream request",
			Data:    err.Error(),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := inv.client.Do(req)
	if err != nil {
		reason := "upstream request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "upstream request timed out"
		}
		inv.logger.Warn("upstream call failed", "error", err)
		return nil, &jsonrpc.Error{
			Code:    jsonrpc.ErrNetwork,
			Message: reason,
			Data:    err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		inv.logger.Warn("error reading upstream response", "error", err)
		return nil, &jsonrpc.Error{
			Code:    jsonrpc.ErrNetwork,
			Message: "error reading upstream response",
			Data:    err.Error(),
		}
	}

	if resp.StatusCode/100 != 2 {
		inv.logger.Warn("upstream returned error status", "status", resp.StatusCode)
		return nil, &jsonrpc.Error{
			Code:    jsonrpc.ErrUpstream,
			Message: "upstream returned status " + resp.Status,
			Data:    string(body),
		}
	}

	return DecodeBody(string(body), resp.Header.Get("Content-Type"))
}
