package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/loopwork-ai/mcp-bridge/internal"
	"github.com/loopwork-ai/mcp-bridge/jsonrpc"
)

const (
	serverName    = "mcp-bridge"
	serverVersion = "1.0.0"
)

// Session orchestrates one request at a time: request in, upstream call,
// decode, sanitize, reconcile, frames out. The initialized flag is held on
// the session value, not a global, so independent sessions can coexist in
// a test harness.
type Session struct {
	endpoint    string
	token       string
	client      *http.Client
	timeout     time.Duration
	logger      *slog.Logger
	invoker     *Invoker
	initialized bool
}

// SessionOption configures a Session
type SessionOption func(*Session) error

// WithEndpoint sets the remote endpoint URL
func WithEndpoint(endpoint string) SessionOption {
	return func(s *Session) error {
		if endpoint == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		s.endpoint = endpoint
		return nil
	}
}

// WithToken sets the bearer token presented to the remote endpoint
func WithToken(token string) SessionOption {
	return func(s *Session) error {
		s.token = token
		return nil
	}
}

// WithClient sets the HTTP client used for upstream calls
func WithClient(client *http.Client) SessionOption {
	return func(s *Session) error {
		if client == nil {
			return fmt.Errorf("client cannot be nil")
		}
		s.client = client
		return nil
	}
}

// WithTimeout bounds each upstream call
func WithTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		s.timeout = timeout
		return nil
	}
}

// WithLogger sets the diagnostics sink
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// NewSession creates a new Session with the given options
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		client:  &http.Client{},
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	client := s.client
	if s.token != "" {
		client = &http.Client{
			Transport: &internal.HeaderTransport{
				Base:    s.client.Transport,
				Headers: http.Header{"Authorization": []string{"Bearer " + s.token}},
			},
			Timeout: s.client.Timeout,
		}
	}
	s.invoker = NewInvoker(s.endpoint, client, s.timeout, s.logger)

	return s, nil
}

// Initialized reports whether an initialize handshake has completed,
// locally or via the remote. Observational only; no request is rejected
// for arriving before it.
func (s *Session) Initialized() bool {
	return s.initialized
}

var _ jsonrpc.Handler = (*Session)(nil)

// Handle processes a single JSON-RPC request and returns the frames to
// write, in order.
func (s *Session) Handle(ctx context.Context, request jsonrpc.Request) []jsonrpc.Message {
	if request.Method == "" {
		return []jsonrpc.Message{
			jsonrpc.NewResponse(request.ID, nil, jsonrpc.NewError(jsonrpc.ErrInvalidRequest, nil)),
		}
	}

	if request.Method == "initialize" {
		return s.handleInitialize(ctx, request)
	}

	payload, callErr := s.invoker.Call(ctx, request.Raw())
	if callErr != nil {
		return []jsonrpc.Message{jsonrpc.NewResponse(request.ID, nil, callErr)}
	}

	return Reconcile(sanitizePayload(payload), request.ID)
}

// handleInitialize intercepts the initialization handshake. A remote
// result passes through the normal pipeline; a remote failure degrades to
// a locally synthesized minimal capability set so the caller can proceed,
// with a warning notification describing what went wrong upstream.
func (s *Session) handleInitialize(ctx context.Context, request jsonrpc.Request) []jsonrpc.Message {
	payload, callErr := s.invoker.Call(ctx, request.Raw())
	if callErr != nil {
		return s.localInitialize(request.ID, callErr.Message)
	}

	object, ok := payload.(map[string]interface{})
	if ok {
		if _, present := object["result"]; present {
			s.initialized = true
			s.logger.Info("initialized via remote")
			return Reconcile(sanitizePayload(payload), request.ID)
		}
		if v, present := object["error"]; present && v != nil {
			return s.localInitialize(request.ID, normalizeError(v).Message)
		}
	}

	// Remote answered with neither result nor error; degrade quietly.
	return s.localInitialize(request.ID, "")
}

// localInitialize emits the fallback initialize success, preceded by a
// warning notification when there is a remote failure to report.
func (s *Session) localInitialize(id jsonrpc.ID, warning string) []jsonrpc.Message {
	s.initialized = true

	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ServerCapabilities{},
		ServerInfo: ServerInfo{
			Name:    serverName,
			Version: serverVersion,
		},
		Tools: []Tool{},
	}

	var messages []jsonrpc.Message
	if warning != "" {
		s.logger.Warn("remote initialize failed, answering locally", "reason", warning)
		messages = append(messages, jsonrpc.NewNotification("notifications/message", map[string]interface{}{
			"level":  "warning",
			"logger": serverName,
			"data":   "remote initialize failed: " + warning,
		}))
	}
	return append(messages, jsonrpc.NewResponse(id, result, nil))
}
