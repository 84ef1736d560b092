package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/loopwork-ai/mcp-bridge/jsonrpc"
)

// Transport handles the communication between stdin/stdout and the bridge
// session. It owns the output stream: every frame it writes is a single
// JSON object followed by one newline, and nothing else ever reaches the
// stream. Diagnostics go to the logger, never to the output.
type Transport struct {
	handler jsonrpc.Handler
	scanner *bufio.Scanner
	writer  *json.Encoder
	bufOut  *bufio.Writer
	logger  *slog.Logger
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(handler jsonrpc.Handler, in io.Reader, out io.Writer, logger *slog.Logger) *Transport {
	scanner := bufio.NewScanner(in)
	// Set a reasonable max size for each line
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	bufOut := bufio.NewWriter(out)
	return &Transport{
		handler: handler,
		scanner: scanner,
		writer:  json.NewEncoder(bufOut),
		bufOut:  bufOut,
		logger:  logger,
	}
}

// Run starts the transport loop, reading newline-delimited JSON-RPC
// messages until EOF or context cancellation. Blank lines and lines that
// do not decode as a JSON object are dropped without producing output.
func (t *Transport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if !t.scanner.Scan() {
				if err := t.scanner.Err(); err != nil {
					return fmt.Errorf("scanner error: %v", err)
				}
				return nil
			}

			line := strings.TrimSpace(t.scanner.Text())
			if line == "" {
				continue
			}

			var request jsonrpc.Request
			if err := json.Unmarshal([]byte(line), &request); err != nil {
				t.logger.Debug("dropping unparseable input line", "error", err)
				continue
			}

			for _, message := range t.handler.Handle(ctx, request) {
				if err := t.writer.Encode(message); err != nil {
					t.logger.Error("error encoding response", "error", err)
				}
			}
			t.bufOut.Flush()
		}
	}
}
