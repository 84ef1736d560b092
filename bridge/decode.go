package bridge

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/loopwork-ai/mcp-bridge/jsonrpc"
)

// decodeStrategy attempts to extract a JSON value from a response body.
type decodeStrategy func(body string) (interface{}, error)

// lastDataObject matches a JSON-object-shaped span following a data
// marker. Last-resort heuristic for event streams whose data lines are
// garbled; it can mis-extract on nested braces and is only consulted when
// the line scan finds nothing.
var lastDataObject = regexp.MustCompile(`data:\s*(\{.*\})`)

// DecodeBody interprets a remote response body according to its declared
// content type. The declared type only picks which strategy runs first;
// if it fails the other is tried, since upstream content types are not
// trusted. Returns a parse error carrying the raw body when neither
// strategy yields a value.
func DecodeBody(body, contentType string) (interface{}, *jsonrpc.Error) {
	strategies := []decodeStrategy{decodeJSON, decodeEventStream}
	if strings.Contains(contentType, "text/event-stream") {
		strategies = []decodeStrategy{decodeEventStream, decodeJSON}
	}

	for _, decode := range strategies {
		if payload, err := decode(body); err == nil {
			return payload, nil
		}
	}
	return nil, jsonrpc.NewError(jsonrpc.ErrParse, body)
}

func decodeJSON(body string) (interface{}, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// decodeEventStream extracts the payload of a text/event-stream body. The
// stream is scanned line by line; the last non-empty data line anywhere in
// the body wins, so later events override earlier ones. Payloads that
// decode to a JSON string are decoded a second time to unwrap
// doubly-encoded messages.
func decodeEventStream(body string) (interface{}, error) {
	var data string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		if value := strings.TrimSpace(strings.TrimPrefix(line, "data:")); value != "" {
			data = value
		}
	}

	if data == "" && strings.Contains(body, "data:") {
		if matches := lastDataObject.FindAllStringSubmatch(body, -1); len(matches) > 0 {
			data = matches[len(matches)-1][1]
		}
	}
	if data == "" {
		return nil, errors.New("no data field in event stream")
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}

	// Some upstreams JSON-encode the message and then encode that string
	// as the event data.
	if text, ok := payload.(string); ok {
		var inner interface{}
		if err := json.Unmarshal([]byte(text), &inner); err == nil {
			payload = inner
		}
	}
	return payload, nil
}
