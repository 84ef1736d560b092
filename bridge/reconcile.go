package bridge

import (
	"strconv"

	"github.com/loopwork-ai/mcp-bridge/jsonrpc"
)

// payloadKind classifies a decoded remote payload into the finite set of
// shapes the bridge knows how to reconcile. Classification happens once;
// the emit logic below never probes fields again.
type payloadKind int

const (
	// kindNotification: has a method field and no id, a server-initiated message
	kindNotification payloadKind = iota
	// kindNonObject: decoded to a primitive, an array, or nothing
	kindNonObject
	// kindError: carries a non-null error field
	kindError
	// kindErrorShaped: no result, but message or status fields suggest an error
	kindErrorShaped
	// kindMissingResult: an object with neither result nor error
	kindMissingResult
	// kindResult: carries a result field
	kindResult
)

func classify(payload interface{}) (payloadKind, map[string]interface{}) {
	object, ok := payload.(map[string]interface{})
	if !ok {
		return kindNonObject, nil
	}

	if method, ok := object["method"].(string); ok && method != "" {
		if id, present := object["id"]; !present || id == nil {
			return kindNotification, object
		}
	}

	if v, present := object["error"]; present && v != nil {
		return kindError, object
	}

	if _, present := object["result"]; !present {
		if _, ok := object["message"]; ok {
			return kindErrorShaped, object
		}
		if _, ok := object["status"]; ok {
			return kindErrorShaped, object
		}
		return kindMissingResult, object
	}

	return kindResult, object
}

// Reconcile transforms a decoded remote payload into the outbound frames
// for the original request: always exactly one response, preceded by a
// notification frame when the remote sent a server-initiated message
// instead of an answer.
func Reconcile(payload interface{}, originalID jsonrpc.ID) []jsonrpc.Message {
	kind, object := classify(payload)

	switch kind {
	case kindNotification:
		method := object["method"].(string)
		params, ok := object["params"].(map[string]interface{})
		if !ok {
			params = map[string]interface{}{}
		}
		// The original request still needs an answer; acknowledge it so
		// the caller is not left hanging.
		return []jsonrpc.Message{
			jsonrpc.NewNotification(method, params),
			jsonrpc.NewResponse(originalID, map[string]interface{}{"ok": true}, nil),
		}

	case kindNonObject:
		return respond(jsonrpc.NewResponse(originalID, nil, jsonrpc.NewError(jsonrpc.ErrInternal, nil)))

	case kindError:
		return respond(jsonrpc.NewResponse(payloadID(object, originalID), nil, normalizeError(object["error"])))

	case kindErrorShaped:
		return respond(jsonrpc.NewResponse(payloadID(object, originalID), nil, normalizeError(object)))

	case kindMissingResult:
		return respond(jsonrpc.NewResponse(originalID, nil, jsonrpc.NewError(jsonrpc.ErrInternal, nil)))

	default:
		// All other top-level fields are dropped so transport-specific
		// leakage from the remote never reaches the caller.
		return respond(jsonrpc.NewResponse(payloadID(object, originalID), object["result"], nil))
	}
}

func respond(response jsonrpc.Response) []jsonrpc.Message {
	return []jsonrpc.Message{response}
}

// payloadID prefers the identifier the remote stamped on its payload,
// falling back to the original request's identifier.
func payloadID(object map[string]interface{}, originalID jsonrpc.ID) jsonrpc.ID {
	if v, present := object["id"]; present && v != nil {
		return jsonrpc.NewID(v)
	}
	return originalID
}

// normalizeError coerces a remote error value of unknown shape into a
// well-formed JSON-RPC error: code from a numeric code or status field
// (default -32000), message from the first of message, error, or reason
// (default a generic string), data carried through unchanged.
func normalizeError(value interface{}) *jsonrpc.Error {
	normalized := &jsonrpc.Error{
		Code:    jsonrpc.ErrServer,
		Message: "unknown upstream error",
	}

	object, ok := value.(map[string]interface{})
	if !ok {
		if text, ok := value.(string); ok && text != "" {
			normalized.Message = text
		}
		return normalized
	}

	for _, key := range []string{"code", "status"} {
		switch code := object[key].(type) {
		case float64:
			normalized.Code = jsonrpc.ErrorCode(int(code))
		case string:
			n, err := strconv.Atoi(code)
			if err != nil {
				continue
			}
			normalized.Code = jsonrpc.ErrorCode(n)
		default:
			continue
		}
		break
	}

	for _, key := range []string{"message", "error", "reason"} {
		if text, ok := object[key].(string); ok && text != "" {
			normalized.Message = text
			break
		}
	}

	if data, present := object["data"]; present {
		normalized.Data = data
	}
	return normalized
}
