package addtask

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"habitask/internal/service"
)

// responseBody covers every shape /add_task answers with. Fields that may be
// strings or structures are kept raw.
type responseBody struct {
	Success json.RawMessage `json:"success"`
	Detail  json.RawMessage `json:"detail"`
	Error   json.RawMessage `json:"error"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
	Task    json.RawMessage `json:"task"`
}

type taskEcho struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// decodeResponse classifies a completed response. The body is parsed before
// the status is inspected, so a non-JSON error page is a decode failure.
func decodeResponse(status int, raw []byte) (service.TaskResult, error) {
	var body responseBody
	if err := parseBody(status, raw, &body); err != nil {
		return service.TaskResult{}, err
	}
	if err := statusError(status, body); err != nil {
		return service.TaskResult{}, err
	}

	// The server reports Habitica-side rejections as 200 {"success": false}.
	if remoteFailure(body.Success) {
		msg := firstText(body.Error, body.Message, body.Detail)
		if msg == "" {
			msg = "server reported failure"
		}
		return service.TaskResult{}, &service.Error{Kind: service.KindRemote, Status: status, Message: msg}
	}

	echo := createdTask(body)
	return service.TaskResult{
		Text:   echo.Text,
		Type:   echo.Type,
		Status: status,
		Raw:    json.RawMessage(bytes.Clone(raw)),
	}, nil
}

// decodeStatus classifies a /status response with the same rules as
// decodeResponse. Only {"isUp": true} means the server is up.
func decodeStatus(status int, raw []byte) (service.StatusResult, error) {
	var body struct {
		responseBody
		IsUp json.RawMessage `json:"isUp"`
	}
	if err := parseBody(status, raw, &body); err != nil {
		return service.StatusResult{}, err
	}
	if err := statusError(status, body.responseBody); err != nil {
		return service.StatusResult{}, err
	}
	if !bytes.Equal(bytes.TrimSpace(body.IsUp), []byte("true")) {
		msg := firstText(body.Error, body.Message, body.Detail)
		if msg == "" {
			msg = "server reported it is not up"
		}
		return service.StatusResult{}, &service.Error{Kind: service.KindRemote, Status: status, Message: msg}
	}
	return service.StatusResult{Up: true, Status: status}, nil
}

func parseBody(status int, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &service.Error{
			Kind:    service.KindDecode,
			Status:  status,
			Message: fmt.Sprintf("malformed response: %v", err),
			Err:     err,
		}
	}
	return nil
}

// statusError reports a non-2xx status using detail, then error.
func statusError(status int, body responseBody) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	msg := firstText(body.Detail, body.Error)
	if msg == "" {
		msg = fmt.Sprintf("server returned %d %s", status, http.StatusText(status))
	}
	return &service.Error{Kind: service.KindHTTP, Status: status, Message: msg}
}

// remoteFailure reports whether success is the literal false. Any other
// value, including a malformed one, leaves the status to decide.
func remoteFailure(success json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(success), []byte("false"))
}

// createdTask finds the created task in data.data, falling back to task.
func createdTask(body responseBody) taskEcho {
	var outer struct {
		Data taskEcho `json:"data"`
	}
	if len(body.Data) > 0 && json.Unmarshal(body.Data, &outer) == nil && outer.Data.Text != "" {
		return outer.Data
	}
	var echo taskEcho
	if len(body.Task) > 0 && json.Unmarshal(body.Task, &echo) == nil {
		return echo
	}
	return outer.Data
}

// firstText returns the display text of the first non-empty field.
func firstText(fields ...json.RawMessage) string {
	for _, f := range fields {
		if s := displayText(f); s != "" {
			return s
		}
	}
	return ""
}

// displayText renders a JSON value as a message. Strings are used as-is,
// validation error lists are reduced to their "msg" entries, and anything
// else is shown as compact JSON.
func displayText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &items) == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	var buf bytes.Buffer
	if json.Compact(&buf, raw) == nil {
		return buf.String()
	}
	return string(raw)
}
