package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// FieldError is one entry of a 422 response's errors object.
type FieldError struct {
	Field    string
	Messages []string
}

// Error is a non-2xx response, or a 2xx whose body reported success=false.
type Error struct {
	Method    string
	Path      string
	Status    int
	Message   string
	Fields    []FieldError
	RequestID string
}

func (e *Error) Error() string {
	msg := e.UserMessage()
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

// UserMessage is the text shown to an operator. Validation failures are
// flattened in field order into "Validation errors: a, b".
func (e *Error) UserMessage() string {
	if e.Status == http.StatusUnprocessableEntity && len(e.Fields) > 0 {
		var msgs []string
		for _, f := range e.Fields {
			msgs = append(msgs, f.Messages...)
		}
		return "Validation errors: " + strings.Join(msgs, ", ")
	}
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Temporary reports whether repeating the request may succeed.
func (e *Error) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Is maps statuses onto the common sentinel errors.
func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrRequestFailed:
		return true
	case common.ErrValidation:
		return e.Status == http.StatusUnprocessableEntity
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrAccessDenied:
		return e.Status == http.StatusForbidden
	case common.ErrRateLimit:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

func newError(method, path string, status int, requestID string, body []byte) *Error {
	e := &Error{
		Method:    method,
		Path:      path,
		Status:    status,
		RequestID: requestID,
	}

	var env struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		e.Message = strings.TrimSpace(string(body))
		if len(e.Message) > 200 {
			e.Message = e.Message[:200]
		}
		return e
	}

	e.Message = env.Message
	if e.Message == "" {
		e.Message = env.Error
	}
	if len(env.Errors) > 0 {
		fields, err := decodeFieldErrors(env.Errors)
		if err == nil {
			e.Fields = fields
		}
	}
	return e
}

// decodeFieldErrors reads {"field": ["msg", ...] | "msg", ...} keeping the
// server's field order, which map decoding would lose.
func decodeFieldErrors(raw json.RawMessage) ([]FieldError, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("errors is not an object")
	}

	var fields []FieldError
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		var msgs []string
		if err := json.Unmarshal(value, &msgs); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				continue
			}
			msgs = []string{single}
		}
		fields = append(fields, FieldError{Field: key, Messages: msgs})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return fields, nil
}
