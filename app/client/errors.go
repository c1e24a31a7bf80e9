package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// TransportError reports a failure to reach the API or to read its
// response: connection errors, timeouts, cancellation, truncated bodies.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response.
type APIError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: GET %s: %d %s", e.URL, e.StatusCode, e.Message)
}

// DecodeError reports a response body that does not match the expected
// payload shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: GET %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// newAPIError builds an APIError, preferring the {"error": "..."} message
// the API sends over the bare status text.
func newAPIError(url string, status int, body []byte) *APIError {
	msg := http.StatusText(status)
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		msg = payload.Error
	}
	return &APIError{URL: url, StatusCode: status, Message: msg}
}
