package models

import (
	"fmt"
	"net/http"
)

// TransportError is a network-level failure reaching the server.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// ServerError is a non-success status returned by the server.
//
// Code, Message and RequestID come from the Notion error body
// {"object":"error","status":...,"code":...,"message":...} when it could be
// decoded. Body always holds what the server sent.
type ServerError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Body       []byte `json:"-"`
}

func (e *ServerError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("notion: %s: %s: %s", status, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("notion: %s: %s", status, e.Message)
	default:
		return "notion: " + status
	}
}

func (e *ServerError) Is(target error) bool {
	_, ok := target.(*ServerError)
	return ok
}

// ProtocolError reports a response that lacks a field the client needs,
// or carries it with the wrong type.
type ProtocolError struct {
	Field string
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func (e *ProtocolError) Is(target error) bool {
	_, ok := target.(*ProtocolError)
	return ok
}
