// Package yapi provides a client for the remote API-documentation platform.
// This package centralizes all remote catalog interactions for the application.
package yapi

import (
	"encoding/json"
	"fmt"
)

// envelope is the fixed response shape of the remote service. Every
// response carries a numeric error code (0 = success) and an optional
// message string.
type envelope struct {
	ErrCode int             `json:"errcode"`
	ErrMsg  string          `json:"errmsg"`
	Data    json.RawMessage `json:"data"`
}

// AuthError means no token could be resolved for a project. It is fatal
// to the single request and never retried.
type AuthError struct {
	ProjectID string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("no token configured for project %s", e.ProjectID)
}

// TransportError wraps a network-level failure (DNS, timeout, connection
// reset). Retry policy, if any, is a caller concern.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError means the remote service responded but signaled an
// application-level failure, either through a non-2xx HTTP status or a
// nonzero envelope error code. It is surfaced verbatim to the caller.
type RemoteError struct {
	Status   int
	Message  string
	Endpoint string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: %s (status: %d, endpoint: %s)", e.Message, e.Status, e.Endpoint)
}

// savedID is the response data shape of the add/up endpoints.
type savedID struct {
	ID int `json:"_id"`
}
