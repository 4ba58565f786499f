package domain

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("access forbidden: you don't own this resource")
)

// ClientError marks input the caller could have fixed before sending,
// such as an undetectable or disallowed content type. Never retried.
type ClientError struct {
	Reason string
}

func (e *ClientError) Error() string {
	return e.Reason
}

// BackendError wraps a failure of the active storage provider. Retry
// policy is left to the caller.
type BackendError struct {
	Backend BackendType
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
