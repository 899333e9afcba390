package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotReady indicates a cart operation was invoked before a cart
	// was established.
	ErrNotReady = errors.New("cart not ready")
	// ErrBusy indicates a mutation was invoked while another is in flight.
	ErrBusy = errors.New("cart mutation in flight")
)

// NetworkError wraps a transport-level failure talking to the commerce
// platform. Distinct from a structured rejection.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserError is one field-level rejection reported by the platform.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// RejectedError means the platform evaluated the mutation and refused it;
// the mutation did not apply, even partially.
type RejectedError struct {
	Op         string
	UserErrors []UserError
}

func (e *RejectedError) Error() string {
	msgs := make([]string, 0, len(e.UserErrors))
	for _, ue := range e.UserErrors {
		msgs = append(msgs, ue.Message)
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("gateway %s: rejected", e.Op)
	}
	return fmt.Sprintf("gateway %s: %s", e.Op, strings.Join(msgs, "; "))
}
