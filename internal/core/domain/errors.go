package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrBatchNotFound = errors.New("batch not found")
var ErrSessionNotFound = errors.New("session not found")

// ErrNoUsersProvisioned is returned when a session has no explicit owner
// and no user exists to fall back to. This is a deployment problem, not a
// caller mistake.
var ErrNoUsersProvisioned = errors.New("no users provisioned")

// ValidationError carries a human-readable message for input the caller
// can fix (out-of-enum values, mismatched passwords, negative counts).
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}
