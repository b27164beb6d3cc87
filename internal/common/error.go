// Package common defines shared constants and sentinel errors used across
// the clinicdesk data core and the CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Authorization error: the current principal may not mutate or delete
	// the record in question.
	ErrNotAuthorized = errors.New("not authorized")

	// Auth-boundary errors with fixed, user-facing messages.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)
