// Package common defines sentinel errors shared by the Ticketly store
// layers and the terminal client. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// Identity errors.
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")

	// Storage configuration errors.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
