package domain

import "errors"

// Error kinds shared by every entry point. Use-case errors wrap one of them,
// so callers can branch on the kind with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrCompleted    = errors.New("completed")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
