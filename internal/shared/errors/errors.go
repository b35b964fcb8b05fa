// Package errors contains the shared domain errors of the application.
//
// These errors are raised in the service and repository layers and are
// mapped to HTTP status codes in the api layer.
package errors

import "errors"

var (
	// Input data is invalid (empty fields, wrong format and so on)
	ErrInvalidInput = errors.New("invalid input")
	// Wrong credentials
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Unexpected failure
	ErrInternal = errors.New("internal error")
	// Request body is not valid JSON
	ErrBadJSON = errors.New("bad json")
	// Not authenticated
	ErrUnauthorized = errors.New("unauthorized")
	// Resource already exists (e.g. email or product code already taken)
	ErrAlreadyExists = errors.New("already exists")
	// Resource not found
	ErrNotFound = errors.New("not found")
)
