package auth

import "errors"

var (
	ErrNotFound     = errors.New("auth: not found")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrForbidden    = errors.New("auth: forbidden")
	ErrInvalidInput = errors.New("auth: invalid input")

	// ErrUnknownRole indicates a role that validated structurally but has no
	// entry in the permission table. This is configuration drift, not user
	// error; callers surface it as an internal failure and log loudly.
	ErrUnknownRole = errors.New("auth: role has no permission table entry")
)
