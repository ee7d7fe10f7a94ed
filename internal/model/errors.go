package model

import "errors"

// Sentinel errors reported by the user store. The auth service translates
// these into the caller-facing taxonomy; they never reach a response body.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)
