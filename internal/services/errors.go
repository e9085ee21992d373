package services

import "errors"

// Failures the API layer translates one-to-one into status codes.
var (
	// ErrInvalidCode rejects a malformed custom code. Never retried.
	ErrInvalidCode = errors.New("custom code must be 3-20 characters, alphanumeric and hyphens only, and cannot start or end with a hyphen")

	// ErrCodeTaken means the requested custom code exists. Retrying
	// would silently change the identifier the user asked for, so it
	// surfaces as a conflict instead.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrRetriesExhausted means generated codes kept colliding. A fresh
	// request starts a new generation sequence, so callers may retry.
	ErrRetriesExhausted = errors.New("unable to generate a unique short code, please try again")
)
