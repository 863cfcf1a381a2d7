package domain

import "errors"

// Token authentication failures. Exactly one of these is returned by an
// Authenticator so transports can map each to a distinct response without
// string inspection.
var (
	// ErrCredentialMissing: no credential presented, or the Authorization
	// value does not match the exact "Bearer <token>" shape.
	ErrCredentialMissing = errors.New("authorization credential missing or malformed")

	// ErrTokenDecoding: structural or signature verification failure.
	// Always wrapped with a diagnostic; the diagnostic is for logs only and
	// must not be echoed verbatim to untrusted clients.
	ErrTokenDecoding = errors.New("token decoding failed")

	// ErrTokenExpired: signature is valid but the expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Account and authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
)
