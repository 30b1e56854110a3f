// Package common defines shared constants and sentinel errors used across
// the todolist service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound           = errors.New("not found")
	ErrorEmailAlreadyExists = errors.New("email already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrorAuthFailed covers both "unknown identity" and "wrong password"
	// so callers cannot tell the cases apart.
	ErrorAuthFailed = errors.New("authentication failed")

	// ErrorForbidden means the identity is valid but does not own the resource.
	ErrorForbidden = errors.New("forbidden")

	// Token errors (bad signature, wrong issuer/audience, expired).
	ErrInvalidToken = errors.New("invalid token")

	// Unexpected cryptographic-library failures.
	ErrorHashing = errors.New("password hashing error")
	ErrorSigning = errors.New("token signing error")
)
