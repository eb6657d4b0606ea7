// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is
	// owned by another user. Both cases map to the same sentinel so a
	// caller cannot probe for records it does not own.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, malformed, or unverifiable credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the identity provider's signing keys could not be retrieved.
	ErrUnavailable = errors.New("signing keys unavailable")

	// ErrValidation indicates a request body that fails entity validation.
	ErrValidation = errors.New("validation failed")
)
