package service

import "errors"

// Service-level errors. Controllers map these onto HTTP statuses; nothing
// else about the transport leaks into this package.
var (
	// ErrInvalidURL means the long URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrInvalidAlias means the custom alias violates the character or
	// length constraints.
	ErrInvalidAlias = errors.New("alias contains invalid characters")
	// ErrInvalidCode means a resolve was attempted with a malformed code.
	// Distinct from ErrNotFound so malformed input never reaches the store.
	ErrInvalidCode = errors.New("invalid short code format")
	// ErrAliasTaken means the requested alias is already in use.
	ErrAliasTaken = errors.New("custom alias already taken")
	// ErrGenerationExhausted means every retry salt produced a colliding
	// code. Callers may retry the whole request.
	ErrGenerationExhausted = errors.New("could not generate a unique short code")
	// ErrNotFound means no mapping exists for the code.
	ErrNotFound = errors.New("short URL not found")
	// ErrExpired means the mapping exists but its expiration has passed.
	ErrExpired = errors.New("short URL has expired")
	// ErrStoreUnavailable means the persistence layer could not be reached.
	ErrStoreUnavailable = errors.New("storage unavailable")
)
