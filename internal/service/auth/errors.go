package auth

import "errors"

// Common token authority errors
var (
	// ErrTokenNotFound indicates the token is malformed or does not belong to any user.
	// Both cases are reported the same way so callers cannot probe the format.
	ErrTokenNotFound = errors.New("access token not found")

	// ErrTokenGeneration indicates the random source failed while issuing a token.
	ErrTokenGeneration = errors.New("failed to generate access token")
)
