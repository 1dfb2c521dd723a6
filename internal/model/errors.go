package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned by stores when a unique constraint rejects a
	// write. The uniqueness check in the service layer is optimistic; the
	// storage constraint is the final backstop against concurrent writers.
	ErrConflict = errors.New("record already exists")

	// ErrInvalidToken is returned by the token manager for malformed,
	// expired, tampered, or wrongly-typed tokens.
	ErrInvalidToken = errors.New("invalid token")
)
