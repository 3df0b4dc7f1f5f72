package store

import "errors"

var (
	// ErrNotFound indicates no row exists for the given key.
	ErrNotFound = errors.New("store: row not found")

	// ErrCorrupted indicates a stored row failed to decode.
	ErrCorrupted = errors.New("store: corrupted row")
)
