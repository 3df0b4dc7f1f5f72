package vesting

import "errors"

var (
	// ErrInvalidRule indicates a rule fails its shape or ordering contract.
	ErrInvalidRule = errors.New("vesting: invalid rule")

	// ErrDescriptionTooLong indicates a rule description exceeds 256 bytes.
	ErrDescriptionTooLong = errors.New("vesting: description has more than 256 bytes")
)
