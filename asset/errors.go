package asset

import "errors"

var (
	// ErrInvalidSymbol indicates a symbol code is not 1-7 uppercase letters.
	ErrInvalidSymbol = errors.New("asset: invalid symbol code")

	// ErrInvalidPrecision indicates the decimal precision exceeds the maximum.
	ErrInvalidPrecision = errors.New("asset: invalid precision")

	// ErrInvalidQuantity indicates an amount is negative or exceeds the maximum.
	ErrInvalidQuantity = errors.New("asset: invalid quantity")

	// ErrSymbolMismatch indicates two amounts carry different symbols or precisions.
	ErrSymbolMismatch = errors.New("asset: symbol or precision mismatch")

	// ErrPrecisionMismatch indicates a decimal string has more fractional
	// digits than the symbol's precision allows.
	ErrPrecisionMismatch = errors.New("asset: too many decimal places")

	// ErrMemoTooLong indicates a memo exceeds 256 bytes.
	ErrMemoTooLong = errors.New("asset: memo has more than 256 bytes")
)
