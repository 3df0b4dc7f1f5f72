// Package asset defines the symbol and quantity primitives shared by the
// token ledger: a Symbol is a short uppercase code plus a decimal precision,
// and an Amount is an integer quantity tagged with its Symbol. All ledger
// arithmetic is done on the integer representation; decimal strings only
// appear at the parse/format boundary.
package asset

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MaxSymbolLen is the maximum number of characters in a symbol code.
	MaxSymbolLen = 7

	// MaxPrecision is the maximum number of decimal places a symbol may carry.
	MaxPrecision = 18

	// MaxAmount is the largest representable quantity, 2^62 - 1.
	MaxAmount = int64(1)<<62 - 1

	// MaxMemoLen is the maximum memo (and rule description) size in bytes.
	MaxMemoLen = 256
)

// Symbol identifies a token: an uppercase code and its decimal precision.
type Symbol struct {
	Code      string `json:"code"`
	Precision uint8  `json:"precision"`
}

// NewSymbol builds a Symbol and validates it.
func NewSymbol(code string, precision uint8) (Symbol, error) {
	s := Symbol{Code: code, Precision: precision}
	if err := s.Validate(); err != nil {
		return Symbol{}, err
	}
	return s, nil
}

// Validate checks the code is 1-7 uppercase letters and the precision is in range.
func (s Symbol) Validate() error {
	if len(s.Code) == 0 || len(s.Code) > MaxSymbolLen {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, s.Code)
	}
	for i := 0; i < len(s.Code); i++ {
		if s.Code[i] < 'A' || s.Code[i] > 'Z' {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, s.Code)
		}
	}
	if s.Precision > MaxPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, s.Precision)
	}
	return nil
}

// Equal reports whether two symbols have the same code and precision.
func (s Symbol) Equal(o Symbol) bool {
	return s.Code == o.Code && s.Precision == o.Precision
}

// String renders the symbol as "4,ABC".
func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Amount is an integer token quantity tagged with its symbol.
type Amount struct {
	Value  int64  `json:"value"`
	Symbol Symbol `json:"symbol"`
}

// NewAmount builds an Amount from an integer value in the symbol's smallest unit.
func NewAmount(value int64, sym Symbol) Amount {
	return Amount{Value: value, Symbol: sym}
}

// Validate checks the symbol and that the value is within [0, MaxAmount].
// Positivity is a per-operation requirement, not an Amount invariant:
// a zero quantity is a valid way to clear a static lock.
func (a Amount) Validate() error {
	if err := a.Symbol.Validate(); err != nil {
		return err
	}
	if a.Value < 0 || a.Value > MaxAmount {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, a.Value)
	}
	return nil
}

// SameSymbol returns ErrSymbolMismatch unless o carries a's symbol and precision.
func (a Amount) SameSymbol(o Symbol) error {
	if !a.Symbol.Equal(o) {
		return fmt.Errorf("%w: %s vs %s", ErrSymbolMismatch, a.Symbol, o)
	}
	return nil
}

// String renders the amount with the symbol's full precision, e.g. "12.3400 ABC".
func (a Amount) String() string {
	d := decimal.New(a.Value, -int32(a.Symbol.Precision))
	return d.StringFixed(int32(a.Symbol.Precision)) + " " + a.Symbol.Code
}

// ParseAmount converts a decimal string such as "12.34" into an Amount in
// sym's smallest unit. More fractional digits than the symbol's precision,
// or a value outside [0, MaxAmount], are rejected.
func ParseAmount(s string, sym Symbol) (Amount, error) {
	if err := sym.Validate(); err != nil {
		return Amount{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	scaled := d.Shift(int32(sym.Precision))
	if !scaled.IsInteger() {
		return Amount{}, fmt.Errorf("%w: %q at precision %d", ErrPrecisionMismatch, s, sym.Precision)
	}
	if !scaled.BigInt().IsInt64() {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	a := Amount{Value: scaled.IntPart(), Symbol: sym}
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// CheckMemo enforces the shared memo and description size bound.
func CheckMemo(memo string) error {
	if len(memo) > MaxMemoLen {
		return fmt.Errorf("%w: %d bytes", ErrMemoTooLong, len(memo))
	}
	return nil
}
