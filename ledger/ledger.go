// Package ledger implements the token ledger engine: per-account balances,
// freeze holds, vesting lock positions, administrator static locks and the
// availability rules that decide how much of a balance is spendable. Every
// state-changing method executes as one atomic store transaction; ordering
// across calls is the caller's responsibility.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// AccountOracle answers whether an identity exists at all, independent of
// any token balance. It models the surrounding system's account registry.
type AccountOracle interface {
	Exists(owner string) bool
}

// allowAll is the default oracle: every non-empty identity exists.
type allowAll struct{}

func (allowAll) Exists(owner string) bool { return owner != "" }

// Ledger is the engine facade. All operations are safe for serialized use;
// the store serializes writers internally.
type Ledger struct {
	db     *store.DB
	log    *logger.L
	now    func() uint64
	oracle AccountOracle
}

// Option adjusts a Ledger at open time.
type Option func(*Ledger)

// WithClock replaces the wall-clock source (seconds since epoch).
func WithClock(now func() uint64) Option {
	return func(l *Ledger) { l.now = now }
}

// WithAccountOracle replaces the account-existence oracle.
func WithAccountOracle(o AccountOracle) Option {
	return func(l *Ledger) { l.oracle = o }
}

// Open opens or creates the ledger database at dbPath.
func Open(dbPath string, opts ...Option) (*Ledger, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		db:     db,
		log:    logger.New("ledger"),
		now:    func() uint64 { return uint64(time.Now().Unix()) },
		oracle: allowAll{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log.Infof("opened ledger database: %s", dbPath)
	return l, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	l.log.Info("closing ledger database")
	return l.db.Close()
}

// getToken resolves a symbol to its registry row, checking validity and
// that the symbol's precision matches the registered one.
func (l *Ledger) getToken(tx *store.Tx, sym asset.Symbol) (*store.Token, error) {
	if err := sym.Validate(); err != nil {
		return nil, err
	}
	tok, err := tx.Token(sym.Code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTokenMissing, sym.Code)
	}
	if err != nil {
		return nil, err
	}
	if tok.Precision != sym.Precision {
		return nil, fmt.Errorf("%w: %s registered with precision %d", asset.ErrSymbolMismatch, sym.Code, tok.Precision)
	}
	return tok, nil
}

// checkQuantity validates an amount against a token row: positive, within
// range and carrying the token's exact symbol.
func checkQuantity(tok *store.Token, symCode string, amount asset.Amount) error {
	if err := amount.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	if amount.Symbol.Code != symCode || amount.Symbol.Precision != tok.Precision {
		return fmt.Errorf("%w: %s", asset.ErrSymbolMismatch, amount.Symbol)
	}
	if amount.Value <= 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidQuantity)
	}
	return nil
}

// requireKnown consults the account-existence oracle.
func (l *Ledger) requireKnown(owner string) error {
	if !l.oracle.Exists(owner) {
		return fmt.Errorf("%w: %q", ErrUnknownAccount, owner)
	}
	return nil
}
