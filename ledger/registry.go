package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// Roles names the principals holding each administrative capability of a token.
type Roles struct {
	Issuer    string
	Ruler     string
	Bigsetter string
	Locker    string
	Freezer   string
	Unfreezer string
}

// CreateToken registers a new token. maxSupply carries the symbol and
// precision; tokenIndex must be unique across the whole registry. The
// token's supply starts at zero and its vesting start unset.
func (l *Ledger) CreateToken(roles Roles, tokenIndex uint32, maxSupply asset.Amount) error {
	if err := maxSupply.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}
	if maxSupply.Value <= 0 {
		return fmt.Errorf("%w: max supply must be positive", ErrInvalidQuantity)
	}

	err := l.db.Update(func(tx *store.Tx) error {
		if _, err := tx.Token(maxSupply.Symbol.Code); err == nil {
			return fmt.Errorf("%w: token %s", ErrAlreadyExists, maxSupply.Symbol.Code)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if owner, err := tx.TokenIndexOwner(tokenIndex); err == nil {
			return fmt.Errorf("%w: token index %d taken by %s", ErrAlreadyExists, tokenIndex, owner)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		tok := &store.Token{
			MaxSupply:  maxSupply.Value,
			Supply:     0,
			Issuer:     roles.Issuer,
			Ruler:      roles.Ruler,
			Bigsetter:  roles.Bigsetter,
			Locker:     roles.Locker,
			Freezer:    roles.Freezer,
			Unfreezer:  roles.Unfreezer,
			TokenIndex: tokenIndex,
			Precision:  maxSupply.Symbol.Precision,
		}
		if err := tx.PutToken(maxSupply.Symbol.Code, tok); err != nil {
			return err
		}
		return tx.ClaimTokenIndex(tokenIndex, maxSupply.Symbol.Code)
	})
	if err != nil {
		return err
	}

	l.log.Infof("created token %s index %d max supply %s", maxSupply.Symbol.Code, tokenIndex, maxSupply)
	return nil
}

// Issue increases the token's supply and credits the quantity to the `to`
// account, creating its balance row if needed. Only the issuer may issue.
func (l *Ledger) Issue(principal, to string, quantity asset.Amount, memo string) error {
	if err := asset.CheckMemo(memo); err != nil {
		return err
	}
	if err := l.requireKnown(to); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, quantity.Symbol)
		if err != nil {
			return err
		}
		if principal != tok.Issuer {
			return fmt.Errorf("%w: %q is not the issuer", ErrUnauthorized, principal)
		}
		if err := checkQuantity(tok, quantity.Symbol.Code, quantity); err != nil {
			return err
		}
		if quantity.Value > tok.MaxSupply-tok.Supply {
			return fmt.Errorf("%w: %s", ErrSupplyExceeded, quantity)
		}

		tok.Supply += quantity.Value
		if err := tx.PutToken(quantity.Symbol.Code, tok); err != nil {
			return err
		}
		return l.credit(tx, quantity.Symbol.Code, to, quantity.Value, true)
	})
	if err != nil {
		return err
	}

	l.log.Infof("issued %s to %s", quantity, to)
	return nil
}

// SetVestingStart sets the token's vesting epoch. It can transition from
// unset to set exactly once; only the issuer may set it.
func (l *Ledger) SetVestingStart(principal string, sym asset.Symbol, startAt uint64) error {
	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Issuer {
			return fmt.Errorf("%w: %q is not the issuer", ErrUnauthorized, principal)
		}
		if tok.VestingStart != 0 {
			return fmt.Errorf("%w: vesting start already set", ErrAlreadyExists)
		}
		tok.VestingStart = startAt
		return tx.PutToken(sym.Code, tok)
	})
	if err != nil {
		return err
	}

	l.log.Infof("set vesting start of %s to %d", sym.Code, startAt)
	return nil
}

// Token returns a copy of the registry row for a symbol.
func (l *Ledger) Token(sym asset.Symbol) (*store.Token, error) {
	var tok *store.Token
	err := l.db.View(func(tx *store.Tx) error {
		var err error
		tok, err = l.getToken(tx, sym)
		return err
	})
	return tok, err
}

// Supply returns the token's current circulating supply.
func (l *Ledger) Supply(sym asset.Symbol) (asset.Amount, error) {
	tok, err := l.Token(sym)
	if err != nil {
		return asset.Amount{}, err
	}
	return asset.NewAmount(tok.Supply, sym), nil
}
