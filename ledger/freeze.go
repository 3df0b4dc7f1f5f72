package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// Freeze blocks debits from (owner, symbol) until expiresAt. Only the
// token's freezer may freeze; the target must hold a balance row. An
// existing freeze has its expiry overwritten.
func (l *Ledger) Freeze(principal, owner string, sym asset.Symbol, expiresAt uint64) error {
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Freezer {
			return fmt.Errorf("%w: %q is not the freezer", ErrUnauthorized, principal)
		}
		if _, err := tx.Balance(sym.Code, owner); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, sym.Code)
		} else if err != nil {
			return err
		}
		return tx.PutFreeze(sym.Code, owner, expiresAt)
	})
	if err != nil {
		return err
	}

	l.log.Infof("froze %s/%s until %d", owner, sym.Code, expiresAt)
	return nil
}

// Unfreeze removes the freeze row for (owner, symbol). Only the token's
// unfreezer may unfreeze; a missing row fails with ErrNotFrozen.
func (l *Ledger) Unfreeze(principal, owner string, sym asset.Symbol) error {
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Unfreezer {
			return fmt.Errorf("%w: %q is not the unfreezer", ErrUnauthorized, principal)
		}
		if _, err := tx.Balance(sym.Code, owner); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, sym.Code)
		} else if err != nil {
			return err
		}
		if _, err := tx.FreezeExpiry(sym.Code, owner); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrNotFrozen, owner, sym.Code)
		} else if err != nil {
			return err
		}
		return tx.DeleteFreeze(sym.Code, owner)
	})
	if err != nil {
		return err
	}

	l.log.Infof("unfroze %s/%s", owner, sym.Code)
	return nil
}

// Frozen reports whether (owner, symbol) is actively frozen at the ledger
// clock's current time. Pure peek: an expired row is reported as not
// frozen but stays in place until the next debit path evicts it.
func (l *Ledger) Frozen(owner string, sym asset.Symbol) (bool, error) {
	now := l.now()
	var frozen bool
	err := l.db.View(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		exp, err := tx.FreezeExpiry(sym.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		frozen = now < exp
		return nil
	})
	return frozen, err
}

// checkAndEvictFreeze is the mutating accessor used on debit paths: an
// active freeze reports true, an expired row is deleted as a side effect
// of the check.
func checkAndEvictFreeze(tx *store.Tx, symCode, owner string, now uint64) (bool, error) {
	exp, err := tx.FreezeExpiry(symCode, owner)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if now < exp {
		return true, nil
	}
	return false, tx.DeleteFreeze(symCode, owner)
}
