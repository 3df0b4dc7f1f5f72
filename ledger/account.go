package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// OpenAccount creates a zero balance row for (owner, symbol). The identity
// must be known to the account oracle and must not already hold a row.
func (l *Ledger) OpenAccount(owner string, sym asset.Symbol) error {
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		if _, err := tx.Balance(sym.Code, owner); err == nil {
			return fmt.Errorf("%w: balance row for %s/%s", ErrAlreadyExists, owner, sym.Code)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.PutBalance(sym.Code, owner, 0)
	})
	if err != nil {
		return err
	}

	l.log.Debugf("opened account %s for %s", owner, sym.Code)
	return nil
}

// CloseAccount removes the balance row for (owner, symbol). Only the owner
// may close it, and only at an exactly zero balance.
func (l *Ledger) CloseAccount(principal, owner string, sym asset.Symbol) error {
	if principal != owner {
		return fmt.Errorf("%w: only the owner may close", ErrUnauthorized)
	}
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		bal, err := tx.Balance(sym.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, sym.Code)
		}
		if err != nil {
			return err
		}
		if bal != 0 {
			return fmt.Errorf("%w: %s holds %d", ErrBalanceNotZero, owner, bal)
		}
		return tx.DeleteBalance(sym.Code, owner)
	})
	if err != nil {
		return err
	}

	l.log.Debugf("closed account %s for %s", owner, sym.Code)
	return nil
}

// Balance returns the raw balance for (owner, symbol), before any locks.
func (l *Ledger) Balance(owner string, sym asset.Symbol) (asset.Amount, error) {
	var bal int64
	err := l.db.View(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		var err error
		bal, err = tx.Balance(sym.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, sym.Code)
		}
		return err
	})
	if err != nil {
		return asset.Amount{}, err
	}
	return asset.NewAmount(bal, sym), nil
}

// credit increases owner's balance, creating the row only when allowCreate
// is set. The sole mutation path for balance increases.
func (l *Ledger) credit(tx *store.Tx, symCode, owner string, amount int64, allowCreate bool) error {
	bal, err := tx.Balance(symCode, owner)
	if errors.Is(err, store.ErrNotFound) {
		if !allowCreate {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, symCode)
		}
		bal = 0
	} else if err != nil {
		return err
	}
	if amount > asset.MaxAmount-bal {
		return fmt.Errorf("%w: balance overflow", ErrInvalidQuantity)
	}
	return tx.PutBalance(symCode, owner, bal+amount)
}

// debit decreases owner's balance after the availability gate: the account
// must hold a row, must not be actively frozen (expired freezes are evicted
// here), and balance minus all locks must cover the amount. amount may be
// zero, in which case only the gates run.
func (l *Ledger) debit(tx *store.Tx, tok *store.Token, symCode, owner string, amount int64, now uint64) error {
	bal, err := tx.Balance(symCode, owner)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, symCode)
	}
	if err != nil {
		return err
	}

	frozen, err := checkAndEvictFreeze(tx, symCode, owner, now)
	if err != nil {
		return err
	}
	if frozen {
		return fmt.Errorf("%w: %s/%s", ErrFrozen, owner, symCode)
	}

	locked, err := lockedAmount(tx, tok, symCode, owner, now)
	if err != nil {
		return err
	}
	if bal-locked < amount {
		return fmt.Errorf("%w: balance %d locked %d debit %d", ErrInsufficientAvailable, bal, locked, amount)
	}
	return tx.PutBalance(symCode, owner, bal-amount)
}
