package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// SetStaticLock sets the administrator-imposed fixed lock for (owner,
// symbol). Only the token's locker may set it. The first set is bounded by
// the balance not already restricted by vesting; every later set must
// strictly decrease the quantity, and exactly zero deletes the row. The
// one-way unwind means an administrator can only relax a lock, never
// tighten it past its last value.
func (l *Ledger) SetStaticLock(principal, owner string, quantity asset.Amount, memo string) error {
	if err := asset.CheckMemo(memo); err != nil {
		return err
	}
	if err := l.requireKnown(owner); err != nil {
		return err
	}
	if err := quantity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
	}

	now := l.now()
	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, quantity.Symbol)
		if err != nil {
			return err
		}
		if principal != tok.Locker {
			return fmt.Errorf("%w: %q is not the locker", ErrUnauthorized, principal)
		}
		bal, err := tx.Balance(quantity.Symbol.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrAccountMissing, owner, quantity.Symbol.Code)
		}
		if err != nil {
			return err
		}

		existing, err := tx.StaticLock(quantity.Symbol.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			// First set: cannot lock more than is free of vesting restrictions.
			// No static row exists, so lockedAmount is the vesting-locked total.
			vestLocked, err := lockedAmount(tx, tok, quantity.Symbol.Code, owner, now)
			if err != nil {
				return err
			}
			if quantity.Value > bal-vestLocked {
				return fmt.Errorf("%w: lock overdrawn", ErrInsufficientAvailable)
			}
			if quantity.Value == 0 {
				return nil
			}
			return tx.PutStaticLock(quantity.Symbol.Code, owner, quantity.Value)
		}
		if err != nil {
			return err
		}

		if quantity.Value >= existing {
			return fmt.Errorf("%w: %d -> %d", ErrLockMustDecrease, existing, quantity.Value)
		}
		if quantity.Value == 0 {
			return tx.DeleteStaticLock(quantity.Symbol.Code, owner)
		}
		return tx.PutStaticLock(quantity.Symbol.Code, owner, quantity.Value)
	})
	if err != nil {
		return err
	}

	l.log.Infof("set static lock of %s/%s to %s", owner, quantity.Symbol.Code, quantity)
	return nil
}

// StaticLock returns the current static lock quantity, zero if none is set.
func (l *Ledger) StaticLock(owner string, sym asset.Symbol) (asset.Amount, error) {
	var q int64
	err := l.db.View(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		var err error
		q, err = tx.StaticLock(sym.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			q = 0
			return nil
		}
		return err
	})
	if err != nil {
		return asset.Amount{}, err
	}
	return asset.NewAmount(q, sym), nil
}
