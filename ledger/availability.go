package ledger

import (
	"errors"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// lockedAmount computes how much of owner's balance is currently locked:
// the static lock quantity plus the still-unreleased part of every vesting
// position in the owner's partition that belongs to this token.
//
// A position counts in full when the token's vesting start is unset, when
// now has not passed it, or when the position's rule no longer resolves;
// otherwise its rule's release curve is evaluated at now - vestingStart.
func lockedAmount(tx *store.Tx, tok *store.Token, symCode, owner string, now uint64) (int64, error) {
	locked, err := tx.StaticLock(symCode, owner)
	if errors.Is(err, store.ErrNotFound) {
		locked = 0
	} else if err != nil {
		return 0, err
	}

	bucket := store.BucketOf(owner, tok.TokenIndex)
	err = tx.ScanBucket(bucket, func(tokenIndex, ruleID uint32, p *store.Position) error {
		if tokenIndex != tok.TokenIndex {
			return nil
		}
		if tok.VestingStart == 0 || now <= tok.VestingStart {
			locked = satAdd(locked, p.Quantity)
			return nil
		}
		rule, err := tx.Rule(symCode, ruleID)
		if errors.Is(err, store.ErrNotFound) {
			locked = satAdd(locked, p.Quantity)
			return nil
		}
		if err != nil {
			return err
		}
		locked = satAdd(locked, rule.Locked(p.Quantity, now-tok.VestingStart))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return locked, nil
}

// satAdd adds position contributions saturating at MaxAmount. Anything at
// or above the balance already blocks every debit, so capping preserves
// the availability semantics while keeping the sum in range.
func satAdd(a, b int64) int64 {
	if a > asset.MaxAmount-b {
		return asset.MaxAmount
	}
	return a + b
}

// LockedAmount returns the currently locked quantity for (owner, symbol)
// at the ledger clock's current time. Accounts with no rows lock zero.
func (l *Ledger) LockedAmount(owner string, sym asset.Symbol) (asset.Amount, error) {
	now := l.now()
	var locked int64
	err := l.db.View(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		locked, err = lockedAmount(tx, tok, sym.Code, owner, now)
		return err
	})
	if err != nil {
		return asset.Amount{}, err
	}
	return asset.NewAmount(locked, sym), nil
}

// Available returns balance minus all locks: the true spendable quantity.
// It is a read-only view; expired freezes are not evicted here.
func (l *Ledger) Available(owner string, sym asset.Symbol) (asset.Amount, error) {
	now := l.now()
	var avail int64
	err := l.db.View(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		bal, err := tx.Balance(sym.Code, owner)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountMissing
		}
		if err != nil {
			return err
		}
		locked, err := lockedAmount(tx, tok, sym.Code, owner, now)
		if err != nil {
			return err
		}
		avail = bal - locked
		if avail < 0 {
			avail = 0
		}
		return nil
	})
	if err != nil {
		return asset.Amount{}, err
	}
	return asset.NewAmount(avail, sym), nil
}
