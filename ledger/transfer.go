package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// Transfer moves quantity from one account to another. The sender's debit
// is gated on availability (freeze, vesting locks, static lock); the
// recipient's row is created only when allowCreateRecipient is set.
func (l *Ledger) Transfer(from, to string, quantity asset.Amount, allowCreateRecipient bool, memo string) error {
	if from == to {
		return ErrSelfTransfer
	}
	if err := asset.CheckMemo(memo); err != nil {
		return err
	}
	if err := l.requireKnown(to); err != nil {
		return err
	}

	now := l.now()
	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, quantity.Symbol)
		if err != nil {
			return err
		}
		if err := checkQuantity(tok, quantity.Symbol.Code, quantity); err != nil {
			return err
		}
		if err := l.debit(tx, tok, quantity.Symbol.Code, from, quantity.Value, now); err != nil {
			return err
		}
		return l.credit(tx, quantity.Symbol.Code, to, quantity.Value, allowCreateRecipient)
	})
	if err != nil {
		return err
	}

	l.log.Debugf("transferred %s from %s to %s", quantity, from, to)
	return nil
}

// VestingTransfer moves quantity like Transfer (recipient creation always
// allowed) and records the transferred principal as a lock position under
// ruleID. Only accounts holding the big-account flag may originate one;
// repeated transfers to the same recipient and rule merge into a single
// position vesting on the original schedule.
func (l *Ledger) VestingTransfer(ruleID uint32, from, to string, quantity asset.Amount, memo string) error {
	if from == to {
		return ErrSelfTransfer
	}
	if err := asset.CheckMemo(memo); err != nil {
		return err
	}
	if err := l.requireKnown(to); err != nil {
		return err
	}

	now := l.now()
	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, quantity.Symbol)
		if err != nil {
			return err
		}
		if err := checkQuantity(tok, quantity.Symbol.Code, quantity); err != nil {
			return err
		}
		if !tx.IsBigAccount(quantity.Symbol.Code, from) {
			return fmt.Errorf("%w: only a big account can vesting-transfer", ErrNotBigAccount)
		}
		if _, err := tx.Rule(quantity.Symbol.Code, ruleID); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrRuleMissing, ruleID)
		} else if err != nil {
			return err
		}

		if err := l.debit(tx, tok, quantity.Symbol.Code, from, quantity.Value, now); err != nil {
			return err
		}
		if err := l.credit(tx, quantity.Symbol.Code, to, quantity.Value, true); err != nil {
			return err
		}
		return l.recordVestingCredit(tx, tok, quantity.Symbol.Code, to, from, ruleID, quantity.Value, now)
	})
	if err != nil {
		return err
	}

	l.log.Debugf("vesting-transferred %s from %s to %s under rule %d", quantity, from, to, ruleID)
	return nil
}

// BatchTransfer credits each recipient best-effort: a leg is applied only
// when the amount is positive, the identity exists and the recipient
// already holds a balance row; all other legs are silently skipped. The
// sender is debited exactly once for the sum actually credited, so the
// availability check covers the whole batch atomically.
func (l *Ledger) BatchTransfer(from string, recipients []string, amounts []int64, sym asset.Symbol, memo string) error {
	if len(recipients) != len(amounts) {
		return fmt.Errorf("%w: %d recipients, %d amounts", ErrSizeMismatch, len(recipients), len(amounts))
	}
	if err := asset.CheckMemo(memo); err != nil {
		return err
	}

	now := l.now()
	var applied int64
	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}

		applied = 0
		for i, to := range recipients {
			amount := amounts[i]
			if amount <= 0 || !l.oracle.Exists(to) {
				continue
			}
			if _, err := tx.Balance(sym.Code, to); errors.Is(err, store.ErrNotFound) {
				continue
			} else if err != nil {
				return err
			}
			if err := l.credit(tx, sym.Code, to, amount, false); err != nil {
				return err
			}
			if applied > asset.MaxAmount-amount {
				return fmt.Errorf("%w: batch total overflow", ErrInvalidQuantity)
			}
			applied += amount
		}

		// The debit runs even for a zero total: the sender must still hold
		// a row and not be frozen.
		return l.debit(tx, tok, sym.Code, from, applied, now)
	})
	if err != nil {
		return err
	}

	l.log.Debugf("batch-transferred %d of %s from %s to %d recipients", applied, sym.Code, from, len(recipients))
	return nil
}
