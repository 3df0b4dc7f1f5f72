package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// MaxPositionsPerBucket bounds the live lock positions in one partition.
// Anti-spam: a recipient cannot accumulate unbounded vesting tranches.
const MaxPositionsPerBucket = 30

// PositionInfo pairs a lock position with its rule id for queries.
type PositionInfo struct {
	RuleID   uint32
	Position store.Position
}

// recordVestingCredit records that amount of recipient's balance is
// vesting-restricted under ruleID. A position already held for the same
// (rule, token) merges cumulatively and keeps its original schedule — only
// LastTouched is refreshed. New positions respect the partition bound.
// Balance itself is credited separately; this only records the restriction.
func (l *Ledger) recordVestingCredit(tx *store.Tx, tok *store.Token, symCode, recipient, sender string, ruleID uint32, amount int64, now uint64) error {
	bucket := store.BucketOf(recipient, tok.TokenIndex)

	p, err := tx.Position(bucket, tok.TokenIndex, ruleID)
	if err == nil {
		if p.Quantity > asset.MaxAmount-amount {
			return fmt.Errorf("%w: position overflow", ErrInvalidQuantity)
		}
		p.Quantity += amount
		p.LastTouched = now
		return tx.PutPosition(bucket, tok.TokenIndex, ruleID, p)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	n, err := tx.CountBucket(bucket)
	if err != nil {
		return err
	}
	if n >= MaxPositionsPerBucket {
		return fmt.Errorf("%w: %d live positions", ErrTooManyLockPositions, n)
	}

	return tx.PutPosition(bucket, tok.TokenIndex, ruleID, &store.Position{
		Recipient:   recipient,
		Sender:      sender,
		Quantity:    amount,
		LastTouched: now,
	})
}

// LockPositions returns owner's live lock positions for this token.
func (l *Ledger) LockPositions(owner string, sym asset.Symbol) ([]PositionInfo, error) {
	var out []PositionInfo
	err := l.db.View(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		bucket := store.BucketOf(owner, tok.TokenIndex)
		return tx.ScanBucket(bucket, func(tokenIndex, ruleID uint32, p *store.Position) error {
			if tokenIndex != tok.TokenIndex {
				return nil
			}
			out = append(out, PositionInfo{RuleID: ruleID, Position: *p})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
