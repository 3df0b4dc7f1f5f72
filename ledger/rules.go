package ledger

import (
	"errors"
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
	"github.com/vestmark/libvestmark-go/vesting"
)

// AddRule appends a vesting rule to the token's catalog. Only the token's
// ruler may add rules; rule ids are unique per token and rules are
// immutable once created — there is no update or delete.
func (l *Ledger) AddRule(principal string, sym asset.Symbol, rule *vesting.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Ruler {
			return fmt.Errorf("%w: %q is not the ruler", ErrUnauthorized, principal)
		}
		if _, err := tx.Rule(sym.Code, rule.ID); err == nil {
			return fmt.Errorf("%w: rule %d", ErrAlreadyExists, rule.ID)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.PutRule(sym.Code, rule)
	})
	if err != nil {
		return err
	}

	l.log.Infof("added rule %d to %s", rule.ID, sym.Code)
	return nil
}

// Rule returns a rule from the token's catalog.
func (l *Ledger) Rule(sym asset.Symbol, ruleID uint32) (*vesting.Rule, error) {
	var rule *vesting.Rule
	err := l.db.View(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		var err error
		rule, err = tx.Rule(sym.Code, ruleID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrRuleMissing, ruleID)
		}
		return err
	})
	return rule, err
}
