package ledger

import (
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
	"github.com/vestmark/libvestmark-go/store"
)

// AddBigAccount grants owner the capability to originate vesting-creating
// transfers of this token. Only the token's bigsetter may grant it.
func (l *Ledger) AddBigAccount(principal, owner string, sym asset.Symbol) error {
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Bigsetter {
			return fmt.Errorf("%w: %q is not the bigsetter", ErrUnauthorized, principal)
		}
		if tx.IsBigAccount(sym.Code, owner) {
			return fmt.Errorf("%w: %s already a big account", ErrAlreadyExists, owner)
		}
		return tx.PutBigAccount(sym.Code, owner)
	})
	if err != nil {
		return err
	}

	l.log.Infof("registered big account %s for %s", owner, sym.Code)
	return nil
}

// RemoveBigAccount revokes the capability. Only the token's bigsetter may
// revoke it; a missing flag fails with ErrNotBigAccount.
func (l *Ledger) RemoveBigAccount(principal, owner string, sym asset.Symbol) error {
	if err := l.requireKnown(owner); err != nil {
		return err
	}

	err := l.db.Update(func(tx *store.Tx) error {
		tok, err := l.getToken(tx, sym)
		if err != nil {
			return err
		}
		if principal != tok.Bigsetter {
			return fmt.Errorf("%w: %q is not the bigsetter", ErrUnauthorized, principal)
		}
		if !tx.IsBigAccount(sym.Code, owner) {
			return fmt.Errorf("%w: %s", ErrNotBigAccount, owner)
		}
		return tx.DeleteBigAccount(sym.Code, owner)
	})
	if err != nil {
		return err
	}

	l.log.Infof("removed big account %s for %s", owner, sym.Code)
	return nil
}

// IsBigAccount reports whether owner holds the capability flag.
func (l *Ledger) IsBigAccount(owner string, sym asset.Symbol) (bool, error) {
	var big bool
	err := l.db.View(func(tx *store.Tx) error {
		if _, err := l.getToken(tx, sym); err != nil {
			return err
		}
		big = tx.IsBigAccount(sym.Code, owner)
		return nil
	})
	return big, err
}
