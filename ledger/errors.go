package ledger

import "errors"

var (
	// ErrInvalidQuantity indicates a non-positive, overflowing or
	// wrong-symbol amount.
	ErrInvalidQuantity = errors.New("ledger: invalid quantity")

	// ErrUnauthorized indicates the principal does not hold the role the
	// operation requires.
	ErrUnauthorized = errors.New("ledger: principal not authorized")

	// ErrTokenMissing indicates no token is registered under the symbol.
	ErrTokenMissing = errors.New("ledger: token does not exist")

	// ErrAccountMissing indicates the (owner, token) balance row does not exist.
	ErrAccountMissing = errors.New("ledger: account has no balance row for this token")

	// ErrUnknownAccount indicates the account-existence oracle does not know
	// the identity at all.
	ErrUnknownAccount = errors.New("ledger: account does not exist")

	// ErrInsufficientAvailable indicates a debit exceeds balance minus locks.
	ErrInsufficientAvailable = errors.New("ledger: insufficient available balance")

	// ErrFrozen indicates a debit is blocked by an active freeze.
	ErrFrozen = errors.New("ledger: account is frozen")

	// ErrNotFrozen indicates an unfreeze of an account with no freeze row.
	ErrNotFrozen = errors.New("ledger: account is not frozen")

	// ErrRuleMissing indicates the rule id is not in the token's catalog.
	ErrRuleMissing = errors.New("ledger: lock rule does not exist")

	// ErrTooManyLockPositions indicates the partition's live-position bound
	// would be exceeded.
	ErrTooManyLockPositions = errors.New("ledger: too many lock positions for account")

	// ErrLockMustDecrease indicates a static lock update that does not
	// strictly decrease the locked quantity.
	ErrLockMustDecrease = errors.New("ledger: static lock must decrease")

	// ErrSizeMismatch indicates batch recipients and amounts differ in length.
	ErrSizeMismatch = errors.New("ledger: recipients and amounts in different size")

	// ErrAlreadyExists indicates a duplicate symbol, token index, rule id,
	// balance row, flag or vesting start registration.
	ErrAlreadyExists = errors.New("ledger: already exists")

	// ErrNotBigAccount indicates the account does not hold the big-account flag.
	ErrNotBigAccount = errors.New("ledger: not a big account")

	// ErrBalanceNotZero indicates a close of an account whose balance is not zero.
	ErrBalanceNotZero = errors.New("ledger: balance is not zero")

	// ErrSupplyExceeded indicates an issuance past the token's maximum supply.
	ErrSupplyExceeded = errors.New("ledger: quantity exceeds available supply")

	// ErrSelfTransfer indicates a transfer whose sender and recipient are equal.
	ErrSelfTransfer = errors.New("ledger: cannot transfer to self")
)
