package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezeBlocksDebit(t *testing.T) {
	l, clock := newFundedLedger(t)

	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+100))

	frozen, err := l.Frozen("treasury", symVEST)
	require.NoError(t, err)
	assert.True(t, frozen)

	err = l.Transfer("treasury", "alice", vestAmount(10), true, "")
	assert.ErrorIs(t, err, ErrFrozen)

	// Credits are not blocked by a freeze.
	require.NoError(t, l.Issue("issuer", "treasury", vestAmount(5), ""))
}

func TestFreezeAuthorization(t *testing.T) {
	l, clock := newFundedLedger(t)

	assert.ErrorIs(t, l.Freeze("mallory", "treasury", symVEST, clock.now+100), ErrUnauthorized)
	assert.ErrorIs(t, l.Freeze("freezer", "ghost", symVEST, clock.now+100), ErrAccountMissing)

	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+100))
	assert.ErrorIs(t, l.Unfreeze("mallory", "treasury", symVEST), ErrUnauthorized)
	require.NoError(t, l.Unfreeze("unfreezer", "treasury", symVEST))
}

func TestUnfreezeNotFrozen(t *testing.T) {
	l, _ := newFundedLedger(t)
	assert.ErrorIs(t, l.Unfreeze("unfreezer", "treasury", symVEST), ErrNotFrozen)
}

func TestFreezeOverwriteExpiry(t *testing.T) {
	l, clock := newFundedLedger(t)

	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+10))
	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+500))

	clock.now += 100
	frozen, err := l.Frozen("treasury", symVEST)
	require.NoError(t, err)
	assert.True(t, frozen, "overwritten expiry must hold")
}

func TestFreezeLazyEviction(t *testing.T) {
	l, clock := newFundedLedger(t)

	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+100))

	clock.now += 200

	// Peek reports not frozen but leaves the row in place.
	frozen, err := l.Frozen("treasury", symVEST)
	require.NoError(t, err)
	assert.False(t, frozen)
	require.NoError(t, l.Unfreeze("unfreezer", "treasury", symVEST), "row must still exist before any debit")

	// Refreeze, expire, then run a debit: the check evicts the row.
	require.NoError(t, l.Freeze("freezer", "treasury", symVEST, clock.now+100))
	clock.now += 200
	require.NoError(t, l.Transfer("treasury", "alice", vestAmount(10), true, ""))

	assert.ErrorIs(t, l.Unfreeze("unfreezer", "treasury", symVEST), ErrNotFrozen,
		"debit check must have removed the expired freeze row")
}
