package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigAccountLifecycle(t *testing.T) {
	l, _ := newFundedLedger(t)

	big, err := l.IsBigAccount("treasury", symVEST)
	require.NoError(t, err)
	assert.False(t, big)

	require.NoError(t, l.AddBigAccount("bigsetter", "treasury", symVEST))

	big, err = l.IsBigAccount("treasury", symVEST)
	require.NoError(t, err)
	assert.True(t, big)

	assert.ErrorIs(t, l.AddBigAccount("bigsetter", "treasury", symVEST), ErrAlreadyExists)

	require.NoError(t, l.RemoveBigAccount("bigsetter", "treasury", symVEST))
	assert.ErrorIs(t, l.RemoveBigAccount("bigsetter", "treasury", symVEST), ErrNotBigAccount)
}

func TestBigAccountAuthorization(t *testing.T) {
	l, _ := newFundedLedger(t)

	assert.ErrorIs(t, l.AddBigAccount("mallory", "treasury", symVEST), ErrUnauthorized)
	assert.ErrorIs(t, l.RemoveBigAccount("mallory", "treasury", symVEST), ErrUnauthorized)
}

func TestBigAccountRevocationStopsVestingTransfers(t *testing.T) {
	l, _ := newFundedLedger(t)
	require.NoError(t, l.AddBigAccount("bigsetter", "treasury", symVEST))
	require.NoError(t, l.AddRule("ruler", symVEST, milestoneRule(1)))

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(10), ""))

	require.NoError(t, l.RemoveBigAccount("bigsetter", "treasury", symVEST))
	err := l.VestingTransfer(1, "treasury", "alice", vestAmount(10), "")
	assert.ErrorIs(t, err, ErrNotBigAccount)
}
