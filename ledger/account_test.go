package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCloseAccount(t *testing.T) {
	l, _ := newFundedLedger(t)

	require.NoError(t, l.OpenAccount("alice", symVEST))

	bal, err := l.Balance("alice", symVEST)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal.Value)

	assert.ErrorIs(t, l.OpenAccount("alice", symVEST), ErrAlreadyExists)

	require.NoError(t, l.CloseAccount("alice", "alice", symVEST))
	_, err = l.Balance("alice", symVEST)
	assert.ErrorIs(t, err, ErrAccountMissing)
}

func TestCloseAccountChecks(t *testing.T) {
	l, _ := newFundedLedger(t)

	assert.ErrorIs(t, l.CloseAccount("mallory", "treasury", symVEST), ErrUnauthorized)
	assert.ErrorIs(t, l.CloseAccount("treasury", "treasury", symVEST), ErrBalanceNotZero)
	assert.ErrorIs(t, l.CloseAccount("ghost", "ghost", symVEST), ErrAccountMissing)
}

func TestOpenAccountUnknownIdentity(t *testing.T) {
	oracle := mapOracle{"treasury": true, "issuer": true}
	l, _ := newTestLedger(t, WithAccountOracle(oracle))
	require.NoError(t, l.CreateToken(testRoles, 1, vestAmount(1000)))

	assert.ErrorIs(t, l.OpenAccount("ghost", symVEST), ErrUnknownAccount)
	require.NoError(t, l.OpenAccount("treasury", symVEST))
}

func TestBalanceMissingToken(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Balance("alice", symVEST)
	assert.ErrorIs(t, err, ErrTokenMissing)
}
