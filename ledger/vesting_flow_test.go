package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestmark/libvestmark-go/vesting"
)

// newVestingLedger funds the ledger, flags treasury as a big account and
// installs the two fixture rules. The vesting start is left unset.
func newVestingLedger(t *testing.T) (*Ledger, *testClock) {
	t.Helper()
	l, clock := newFundedLedger(t)
	require.NoError(t, l.AddBigAccount("bigsetter", "treasury", symVEST))
	require.NoError(t, l.AddRule("ruler", symVEST, milestoneRule(1)))
	require.NoError(t, l.AddRule("ruler", symVEST, periodicRule(2)))
	return l, clock
}

func lockedValue(t *testing.T, l *Ledger, owner string) int64 {
	t.Helper()
	locked, err := l.LockedAmount(owner, symVEST)
	require.NoError(t, err)
	return locked.Value
}

func TestVestingTransferChecks(t *testing.T) {
	l, _ := newVestingLedger(t)

	require.NoError(t, l.Transfer("treasury", "plain", vestAmount(100), true, ""))

	err := l.VestingTransfer(1, "plain", "alice", vestAmount(10), "")
	assert.ErrorIs(t, err, ErrNotBigAccount)

	err = l.VestingTransfer(99, "treasury", "alice", vestAmount(10), "")
	assert.ErrorIs(t, err, ErrRuleMissing)

	assert.ErrorIs(t, l.VestingTransfer(1, "treasury", "treasury", vestAmount(10), ""), ErrSelfTransfer)
	assert.ErrorIs(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(0), ""), ErrInvalidQuantity)
}

func TestVestingLockedBeforeStart(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(100), ""))

	// Vesting start unset: the whole principal stays locked forever.
	assert.Equal(t, int64(100), lockedValue(t, l, "alice"))
	clock.now += 1_000_000
	assert.Equal(t, int64(100), lockedValue(t, l, "alice"))

	avail, err := l.Available("alice", symVEST)
	require.NoError(t, err)
	assert.Equal(t, int64(0), avail.Value)
	assert.ErrorIs(t, l.Transfer("alice", "bob", vestAmount(1), true, ""), ErrInsufficientAvailable)
}

func TestVestingMilestoneRelease(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(100), ""))
	require.NoError(t, l.SetVestingStart("issuer", symVEST, clock.now))

	// now == vestingStart: not yet begun.
	assert.Equal(t, int64(100), lockedValue(t, l, "alice"))

	clock.now += 5
	assert.Equal(t, int64(100), lockedValue(t, l, "alice"))

	clock.now += 10 // elapsed 15: first milestone (30%) reached
	assert.Equal(t, int64(70), lockedValue(t, l, "alice"))

	clock.now += 10 // elapsed 25: second milestone (70%) reached
	assert.Equal(t, int64(30), lockedValue(t, l, "alice"))

	// 70 units are spendable, 71 are not.
	assert.ErrorIs(t, l.Transfer("alice", "bob", vestAmount(71), true, ""), ErrInsufficientAvailable)
	require.NoError(t, l.Transfer("alice", "bob", vestAmount(70), true, ""))
}

func TestVestingPeriodicRelease(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(2, "treasury", "alice", vestAmount(200), ""))
	require.NoError(t, l.SetVestingStart("issuer", symVEST, clock.now))

	clock.now += 5
	assert.Equal(t, int64(200), lockedValue(t, l, "alice"))

	clock.now += 10 // elapsed 15: one period, 10% released
	assert.Equal(t, int64(180), lockedValue(t, l, "alice"))

	clock.now += 90 // elapsed 105: ten periods, 100% >= base
	assert.Equal(t, int64(0), lockedValue(t, l, "alice"))

	require.NoError(t, l.Transfer("alice", "bob", vestAmount(200), true, ""))
}

func TestVestingLockedMonotonic(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(1000), ""))
	require.NoError(t, l.VestingTransfer(2, "treasury", "alice", vestAmount(500), ""))
	require.NoError(t, l.SetVestingStart("issuer", symVEST, clock.now))

	prev := lockedValue(t, l, "alice")
	for i := 0; i < 40; i++ {
		clock.now += 3
		cur := lockedValue(t, l, "alice")
		assert.LessOrEqual(t, cur, prev, "locked must never increase with time")
		prev = cur
	}
	assert.Equal(t, int64(300), prev, "milestone rule retains 30% forever")
}

func TestVestingMerge(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(60), ""))
	clock.now += 7
	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(40), ""))

	positions, err := l.LockPositions("alice", symVEST)
	require.NoError(t, err)
	require.Len(t, positions, 1, "same rule merges into one position")
	assert.Equal(t, uint32(1), positions[0].RuleID)
	assert.Equal(t, int64(100), positions[0].Position.Quantity)
	assert.Equal(t, "treasury", positions[0].Position.Sender)
	assert.Equal(t, clock.now, positions[0].Position.LastTouched)

	// The merged tranche vests on the original schedule: the later credit
	// does not restart the curve.
	require.NoError(t, l.SetVestingStart("issuer", symVEST, clock.now))
	clock.now += 15
	assert.Equal(t, int64(70), lockedValue(t, l, "alice"))
}

func TestVestingPositionBound(t *testing.T) {
	l, _ := newVestingLedger(t)

	// Rules 1 and 2 exist; add up to rule 30 and fill the partition.
	for id := uint32(3); id <= MaxPositionsPerBucket; id++ {
		require.NoError(t, l.AddRule("ruler", symVEST, milestoneRule(id)))
	}
	for id := uint32(1); id <= MaxPositionsPerBucket; id++ {
		require.NoError(t, l.VestingTransfer(id, "treasury", "alice", vestAmount(10), ""))
	}

	require.NoError(t, l.AddRule("ruler", symVEST, milestoneRule(31)))
	err := l.VestingTransfer(31, "treasury", "alice", vestAmount(10), "")
	assert.ErrorIs(t, err, ErrTooManyLockPositions)

	// Merging into an existing position is exempt from the bound.
	require.NoError(t, l.VestingTransfer(7, "treasury", "alice", vestAmount(10), ""))

	// Another recipient's partition is unaffected.
	require.NoError(t, l.VestingTransfer(31, "treasury", "bob", vestAmount(10), ""))
}

func TestVestingAndStaticLockCompose(t *testing.T) {
	l, clock := newVestingLedger(t)

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(100), ""))
	require.NoError(t, l.Transfer("treasury", "alice", vestAmount(400), true, ""))
	require.NoError(t, l.SetVestingStart("issuer", symVEST, clock.now))

	clock.now += 15 // milestone 1: 70 of the tranche still locked

	require.NoError(t, l.SetStaticLock("locker", "alice", vestAmount(200), ""))
	assert.Equal(t, int64(270), lockedValue(t, l, "alice"))

	avail, err := l.Available("alice", symVEST)
	require.NoError(t, err)
	assert.Equal(t, int64(230), avail.Value)

	assert.ErrorIs(t, l.Transfer("alice", "bob", vestAmount(231), true, ""), ErrInsufficientAvailable)
	require.NoError(t, l.Transfer("alice", "bob", vestAmount(230), true, ""))
}

func TestVestingCrossTokenIsolation(t *testing.T) {
	l, _ := newVestingLedger(t)

	// A second token whose index shares the partition nibble with VEST.
	other := symOther()
	require.NoError(t, l.CreateToken(testRoles, 17, otherAmount(1_000_000)))
	require.NoError(t, l.Issue("issuer", "treasury", otherAmount(10_000), ""))
	require.NoError(t, l.AddBigAccount("bigsetter", "treasury", other))
	require.NoError(t, l.AddRule("ruler", other, periodicRule(1)))

	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", vestAmount(100), ""))
	require.NoError(t, l.VestingTransfer(1, "treasury", "alice", otherAmount(700), ""))

	assert.Equal(t, int64(100), lockedValue(t, l, "alice"))

	otherLocked, err := l.LockedAmount("alice", other)
	require.NoError(t, err)
	assert.Equal(t, int64(700), otherLocked.Value, "locks must not leak across tokens")
}

func TestAddRuleChecks(t *testing.T) {
	l, _ := newVestingLedger(t)

	assert.ErrorIs(t, l.AddRule("mallory", symVEST, milestoneRule(50)), ErrUnauthorized)
	assert.ErrorIs(t, l.AddRule("ruler", symVEST, milestoneRule(1)), ErrAlreadyExists)

	bad := &vesting.Rule{ID: 51, Milestones: []vesting.Milestone{{Offset: 0, Percent: 10}}, Base: 100}
	assert.ErrorIs(t, l.AddRule("ruler", symVEST, bad), vesting.ErrInvalidRule,
		"periodic shape without period")

	r, err := l.Rule(symVEST, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), r.ID)

	_, err = l.Rule(symVEST, 99)
	assert.ErrorIs(t, err, ErrRuleMissing)
}
