package vesting

import (
	"github.com/holiman/uint256"
)

// Locked evaluates the rule's release curve and returns how much of
// principal is still locked at elapsed seconds after the token's vesting
// start. The caller is responsible for the not-yet-started cases (unset
// vesting start, now before it, missing rule), which lock the full
// principal without consulting the curve. principal must be non-negative.
func (r *Rule) Locked(principal int64, elapsed uint64) int64 {
	if principal <= 0 {
		return 0
	}
	if r.Periodic() {
		return r.lockedPeriodic(principal, elapsed)
	}
	return r.lockedMilestone(principal, elapsed)
}

// lockedMilestone picks the greatest cumulative percentage among milestones
// whose offset has been reached. Percentages are capped by Base at rule
// creation, so the formula reaches exactly zero at full release.
func (r *Rule) lockedMilestone(principal int64, elapsed uint64) int64 {
	var released uint64
	for _, m := range r.Milestones {
		if m.Offset > elapsed {
			break
		}
		released = uint64(m.Percent)
	}
	return lockedFraction(principal, uint64(r.Base), released)
}

// lockedPeriodic releases Percent of the principal per Period elapsed after
// the starting offset. The released percentage is open-ended, so it is
// computed in wide arithmetic and a release at or past Base means the
// position is fully vested and contributes nothing.
func (r *Rule) lockedPeriodic(principal int64, elapsed uint64) int64 {
	start := r.Milestones[0]
	if elapsed <= start.Offset {
		return principal
	}
	periods := (elapsed - start.Offset) / r.Period
	if periods < 1 {
		return principal
	}
	released := new(uint256.Int).Mul(
		uint256.NewInt(uint64(start.Percent)),
		uint256.NewInt(periods),
	)
	if released.CmpUint64(uint64(r.Base)) >= 0 {
		return 0
	}
	return lockedFraction(principal, uint64(r.Base), released.Uint64())
}

// lockedFraction computes principal * (base - released) / base with
// truncating division. The intermediate product can exceed 64 bits, so it
// is carried in a 256-bit integer; the quotient never exceeds principal.
func lockedFraction(principal int64, base, released uint64) int64 {
	if released >= base {
		return 0
	}
	v := uint256.NewInt(uint64(principal))
	v.Mul(v, uint256.NewInt(base-released))
	v.Div(v, uint256.NewInt(base))
	return int64(v.Uint64())
}
