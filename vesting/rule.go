// Package vesting defines release-curve rules for time-locked balances and
// evaluates how much of a locked principal is still unreleased at a given
// elapsed time. A rule is either milestone-shaped (two or more discrete
// cliff/vest events) or periodic (a single starting offset after which a
// fixed percentage releases every period). Rules are immutable once created.
package vesting

import (
	"fmt"

	"github.com/vestmark/libvestmark-go/asset"
)

// Milestone is one point on a release curve: at Offset seconds after the
// token's vesting start, the cumulative released percentage reaches Percent
// (a numerator over the rule's Base).
type Milestone struct {
	Offset  uint64 `json:"offset"`
	Percent uint32 `json:"percent"`
}

// Rule is a named, immutable vesting curve scoped to one token.
type Rule struct {
	ID          uint32      `json:"id"`
	Milestones  []Milestone `json:"milestones"`
	Base        uint32      `json:"base"`
	Period      uint64      `json:"period"` // only meaningful for periodic rules
	Description string      `json:"description"`
}

// Periodic reports whether the rule is periodic-shaped (a single milestone
// interpreted as offset + percent-per-period) rather than milestone-shaped.
func (r *Rule) Periodic() bool {
	return len(r.Milestones) == 1
}

// Validate checks the rule's shape contract:
//   - at least one milestone; exactly one selects the periodic shape and
//     then requires a positive period,
//   - a positive percentage base,
//   - strictly increasing offsets,
//   - strictly increasing cumulative percentages, each at most Base,
//   - description within the shared size bound.
func (r *Rule) Validate() error {
	if len(r.Milestones) == 0 {
		return fmt.Errorf("%w: no milestones", ErrInvalidRule)
	}
	if r.Base == 0 {
		return fmt.Errorf("%w: zero percentage base", ErrInvalidRule)
	}
	if err := asset.CheckMemo(r.Description); err != nil {
		return fmt.Errorf("%w: %d bytes", ErrDescriptionTooLong, len(r.Description))
	}
	if r.Periodic() {
		if r.Period == 0 {
			return fmt.Errorf("%w: period must be positive", ErrInvalidRule)
		}
		if r.Milestones[0].Percent > r.Base {
			return fmt.Errorf("%w: percentage %d exceeds base %d", ErrInvalidRule, r.Milestones[0].Percent, r.Base)
		}
		return nil
	}
	for i, m := range r.Milestones {
		if m.Percent > r.Base {
			return fmt.Errorf("%w: percentage %d exceeds base %d", ErrInvalidRule, m.Percent, r.Base)
		}
		if i == 0 {
			continue
		}
		prev := r.Milestones[i-1]
		if m.Offset <= prev.Offset {
			return fmt.Errorf("%w: offsets not strictly increasing at index %d", ErrInvalidRule, i)
		}
		if m.Percent <= prev.Percent {
			return fmt.Errorf("%w: percentages not strictly increasing at index %d", ErrInvalidRule, i)
		}
	}
	return nil
}
