package layout

import (
	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
)

// FragmentRule resolves which side of an exact-boundary offset a query
// belongs to (§4.9).
type FragmentRule int

const (
	AssociateWithFormerFragment FragmentRule = iota
	AssociateWithLatterFragment
)

// FragmentBuilder is implemented by any box that paginates its content
// into fragments along the block axis — a multi-column flow (§4.8) or
// the top-level page driver (§4.10). Block/flex/table layout calls
// applyFragmentBreakBefore/After/Inside around each in-flow child
// (§4.9); a builder that isn't fragmenting (ordinary block flow)
// reports zero height, which these helpers treat as "never break".
type FragmentBuilder interface {
	FragmentHeightForOffset(offset dimen.Dimen) dimen.Dimen
	FragmentRemainingHeightForOffset(offset dimen.Dimen, rule FragmentRule) dimen.Dimen
	AddForcedFragmentBreak(offset dimen.Dimen)
	SetFragmentBreak(offset dimen.Dimen, spaceShortage dimen.Dimen)
	UpdateMinimumFragmentHeight(offset dimen.Dimen, minHeight dimen.Dimen)
	EnterFragment(offset dimen.Dimen)
	LeaveFragment(offset dimen.Dimen)
}

// FragmentState is an embeddable FragmentBuilder implementation shared
// by MultiColumnFlow and PageDriver: a fixed per-fragment height, a set
// of recorded forced breaks, and the minimum heights/space-shortages
// observed while probing layout at a tentative fragment height.
type FragmentState struct {
	Height          dimen.Dimen // 0 means unpaginated — never break
	forcedBreaks    []dimen.Dimen
	minHeights      map[dimen.Dimen]dimen.Dimen
	spaceShortages  map[dimen.Dimen]dimen.Dimen
	cumulativeDepth dimen.FixedOffset
}

// FragmentHeightForOffset implements FragmentBuilder.
func (f *FragmentState) FragmentHeightForOffset(offset dimen.Dimen) dimen.Dimen {
	return f.Height
}

// FragmentRemainingHeightForOffset implements FragmentBuilder: the
// distance from offset down to the next fragment boundary, with the
// associate-former/latter rule deciding what happens when offset lands
// exactly on a boundary.
func (f *FragmentState) FragmentRemainingHeightForOffset(offset dimen.Dimen, rule FragmentRule) dimen.Dimen {
	if f.Height <= 0 {
		return dimen.Infinity
	}
	rem := f.Height - (offset % f.Height)
	if rem == f.Height && rule == AssociateWithFormerFragment {
		return 0
	}
	if rem == 0 {
		return f.Height
	}
	return rem
}

// AddForcedFragmentBreak records an unconditional break at offset
// (`break-before/after: page|column|always`).
func (f *FragmentState) AddForcedFragmentBreak(offset dimen.Dimen) {
	f.forcedBreaks = append(f.forcedBreaks, offset)
}

// SetFragmentBreak records a soft break candidate together with how
// much the line/block that triggered it overflowed by, so a balancing
// pass can weigh candidates against each other (§4.8 step 2).
func (f *FragmentState) SetFragmentBreak(offset, spaceShortage dimen.Dimen) {
	if f.spaceShortages == nil {
		f.spaceShortages = map[dimen.Dimen]dimen.Dimen{}
	}
	f.spaceShortages[offset] = spaceShortage
}

// UpdateMinimumFragmentHeight records that no fragment boundary may
// land strictly inside [offset, offset+minHeight) — the `break-inside:
// avoid` contract for an atomic child.
func (f *FragmentState) UpdateMinimumFragmentHeight(offset, minHeight dimen.Dimen) {
	if f.minHeights == nil {
		f.minHeights = map[dimen.Dimen]dimen.Dimen{}
	}
	if cur, ok := f.minHeights[offset]; !ok || minHeight > cur {
		f.minHeights[offset] = minHeight
	}
}

// EnterFragment/LeaveFragment maintain a running coordinate offset so
// nested fragment builders (a multi-column flow inside a page, itself
// inside another multi-column flow) see correctly shifted Y
// coordinates for their own children (§4.9 "signed fixed-point
// cumulative offset").
func (f *FragmentState) EnterFragment(offset dimen.Dimen) {
	f.cumulativeDepth = f.cumulativeDepth.Add(offset)
}

func (f *FragmentState) LeaveFragment(offset dimen.Dimen) {
	f.cumulativeDepth = f.cumulativeDepth.Add(-offset)
}

// CumulativeOffset returns the current nested-fragment coordinate
// shift as a Dimen.
func (f *FragmentState) CumulativeOffset() dimen.Dimen {
	return f.cumulativeDepth.ToDimen()
}

// MaxSpaceShortage returns the largest recorded shortage. Multi-column
// balancing adds it to the current height as a floor for the candidate
// column height; the growth step itself is MinSpaceShortage (§4.8
// step 2).
func (f *FragmentState) MaxSpaceShortage() dimen.Dimen {
	var max dimen.Dimen
	for _, s := range f.spaceShortages {
		if s > max {
			max = s
		}
	}
	return max
}

// MinSpaceShortage returns the smallest positive recorded shortage, 0
// if none.
func (f *FragmentState) MinSpaceShortage() dimen.Dimen {
	var min dimen.Dimen
	for _, s := range f.spaceShortages {
		if s > 0 && (min == 0 || s < min) {
			min = s
		}
	}
	return min
}

// ForcedBreaks returns the recorded forced-break offsets in insertion order.
func (f *FragmentState) ForcedBreaks() []dimen.Dimen { return f.forcedBreaks }

// applyFragmentBreakBefore decides whether placement of a child
// starting at y must instead start at the next fragment boundary,
// honoring `break-before` hints and any `break-inside: avoid` minimum
// height the child has already registered (§4.9).
func applyFragmentBreakBefore(fb FragmentBuilder, y dimen.Dimen, childMinHeight dimen.Dimen, breakBefore style.BreakMode) dimen.Dimen {
	if fb == nil {
		return y
	}
	if breakBefore == style.BreakAlways || breakBefore == style.BreakPage || breakBefore == style.BreakColumn {
		fb.AddForcedFragmentBreak(y)
		rem := fb.FragmentRemainingHeightForOffset(y, AssociateWithLatterFragment)
		if rem < dimen.Infinity {
			return y + rem
		}
		return y
	}
	remaining := fb.FragmentRemainingHeightForOffset(y, AssociateWithLatterFragment)
	if remaining < dimen.Infinity && childMinHeight > remaining {
		fb.SetFragmentBreak(y, childMinHeight-remaining)
		return y + remaining
	}
	return y
}

// applyFragmentBreakAfter records a forced break when `break-after`
// demands one, returning the offset subsequent content must start at.
func applyFragmentBreakAfter(fb FragmentBuilder, y dimen.Dimen, breakAfter style.BreakMode) dimen.Dimen {
	if fb == nil {
		return y
	}
	if breakAfter == style.BreakAlways || breakAfter == style.BreakPage || breakAfter == style.BreakColumn {
		fb.AddForcedFragmentBreak(y)
		rem := fb.FragmentRemainingHeightForOffset(y, AssociateWithLatterFragment)
		if rem < dimen.Infinity {
			return y + rem
		}
	}
	return y
}

// applyFragmentBreakInside registers a minimum fragment height for an
// atomic child when `break-inside: avoid[-page|-column]` applies,
// retrying placement at the next fragment boundary if the child does
// not fit at y (§4.9).
func applyFragmentBreakInside(fb FragmentBuilder, y, childHeight dimen.Dimen, breakInside style.BreakMode) dimen.Dimen {
	avoid := breakInside == style.BreakAvoid || breakInside == style.BreakAvoidPage || breakInside == style.BreakAvoidColumn
	if fb == nil || !avoid {
		return y
	}
	fb.UpdateMinimumFragmentHeight(y, childHeight)
	remaining := fb.FragmentRemainingHeightForOffset(y, AssociateWithLatterFragment)
	if remaining < dimen.Infinity && childHeight > remaining {
		return y + remaining
	}
	return y
}
