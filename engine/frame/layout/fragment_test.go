package layout

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestFragmentRemainingHeightForOffsetMidFragment(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	rem := f.FragmentRemainingHeightForOffset(30*dimen.PT, AssociateWithLatterFragment)
	assert.Equal(t, 70*dimen.PT, rem)
}

func TestFragmentRemainingHeightAtBoundaryFormerRuleReturnsZero(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	rem := f.FragmentRemainingHeightForOffset(0, AssociateWithFormerFragment)
	assert.Equal(t, dimen.Dimen(0), rem)
}

func TestFragmentRemainingHeightAtBoundaryLatterRuleReturnsFullHeight(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	rem := f.FragmentRemainingHeightForOffset(0, AssociateWithLatterFragment)
	assert.Equal(t, 100*dimen.PT, rem)
}

func TestFragmentRemainingHeightUnpaginatedReturnsInfinity(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{}
	rem := f.FragmentRemainingHeightForOffset(30*dimen.PT, AssociateWithLatterFragment)
	assert.Equal(t, dimen.Infinity, rem)
}

func TestAddForcedFragmentBreakRecordsInInsertionOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{}
	f.AddForcedFragmentBreak(10 * dimen.PT)
	f.AddForcedFragmentBreak(5 * dimen.PT)
	f.AddForcedFragmentBreak(20 * dimen.PT)
	assert.Equal(t, []dimen.Dimen{10 * dimen.PT, 5 * dimen.PT, 20 * dimen.PT}, f.ForcedBreaks())
}

func TestSpaceShortageMaxAndMinIgnoreZero(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{}
	f.SetFragmentBreak(5*dimen.PT, 0)
	f.SetFragmentBreak(10*dimen.PT, 5*dimen.PT)
	f.SetFragmentBreak(20*dimen.PT, 15*dimen.PT)
	f.SetFragmentBreak(30*dimen.PT, 2*dimen.PT)
	assert.Equal(t, 15*dimen.PT, f.MaxSpaceShortage())
	assert.Equal(t, 2*dimen.PT, f.MinSpaceShortage())
}

func TestUpdateMinimumFragmentHeightKeepsLargest(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{}
	f.UpdateMinimumFragmentHeight(0, 10*dimen.PT)
	f.UpdateMinimumFragmentHeight(0, 5*dimen.PT)
	assert.Equal(t, 10*dimen.PT, f.minHeights[0])
	f.UpdateMinimumFragmentHeight(0, 20*dimen.PT)
	assert.Equal(t, 20*dimen.PT, f.minHeights[0])
}

func TestEnterLeaveFragmentTracksCumulativeOffset(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{}
	f.EnterFragment(50 * dimen.PT)
	assert.Equal(t, 50*dimen.PT, f.CumulativeOffset())
	f.EnterFragment(20 * dimen.PT)
	assert.Equal(t, 70*dimen.PT, f.CumulativeOffset())
	f.LeaveFragment(20 * dimen.PT)
	assert.Equal(t, 50*dimen.PT, f.CumulativeOffset())
	f.LeaveFragment(50 * dimen.PT)
	assert.Equal(t, dimen.Dimen(0), f.CumulativeOffset())
}

func TestApplyFragmentBreakBeforeForcedBreakAdvancesToBoundary(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakBefore(f, 30*dimen.PT, 0, style.BreakPage)
	assert.Equal(t, 100*dimen.PT, y)
	assert.Equal(t, []dimen.Dimen{30 * dimen.PT}, f.ForcedBreaks())
}

func TestApplyFragmentBreakBeforeSoftBreakWhenChildDoesNotFit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakBefore(f, 80*dimen.PT, 30*dimen.PT, style.BreakAuto)
	assert.Equal(t, 100*dimen.PT, y)
	assert.Equal(t, 10*dimen.PT, f.MinSpaceShortage())
}

func TestApplyFragmentBreakBeforeFitsNoBreak(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakBefore(f, 10*dimen.PT, 5*dimen.PT, style.BreakAuto)
	assert.Equal(t, 10*dimen.PT, y)
	assert.Empty(t, f.ForcedBreaks())
}

func TestApplyFragmentBreakAfterForcedRecordsAndAdvances(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakAfter(f, 40*dimen.PT, style.BreakAlways)
	assert.Equal(t, 100*dimen.PT, y)
	assert.Equal(t, []dimen.Dimen{40 * dimen.PT}, f.ForcedBreaks())
}

func TestApplyFragmentBreakAfterNoBreakReturnsYUnchanged(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakAfter(f, 40*dimen.PT, style.BreakAuto)
	assert.Equal(t, 40*dimen.PT, y)
	assert.Empty(t, f.ForcedBreaks())
}

func TestApplyFragmentBreakInsideAvoidsBreakWhenDoesNotFit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakInside(f, 80*dimen.PT, 30*dimen.PT, style.BreakAvoid)
	assert.Equal(t, 100*dimen.PT, y)
	assert.Equal(t, 30*dimen.PT, f.minHeights[80*dimen.PT])
}

func TestApplyFragmentBreakInsideNoAvoidFlagIsNoOp(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	f := &FragmentState{Height: 100 * dimen.PT}
	y := applyFragmentBreakInside(f, 80*dimen.PT, 30*dimen.PT, style.BreakAuto)
	assert.Equal(t, 80*dimen.PT, y)
	assert.Empty(t, f.minHeights)
}

func TestApplyFragmentBreakHelpersWithNilBuilderAreNoOps(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.Equal(t, 10*dimen.PT, applyFragmentBreakBefore(nil, 10*dimen.PT, 5*dimen.PT, style.BreakAlways))
	assert.Equal(t, 10*dimen.PT, applyFragmentBreakAfter(nil, 10*dimen.PT, style.BreakAlways))
	assert.Equal(t, 10*dimen.PT, applyFragmentBreakInside(nil, 10*dimen.PT, 5*dimen.PT, style.BreakAvoid))
}
