package khipu

import (
	"testing"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
)

func fixedProbe(left, right dimen.Dimen) Probe {
	return func(dimen.Dimen) (dimen.Dimen, dimen.Dimen) { return left, right }
}

func TestBreakFitsEverythingOnOneLine(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := NewKhipu()
	k.Append(
		Knot{Type: KTTextBox, Text: "Hi", W: 20 * dimen.PT},
		Knot{Type: KTGlue, W: 5 * dimen.PT, Stretch: 5 * dimen.PT, CanBreakAfter: true},
		Knot{Type: KTTextBox, Text: "there", W: 50 * dimen.PT},
	)
	lines := Break(k, 0, 12*dimen.PT, fixedProbe(0, 100*dimen.PT), 0, style.VAlignBaseline, false)
	assert.Len(t, lines, 1)
	assert.Len(t, lines[0].Items, 3)
	assert.Equal(t, 75*dimen.PT, lines[0].Natural)
}

func TestBreakWrapsAtLastGlueOpportunity(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := NewKhipu()
	k.Append(
		Knot{Type: KTTextBox, Text: "Hi", W: 20 * dimen.PT},
		Knot{Type: KTGlue, W: 5 * dimen.PT, Stretch: 5 * dimen.PT, CanBreakAfter: true},
		Knot{Type: KTTextBox, Text: "there", W: 50 * dimen.PT},
	)
	lines := Break(k, 0, 12*dimen.PT, fixedProbe(0, 60*dimen.PT), 0, style.VAlignBaseline, false)
	assert.Len(t, lines, 2, "75pt of content does not fit in a 60pt line")
	assert.Len(t, lines[0].Items, 2, "first line keeps the word and its trailing glue")
	assert.Len(t, lines[1].Items, 1, "second line carries the overflowing word")
	assert.Equal(t, 50*dimen.PT, lines[1].Natural)
}

func TestBreakStopsAtHardBreak(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := NewKhipu()
	k.Append(
		Knot{Type: KTTextBox, Text: "one", W: 20 * dimen.PT},
		NewHardBreak(),
		Knot{Type: KTTextBox, Text: "two", W: 30 * dimen.PT},
	)
	lines := Break(k, 0, 12*dimen.PT, fixedProbe(0, 1000*dimen.PT), 0, style.VAlignBaseline, false)
	assert.Len(t, lines, 2)
	assert.Len(t, lines[0].Items, 1, "the hard break itself is consumed, not carried into either line")
	assert.Equal(t, "one", lines[0].Items[0].Text)
	assert.Equal(t, "two", lines[1].Items[0].Text)
}

func TestBreakAdvancesThroughAnOverlongWordViaMidItemSplit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := NewKhipu()
	k.Append(
		Knot{Type: KTTextBox, Text: "AB", W: 10 * dimen.PT},
		Knot{Type: KTTextBox, Text: "longword", W: 100 * dimen.PT},
	)
	lines := Break(k, 0, 12*dimen.PT, fixedProbe(0, 50*dimen.PT), 0, style.VAlignBaseline, false)
	// The breaker must terminate in a bounded number of lines rather than
	// reprocessing the overlong word forever.
	assert.LessOrEqual(t, len(lines), 3)
	assert.NotEmpty(t, lines)
	assert.Equal(t, "AB", lines[0].Items[0].Text)
}

func TestBreakNeverDropsTheRemainderOfAMidItemSplitWord(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := NewKhipu()
	k.Append(Knot{Type: KTTextBox, Text: "AB", W: 10 * dimen.PT})
	k.Append(Knot{Type: KTTextBox, Text: "longword", W: 100 * dimen.PT})
	lines := Break(k, 0, 12*dimen.PT, fixedProbe(0, 50*dimen.PT), 0, style.VAlignBaseline, false)

	var rebuilt string
	for _, lb := range lines {
		for _, it := range lb.Items {
			if it.Type == KTTextBox {
				rebuilt += it.Text
			}
		}
	}
	assert.Equal(t, "ABlongword", rebuilt, "the overflowing word's tail must reappear on a later line, never vanish")
}

func TestJustifyLineDistributesResidualByStretch(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	lb := LineBox{
		Items: []Knot{
			{Type: KTTextBox, W: 10 * dimen.PT},
			{Type: KTGlue, W: 5 * dimen.PT, Stretch: 1 * dimen.PT},
			{Type: KTTextBox, W: 10 * dimen.PT},
			{Type: KTGlue, W: 5 * dimen.PT, Stretch: 3 * dimen.PT},
			{Type: KTTextBox, W: 10 * dimen.PT},
		},
		Natural: 40 * dimen.PT,
	}
	out := justifyLine(lb, 80*dimen.PT)
	assert.True(t, out.Justified)
	assert.Equal(t, 80*dimen.PT, out.Width)
	// residual 40pt split 1:3 across the two glue knots -> +10pt, +30pt
	assert.Equal(t, 15*dimen.PT, out.Items[1].W)
	assert.Equal(t, 35*dimen.PT, out.Items[3].W)
}

func TestJustifyLineLeavesLineUnchangedWhenNoStretchAvailable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	lb := LineBox{
		Items:   []Knot{{Type: KTTextBox, W: 10 * dimen.PT}},
		Natural: 10 * dimen.PT,
	}
	out := justifyLine(lb, 50*dimen.PT)
	assert.False(t, out.Justified)
}

func TestIsSpaceKnotRecognizesWhitespaceOnly(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	assert.True(t, isSpaceKnot(Knot{Type: KTTextBox, Text: "  \t"}))
	assert.False(t, isSpaceKnot(Knot{Type: KTTextBox, Text: "a "}))
	assert.False(t, isSpaceKnot(Knot{Type: KTGlue, Text: ""}))
}
