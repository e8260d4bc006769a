package khipu

import (
	"strings"
	"unicode"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/uax/bidi"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// LineBox is one accepted line: the knot range it covers, its natural
// (pre-justification) width, and the chosen justification expansion.
type LineBox struct {
	Items     []Knot
	Width     dimen.Dimen // the available width a justified line was expanded to; 0 when not justified
	Natural   dimen.Dimen // width before justification expansion
	Justified bool
	Direction bidi.Direction
}

// Probe answers, for a candidate line's vertical extent, the available
// horizontal offsets — the float bottom-probe contract of §4.5. A
// block with no floats returns contentLeft/contentRight unchanged.
type Probe func(y dimen.Dimen) (left, right dimen.Dimen)

// Break runs the greedy line breaker of §4.4/§4.5 over a khipu's knot
// stream, producing LineBoxes that fit within probe's offsets at each
// line's Y, advancing Y by each line's height as it goes.
//
// textIndent is added to the first line only, in the paragraph
// direction (§4.5). justify selects justification of every line except
// the last and those ending in a hard break; align is not consulted.
func Break(k *Khipu, startY, lineHeight dimen.Dimen, probe Probe, textIndent dimen.Dimen, align style.VerticalAlign, justify bool) []LineBox {
	var lines []LineBox
	y := startY
	i := 0
	first := true
	for i < len(k.Knots) {
		left, right := probe(y)
		avail := right - left
		if first {
			avail -= textIndent
		}
		line, consumed, hardBreak, continuation := fitLine(k.Knots[i:], avail)
		if consumed == 0 {
			// Nothing fits even at minimum width: widen at the next
			// float bottom if that helps, otherwise force one item
			// through to guarantee forward progress (§4.4 "if that
			// widens the line, retry at that Y").
			nextY := y + lineHeight
			nl, nr := probe(nextY)
			if nr-nl > avail {
				y = nextY
				continue
			}
			consumed = 1
			line = k.Knots[i : i+1]
		}
		lb := LineBox{Items: append([]Knot(nil), line...), Natural: measureLine(line)}
		if justify && !hardBreak && i+consumed < len(k.Knots) {
			lb = justifyLine(lb, avail)
		}
		lines = append(lines, lb)
		if continuation != nil {
			// splice the undropped remainder of an over-long word back
			// into the stream so the next iteration lays it out on the
			// following line instead of losing it (§4.12 "layout is
			// total": overflow is the only allowed failure mode, text
			// is never silently discarded).
			spliced := make([]Knot, 0, len(k.Knots)+1)
			spliced = append(spliced, k.Knots[:i+consumed]...)
			spliced = append(spliced, *continuation)
			spliced = append(spliced, k.Knots[i+consumed:]...)
			k.Knots = spliced
		}
		i += consumed
		y += lineHeight
		first = false
	}
	return lines
}

// fitLine greedily consumes knots from items until overflow, then
// rewinds to the most recent break opportunity (§4.4). Returns the
// accepted knot slice, how many knots were consumed (including a
// trailing forced break marker, if any), whether the line ended on a
// hard break / end of stream rather than a soft wrap, and — only when
// a mid-item break split a text knot — the continuation knot holding
// whatever didn't fit, for the caller to re-queue.
func fitLine(items []Knot, avail dimen.Dimen) ([]Knot, int, bool, *Knot) {
	var width dimen.Dimen
	lastBreak := -1
	for idx, it := range items {
		w := itemWidth(it)
		if it.Type == KTHardBreak {
			return items[:idx], idx + 1, true, nil
		}
		if width+w > avail && idx > 0 {
			if lastBreak >= 0 {
				return items[:lastBreak+1], lastBreak + 1, false, nil
			}
			return midItemBreak(items, idx, avail)
		}
		width += w
		if it.CanBreakAfter {
			lastBreak = idx
		}
	}
	return items, len(items), true, nil
}

// midItemBreak performs a break-word/overflow-wrap:anywhere split
// inside the text knot at index idx when no earlier soft break
// opportunity exists within the line (§4.4 "it attempts mid-item
// breaks using the line-break iterator"). The split point is the
// nearest UAX #29 word-boundary at or before the width budget, falling
// back to a plain rune-count budget when the boundary iterator finds
// none; whatever remains after the split is returned as a continuation
// knot rather than dropped.
func midItemBreak(items []Knot, idx int, avail dimen.Dimen) ([]Knot, int, bool, *Knot) {
	if idx == 0 || items[idx].Type != KTTextBox {
		if idx == 0 {
			return items[:1], 1, false, nil
		}
		return items[:idx], idx, false, nil
	}
	text := items[idx].Text
	runes := []rune(text)
	used := dimen.Dimen(0)
	for i := idx - 1; i >= 0; i-- {
		used += itemWidth(items[i])
	}
	perRune := items[idx].W / dimen.Dimen(max(len(runes), 1))
	n := int((avail - used) / max1(perRune))
	if n <= 0 {
		n = 1
	}
	if n >= len(runes) {
		return items[:idx+1], idx + 1, false, nil
	}
	if boundary := nearestWordBreakAtOrBefore(wordBreakRuneOffsets(text), n); boundary > 0 {
		n = boundary
	}
	if n >= len(runes) {
		return items[:idx+1], idx + 1, false, nil
	}
	head := items[idx]
	head.Text = string(runes[:n])
	head.W = perRune * dimen.Dimen(n)
	tail := items[idx]
	tail.Text = string(runes[n:])
	tail.W = items[idx].W - head.W
	out := append(append([]Knot(nil), items[:idx]...), head)
	return out, idx + 1, false, &tail
}

// wordBreakRuneOffsets runs the Unicode word-boundary algorithm (UAX
// #29) over text and returns the rune offset immediately after each
// boundary, grounded on the teacher's inner-loop word breaker
// (engine/frame/khipu/khipukamayuq.go: pipeline.wordbreaker =
// uax29.NewWordBreaker(1); pipeline.words = segment.NewSegmenter(pipeline.wordbreaker)).
func wordBreakRuneOffsets(text string) []int {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.Init(strings.NewReader(text))
	var offsets []int
	pos := 0
	for seg.Next() {
		pos += len([]rune(seg.Text()))
		offsets = append(offsets, pos)
	}
	return offsets
}

// nearestWordBreakAtOrBefore returns the largest offset in offsets
// that is <= n, or 0 if none qualifies (the caller falls back to its
// own rune-count budget in that case).
func nearestWordBreakAtOrBefore(offsets []int, n int) int {
	best := 0
	for _, off := range offsets {
		if off <= n && off > best {
			best = off
		}
	}
	return best
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max1(d dimen.Dimen) dimen.Dimen {
	if d <= 0 {
		return 1
	}
	return d
}

func itemWidth(k Knot) dimen.Dimen {
	switch k.Type {
	case KTTextBox:
		return k.W
	case KTGlue:
		return k.W
	case KTLeader:
		return 0
	}
	return 0
}

func measureLine(items []Knot) dimen.Dimen {
	var w dimen.Dimen
	for _, it := range items {
		w += itemWidth(it)
	}
	return w
}

// justifyLine distributes the residual width across text-run glue
// knots, proportional to their stretch capacity (§4.4 "the residual
// width is distributed across text runs proportional to their
// expansion opportunities"). Trailing collapsible glue never
// participates.
func justifyLine(lb LineBox, avail dimen.Dimen) LineBox {
	residual := avail - lb.Natural
	if residual <= 0 {
		return lb
	}
	var totalStretch dimen.Dimen
	for _, it := range lb.Items {
		if it.Type == KTGlue && !it.TrailingCollapsible {
			totalStretch += max1(it.Stretch)
		}
	}
	if totalStretch == 0 {
		return lb
	}
	for i, it := range lb.Items {
		if it.Type == KTGlue && !it.TrailingCollapsible {
			share := dimen.Dimen(int64(residual) * int64(max1(it.Stretch)) / int64(totalStretch))
			lb.Items[i].W += share
		}
	}
	lb.Justified = true
	lb.Width = avail
	return lb
}

func isSpaceKnot(k Knot) bool {
	if k.Type != KTTextBox {
		return false
	}
	for _, r := range k.Text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return len(k.Text) > 0
}
