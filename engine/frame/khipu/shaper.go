package khipu

import (
	"bytes"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/engine/style"
)

// HarfBuzzShaper measures text with a real HarfBuzz shaping pass
// instead of MonospaceShaper's 3/5-em-per-rune guess, summing the
// shaped glyphs' X-advances (§4.4 "shaping text on demand").
//
// It holds one embedded Regular-weight face (x/image's bundled
// Go-font TTF bytes, parsed once as a HarfBuzz font) and reuses it
// across calls at whatever point size the style asks for — font
// selection by family/weight/style is future work; this is the same
// scope the teacher's own Shape() entry point covers (one font per
// call, chosen by the caller).
type HarfBuzzShaper struct {
	once sync.Once
	font *hb.Font
	err  error
}

func (s *HarfBuzzShaper) ensureFont() {
	s.once.Do(func() {
		face, err := hbtt.Parse(bytes.NewReader(goregular.TTF), true)
		if err != nil {
			s.err = err
			return
		}
		s.font = hb.NewFont(face)
	})
}

// Measure implements Shaper by running the embedded face through
// HarfBuzz at the style's font size and summing the resulting
// glyphs' X-advances; falls back to MonospaceShaper's estimate if the
// embedded font failed to parse (it never does for the bundled TTF,
// but Measure must not panic a layout pass over a font-loading bug).
func (s *HarfBuzzShaper) Measure(text string, sty *style.BoxStyle) (width, height dimen.Dimen) {
	s.ensureFont()
	if s.err != nil || s.font == nil || text == "" {
		return MonospaceShaper{}.Measure(text, sty)
	}
	em := dimen.Dimen(12 * dimen.PT)
	if sty != nil && sty.Font.Size.IsAbsolute() {
		em = sty.Font.Size.Unwrap()
	}
	s.font.Ptem = float32(em) / float32(dimen.PT)

	runes := []rune(text)
	buf := hb.NewBuffer()
	buf.Props.Direction = hb.LeftToRight
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(s.font, nil)

	var advance int32
	for _, pos := range buf.Pos {
		advance += pos.XAdvance
	}
	// HarfBuzz reports advances in the font's native units (here,
	// goregular's unitsPerEm-scaled integers); font.Ptem pins that
	// scale to our em size, so the summed XAdvance already lands in
	// the same fixed-point unit fitLine compares against.
	width = dimen.Dimen(advance)
	if width <= 0 {
		width = dimen.Dimen(len([]rune(text))) * em * 3 / 5
	}
	return width, em * 6 / 5
}

var _ Shaper = (*HarfBuzzShaper)(nil)
