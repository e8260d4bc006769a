/*
Package cssdefault is the default style.Cascade implementation: author
and user stylesheets parsed with douceur, selectors matched with
cascadia, counter-text formatted for the handful of CSS counter styles
plutobook-class documents actually use, case-folded with x/text/cases.

This is the concrete realization the teacher's engine/dom/cssom package
doc comment describes but never finishes ("There is not very much open
source Go code around for supporting us in implementing a styling
engine, except ... cascadia ... we will have to compromise on many
features in order to complete this in a realistic time frame") — the
same compromise (cascadia for selectors, last-rule-wins-per-specificity
cascade, a narrow property set) is carried here deliberately.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssdefault

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/npillmayer/quire/engine/dom"
	qcss "github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/quire/engine/style"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// rule is one compiled selector/declaration-block pair, carrying the
// specificity and source order needed to resolve the cascade.
type rule struct {
	sel         cascadia.Selector
	specificity [3]int
	order       int
	decls       []*css.Declaration
}

// Cascade is a concrete style.Cascade backed by parsed CSS text.
type Cascade struct {
	rules      []rule
	pageRules  map[string][]rule // keyed by page selector name, "" = unnamed
	nextOrder  int
	defaultMap map[string]style.Display // tag -> default display, UA sheet
}

// New compiles author and user stylesheet text (in cascade order: user
// sheet first, then author sheet, matching CSS's user-origin-before-
// author-origin rule before specificity is applied) into a Cascade.
func New(userCSS, authorCSS string) (*Cascade, error) {
	c := &Cascade{
		pageRules:  map[string][]rule{},
		defaultMap: uaDefaultDisplay(),
	}
	if strings.TrimSpace(userCSS) != "" {
		if err := c.addSheet(userCSS); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(authorCSS) != "" {
		if err := c.addSheet(authorCSS); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cascade) addSheet(text string) error {
	sheet, err := parser.Parse(text)
	if err != nil {
		return err
	}
	for _, r := range sheet.Rules {
		if strings.HasPrefix(r.Prelude, "@page") {
			name := strings.TrimSpace(strings.TrimPrefix(r.Prelude, "@page"))
			c.pageRules[name] = append(c.pageRules[name], rule{
				order: c.nextOrder, decls: r.Declarations,
			})
			c.nextOrder++
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(r.Prelude), "@") {
			// @media, @font-face, @keyframes, ... not modeled here;
			// media query gating happens in EvaluateMedia instead.
			continue
		}
		for _, selText := range strings.Split(r.Prelude, ",") {
			selText = strings.TrimSpace(selText)
			if selText == "" {
				continue
			}
			sel, err := cascadia.Compile(selText)
			if err != nil {
				T().Debugf("cssdefault: skipping selector %q: %v", selText, err)
				continue
			}
			c.rules = append(c.rules, rule{
				sel:         sel,
				specificity: specificityOf(selText),
				order:       c.nextOrder,
				decls:       r.Declarations,
			})
			c.nextOrder++
		}
	}
	return nil
}

// specificityOf computes a rough (ids, classes+attrs, types) CSS
// specificity triple for cascade ordering, good enough for the
// selector vocabulary cascadia itself supports.
func specificityOf(sel string) [3]int {
	var s [3]int
	s[0] = strings.Count(sel, "#")
	s[1] = strings.Count(sel, ".") + strings.Count(sel, "[")
	// crude type-selector count: words not preceded by '.', '#', ':', '['
	for _, tok := range strings.FieldsFunc(sel, func(r rune) bool {
		return r == ' ' || r == '>' || r == '+' || r == '~'
	}) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok[0] != '.' && tok[0] != '#' && tok[0] != ':' && tok[0] != '[' && tok != "*" {
			s[2]++
		}
	}
	return s
}

func less(a, b rule) bool {
	if a.specificity != b.specificity {
		for i := 0; i < 3; i++ {
			if a.specificity[i] != b.specificity[i] {
				return a.specificity[i] < b.specificity[i]
			}
		}
	}
	return a.order < b.order
}

// matchingDecls returns every declaration that applies to n, in
// cascade order (low to high precedence), from the given rule set.
func matchingDecls(n *html.Node, rules []rule) []*css.Declaration {
	matched := make([]rule, 0, 8)
	for _, r := range rules {
		if r.sel != nil && n != nil && r.sel.Match(n) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	var out []*css.Declaration
	for _, r := range matched {
		out = append(out, r.decls...)
	}
	return out
}

// StyleFor implements style.Cascade.
func (c *Cascade) StyleFor(element *dom.Node, parent *style.BoxStyle) *style.BoxStyle {
	if element == nil {
		return nil
	}
	s := inheritedDefaults(parent)
	applyUADefaults(s, element, c.defaultMap)
	for _, d := range matchingDecls(element.HTMLNode(), c.rules) {
		applyDeclaration(s, d.Property, d.Value)
	}
	if inlineStyle, ok := element.Attribute("style"); ok {
		for _, d := range parseInlineDecls(inlineStyle) {
			applyDeclaration(s, d.Property, d.Value)
		}
	}
	if s.IsNone() {
		return nil
	}
	return s
}

// PseudoStyleFor implements style.Cascade. Pseudo-element selectors
// (`::before`, `::marker`, ...) are not matched as such: cascadia only
// matches real nodes, so this reuses StyleFor for element. A marker
// gets an inline style when element is a list item; any other pseudo
// gets an inline style carrying element's Content when that is
// non-empty.
func (c *Cascade) PseudoStyleFor(element *dom.Node, pseudo style.Pseudo, parent *style.BoxStyle) *style.BoxStyle {
	base := c.StyleFor(element, parent)
	if base == nil {
		return nil
	}
	if pseudo == style.PseudoMarker {
		if base.Display != style.DisplayListItem {
			return nil
		}
		marker := inheritedDefaults(base)
		marker.Display = style.DisplayInline
		return marker
	}
	if base.Content == "" {
		return nil
	}
	s := inheritedDefaults(base)
	s.Display = style.DisplayInline
	s.Content = base.Content
	return s
}

// StyleForPage implements style.Cascade.
func (c *Cascade) StyleForPage(pageName string, pageIndex int, pseudo style.Pseudo) *style.BoxStyle {
	s := inheritedDefaults(nil)
	s.Display = style.DisplayBlock
	for _, key := range []string{"", pageName} {
		rules := c.pageRules[key]
		sort.SliceStable(rules, func(i, j int) bool { return rules[i].order < rules[j].order })
		for _, r := range rules {
			for _, d := range r.decls {
				applyDeclaration(s, d.Property, d.Value)
			}
		}
	}
	return s
}

// StyleForPageMargin implements style.Cascade. It always returns nil:
// this Cascade flattens @page bodies into plain declarations, nested
// `@top-center { ... }` blocks are not parsed, and no other margin-box
// convention is recognized, so no margin box ever gets a style.
func (c *Cascade) StyleForPageMargin(pageName string, pageIndex int, marginType style.MarginBoxType, pageStyle *style.BoxStyle) *style.BoxStyle {
	return nil
}

// CounterText implements style.Cascade.
func (c *Cascade) CounterText(counterName, counterStyle string, value int) string {
	return formatCounter(value, counterStyle)
}

// EvaluateMedia implements style.Cascade. Supports the handful of
// print-relevant media features plutobook-class documents query:
// `print`, `screen`, `min-width`/`max-width` against the viewport.
func (c *Cascade) EvaluateMedia(query string, ctx style.MediaContext) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || q == "all" {
		return true
	}
	if strings.Contains(q, "screen") {
		return false
	}
	if strings.Contains(q, "print") {
		return true
	}
	if strings.Contains(q, "min-width") || strings.Contains(q, "max-width") {
		d, err := qcss.ParseDimen(extractParen(q))
		if err != nil || !d.IsAbsolute() {
			return true
		}
		width := ctx.ViewportWidth
		if strings.Contains(q, "min-width") {
			return width.IsAbsolute() && width.Unwrap() >= d.Unwrap()
		}
		return width.IsAbsolute() && width.Unwrap() <= d.Unwrap()
	}
	return true
}

func extractParen(q string) string {
	i, j := strings.IndexByte(q, ':'), strings.IndexByte(q, ')')
	if i < 0 || j < 0 || j <= i {
		return ""
	}
	return strings.TrimSpace(q[i+1 : j])
}

func parseInlineDecls(text string) []*css.Declaration {
	sheet, err := parser.Parse("x{" + text + "}")
	if err != nil || len(sheet.Rules) == 0 {
		return nil
	}
	return sheet.Rules[0].Declarations
}

func formatCounter(value int, counterStyle string) string {
	switch counterStyle {
	case "", "decimal":
		return strconv.Itoa(value)
	case "decimal-leading-zero":
		if value < 10 {
			return "0" + strconv.Itoa(value)
		}
		return strconv.Itoa(value)
	case "lower-roman":
		return lowerCaser.String(toRoman(value))
	case "upper-roman":
		return toRoman(value)
	case "lower-alpha", "lower-latin":
		return toAlpha(value, false)
	case "upper-alpha", "upper-latin":
		return toAlpha(value, true)
	default:
		return strconv.Itoa(value)
	}
}

// lowerCaser and upperCaser do the actual case folding for counter-text
// formatting (lower-roman/upper-alpha/etc.), using x/text/cases instead
// of strings.ToLower/ToUpper so accented Latin list markers (an author
// stylesheet's `content: counter(x, upper-alpha)` combined with a
// non-English lang attribute) fold correctly instead of only handling
// ASCII.
var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

var romanTable = []struct {
	v int
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, t := range romanTable {
		for n >= t.v {
			b.WriteString(t.s)
			n -= t.v
		}
	}
	return b.String()
}

func toAlpha(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	if upper {
		return upperCaser.String(string(b))
	}
	return string(b)
}
