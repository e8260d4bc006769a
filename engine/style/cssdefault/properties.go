package cssdefault

import (
	"strconv"
	"strings"

	"github.com/npillmayer/quire/engine/dom"
	qcss "github.com/npillmayer/quire/engine/style/css"
	"github.com/npillmayer/quire/engine/style"
)

// uaDefaultDisplay is the user-agent stylesheet's tag -> display map,
// generalized from the teacher's DisplayPropertyForHTMLNode switch
// (engine/dom/style/defaults.go) to the full display vocabulary this
// engine supports.
func uaDefaultDisplay() map[string]style.Display {
	m := map[string]style.Display{
		"html": style.DisplayBlock, "body": style.DisplayBlock,
		"div": style.DisplayBlock, "p": style.DisplayBlock,
		"section": style.DisplayBlock, "article": style.DisplayBlock,
		"aside": style.DisplayBlock, "header": style.DisplayBlock,
		"footer": style.DisplayBlock, "nav": style.DisplayBlock,
		"figure": style.DisplayBlock, "figcaption": style.DisplayBlock,
		"h1": style.DisplayBlock, "h2": style.DisplayBlock,
		"h3": style.DisplayBlock, "h4": style.DisplayBlock,
		"h5": style.DisplayBlock, "h6": style.DisplayBlock,
		"ul": style.DisplayBlock, "ol": style.DisplayBlock,
		"blockquote": style.DisplayBlock, "pre": style.DisplayBlock,
		"hr": style.DisplayBlock, "address": style.DisplayBlock,
		"li":       style.DisplayListItem,
		"span":     style.DisplayInline,
		"a":        style.DisplayInline,
		"i":        style.DisplayInline,
		"b":        style.DisplayInline,
		"strong":   style.DisplayInline,
		"em":       style.DisplayInline,
		"small":    style.DisplayInline,
		"sub":      style.DisplayInline,
		"sup":      style.DisplayInline,
		"code":     style.DisplayInline,
		"br":       style.DisplayInline,
		"img":      style.DisplayInlineBlock,
		"table":    style.DisplayTable,
		"thead":    style.DisplayTableHeaderGroup,
		"tbody":    style.DisplayTableRowGroup,
		"tfoot":    style.DisplayTableFooterGroup,
		"tr":       style.DisplayTableRow,
		"td":       style.DisplayTableCell,
		"th":       style.DisplayTableCell,
		"colgroup": style.DisplayTableColumnGroup,
		"col":      style.DisplayTableColumn,
		"caption":  style.DisplayTableCaption,
		"head":     style.DisplayNone,
		"script":   style.DisplayNone,
		"style":    style.DisplayNone,
		"title":    style.DisplayNone,
		"meta":     style.DisplayNone,
		"link":     style.DisplayNone,
	}
	return m
}

// applyUADefaults sets display from the tag-to-display map (no other
// property) before any author/user rule is applied, so a rule can
// still override it.
func applyUADefaults(s *style.BoxStyle, element *dom.Node, defaults map[string]style.Display) {
	if element.Type() != dom.ElementNodeType {
		return
	}
	tag := element.NodeName()
	if d, ok := defaults[tag]; ok {
		s.Display = d
	} else {
		s.Display = style.DisplayInline
	}
}

// inheritedDefaults starts a new style record with the initial values
// for non-inherited properties and the parent's resolved value for
// inherited ones (color, font, vertical-align's length are font-
// relative so conceptually inherited too).
func inheritedDefaults(parent *style.BoxStyle) *style.BoxStyle {
	s := &style.BoxStyle{
		Display:  style.DisplayInline,
		Position: style.PositionStatic,
		Opacity:  1,
		Width:    qcss.AutoDimen(),
		Height:   qcss.AutoDimen(),
		MinWidth: qcss.ZeroDimen(), MinHeight: qcss.ZeroDimen(),
		MaxWidth: qcss.Dimen(), MaxHeight: qcss.Dimen(),
		Color:      style.Color{A: 255},
		Background: style.Color{},
		Font: style.Font{
			Family: []string{"serif"}, Size: qcss.SomeDimen(12 * 20),
			Weight: 400, LineHeight: qcss.Percentage(120),
		},
	}
	if parent != nil {
		s.Color = parent.Color
		s.Font = parent.Font
		s.OverflowX, s.OverflowY = style.OverflowVisible, style.OverflowVisible
	}
	return s
}

// applyDeclaration folds one `property: value` pair into s. Unknown
// properties are ignored (§4.12 "Layout is total": an unrecognized
// declaration never aborts styling).
func applyDeclaration(s *style.BoxStyle, prop, val string) {
	val = strings.TrimSpace(val)
	switch strings.ToLower(strings.TrimSpace(prop)) {
	case "display":
		s.Display = parseDisplay(val)
	case "position":
		s.Position = parsePosition(val)
	case "float":
		s.Float = parseFloat(val)
	case "clear":
		s.Clear = parseClear(val)
	case "width":
		s.Width = qcss.DimenOption(val)
	case "height":
		s.Height = qcss.DimenOption(val)
	case "min-width":
		s.MinWidth = qcss.DimenOption(val)
	case "min-height":
		s.MinHeight = qcss.DimenOption(val)
	case "max-width":
		s.MaxWidth = qcss.DimenOption(val)
	case "max-height":
		s.MaxHeight = qcss.DimenOption(val)
	case "margin":
		setEdges(&s.Margin, val)
	case "margin-top":
		s.Margin.Top = qcss.DimenOption(val)
	case "margin-right":
		s.Margin.Right = qcss.DimenOption(val)
	case "margin-bottom":
		s.Margin.Bottom = qcss.DimenOption(val)
	case "margin-left":
		s.Margin.Left = qcss.DimenOption(val)
	case "padding":
		setEdges(&s.Padding, val)
	case "padding-top":
		s.Padding.Top = qcss.DimenOption(val)
	case "padding-right":
		s.Padding.Right = qcss.DimenOption(val)
	case "padding-bottom":
		s.Padding.Bottom = qcss.DimenOption(val)
	case "padding-left":
		s.Padding.Left = qcss.DimenOption(val)
	case "top":
		s.Top = qcss.DimenOption(val)
	case "right":
		s.Right = qcss.DimenOption(val)
	case "bottom":
		s.Bottom = qcss.DimenOption(val)
	case "left":
		s.Left = qcss.DimenOption(val)
	case "color":
		s.Color = parseColor(val)
	case "background-color", "background":
		s.Background = parseColor(val)
	case "font-size":
		s.Font.Size = qcss.DimenOption(val)
	case "font-weight":
		s.Font.Weight = parseWeight(val)
	case "font-style":
		s.Font.Italic = val == "italic" || val == "oblique"
	case "font-family":
		s.Font.Family = splitCommaList(val)
	case "line-height":
		s.Font.LineHeight = qcss.DimenOption(val)
	case "overflow":
		s.OverflowX, s.OverflowY = parseOverflow(val), parseOverflow(val)
	case "overflow-x":
		s.OverflowX = parseOverflow(val)
	case "overflow-y":
		s.OverflowY = parseOverflow(val)
	case "opacity":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			s.Opacity = f
		}
	case "z-index":
		if val == "auto" {
			s.HasZIndex = false
		} else if n, err := strconv.Atoi(val); err == nil {
			s.ZIndex, s.HasZIndex = n, true
		}
	case "mix-blend-mode":
		s.BlendMode = parseBlend(val)
	case "vertical-align":
		s.VerticalAlign, s.VerticalAlignLength = parseVAlign(val)
	case "transform":
		s.Transform = val
	case "column-count":
		if val == "auto" {
			s.ColumnCount = 0
		} else if n, err := strconv.Atoi(val); err == nil {
			s.ColumnCount = n
		}
	case "column-width":
		s.ColumnWidth = qcss.DimenOption(val)
	case "column-gap":
		s.ColumnGap = qcss.DimenOption(val)
	case "column-fill":
		if val == "auto" {
			s.ColumnFill = style.ColumnFillAuto
		} else {
			s.ColumnFill = style.ColumnFillBalance
		}
	case "column-span":
		s.ColumnSpanAll = val == "all"
	case "break-before":
		s.BreakBefore = parseBreak(val)
	case "break-after":
		s.BreakAfter = parseBreak(val)
	case "break-inside":
		s.BreakInside = parseBreak(val)
	case "border-collapse":
		s.BorderCollapse = val == "collapse"
	case "border-top-width":
		s.Border[0].Width = qcss.DimenOption(val)
	case "border-right-width":
		s.Border[1].Width = qcss.DimenOption(val)
	case "border-bottom-width":
		s.Border[2].Width = qcss.DimenOption(val)
	case "border-left-width":
		s.Border[3].Width = qcss.DimenOption(val)
	case "border-top-style":
		s.Border[0].Style = parseBorderStyle(val)
	case "border-right-style":
		s.Border[1].Style = parseBorderStyle(val)
	case "border-bottom-style":
		s.Border[2].Style = parseBorderStyle(val)
	case "border-left-style":
		s.Border[3].Style = parseBorderStyle(val)
	case "border-top-color":
		s.Border[0].Color = parseColor(val)
	case "border-right-color":
		s.Border[1].Color = parseColor(val)
	case "border-bottom-color":
		s.Border[2].Color = parseColor(val)
	case "border-left-color":
		s.Border[3].Color = parseColor(val)
	case "border-radius":
		setCornerRadii(&s.BorderRadius, val)
	case "border-top-left-radius":
		s.BorderRadius[0] = qcss.DimenOption(val)
	case "border-top-right-radius":
		s.BorderRadius[1] = qcss.DimenOption(val)
	case "border-bottom-right-radius":
		s.BorderRadius[2] = qcss.DimenOption(val)
	case "border-bottom-left-radius":
		s.BorderRadius[3] = qcss.DimenOption(val)
	case "content":
		s.Content = parseContent(val)
	}
}

// setCornerRadii expands the `border-radius` shorthand (1, 2 or 4
// values) into BoxStyle's [top-left, top-right, bottom-right,
// bottom-left] corner order, mirroring setEdges' side shorthand.
func setCornerRadii(r *[4]qcss.DimenT, val string) {
	parts := strings.Fields(val)
	switch len(parts) {
	case 1:
		v := qcss.DimenOption(parts[0])
		r[0], r[1], r[2], r[3] = v, v, v, v
	case 2:
		tlbr, trbl := qcss.DimenOption(parts[0]), qcss.DimenOption(parts[1])
		r[0], r[2] = tlbr, tlbr
		r[1], r[3] = trbl, trbl
	case 3:
		r[0] = qcss.DimenOption(parts[0])
		r[1], r[3] = qcss.DimenOption(parts[1]), qcss.DimenOption(parts[1])
		r[2] = qcss.DimenOption(parts[2])
	case 4:
		r[0] = qcss.DimenOption(parts[0])
		r[1] = qcss.DimenOption(parts[1])
		r[2] = qcss.DimenOption(parts[2])
		r[3] = qcss.DimenOption(parts[3])
	}
}

func setEdges(e *style.Edges, val string) {
	parts := strings.Fields(val)
	switch len(parts) {
	case 1:
		v := qcss.DimenOption(parts[0])
		e.Top, e.Right, e.Bottom, e.Left = v, v, v, v
	case 2:
		v, h := qcss.DimenOption(parts[0]), qcss.DimenOption(parts[1])
		e.Top, e.Bottom = v, v
		e.Right, e.Left = h, h
	case 3:
		e.Top = qcss.DimenOption(parts[0])
		e.Right, e.Left = qcss.DimenOption(parts[1]), qcss.DimenOption(parts[1])
		e.Bottom = qcss.DimenOption(parts[2])
	case 4:
		e.Top = qcss.DimenOption(parts[0])
		e.Right = qcss.DimenOption(parts[1])
		e.Bottom = qcss.DimenOption(parts[2])
		e.Left = qcss.DimenOption(parts[3])
	}
}

func parseDisplay(v string) style.Display {
	switch v {
	case "none":
		return style.DisplayNone
	case "block":
		return style.DisplayBlock
	case "inline":
		return style.DisplayInline
	case "inline-block":
		return style.DisplayInlineBlock
	case "flex":
		return style.DisplayFlex
	case "inline-flex":
		return style.DisplayInlineFlex
	case "table":
		return style.DisplayTable
	case "inline-table":
		return style.DisplayInlineTable
	case "table-row-group":
		return style.DisplayTableRowGroup
	case "table-header-group":
		return style.DisplayTableHeaderGroup
	case "table-footer-group":
		return style.DisplayTableFooterGroup
	case "table-row":
		return style.DisplayTableRow
	case "table-column-group":
		return style.DisplayTableColumnGroup
	case "table-column":
		return style.DisplayTableColumn
	case "table-cell":
		return style.DisplayTableCell
	case "table-caption":
		return style.DisplayTableCaption
	case "list-item":
		return style.DisplayListItem
	}
	return style.DisplayInline
}

func parsePosition(v string) style.Position {
	switch v {
	case "relative":
		return style.PositionRelative
	case "absolute":
		return style.PositionAbsolute
	case "fixed":
		return style.PositionFixed
	case "sticky":
		return style.PositionSticky
	}
	return style.PositionStatic
}

func parseFloat(v string) style.Float {
	switch v {
	case "left":
		return style.FloatLeft
	case "right":
		return style.FloatRight
	}
	return style.FloatNone
}

func parseClear(v string) style.Clear {
	switch v {
	case "left":
		return style.ClearLeft
	case "right":
		return style.ClearRight
	case "both":
		return style.ClearBoth
	}
	return style.ClearNone
}

func parseOverflow(v string) style.Overflow {
	switch v {
	case "hidden":
		return style.OverflowHidden
	case "scroll":
		return style.OverflowScroll
	case "auto":
		return style.OverflowAuto
	}
	return style.OverflowVisible
}

func parseBlend(v string) style.BlendMode {
	switch v {
	case "multiply":
		return style.BlendMultiply
	case "screen":
		return style.BlendScreen
	case "overlay":
		return style.BlendOverlay
	case "darken":
		return style.BlendDarken
	case "lighten":
		return style.BlendLighten
	}
	return style.BlendNormal
}

func parseBreak(v string) style.BreakMode {
	switch v {
	case "avoid":
		return style.BreakAvoid
	case "always":
		return style.BreakAlways
	case "page":
		return style.BreakPage
	case "column":
		return style.BreakColumn
	case "avoid-page":
		return style.BreakAvoidPage
	case "avoid-column":
		return style.BreakAvoidColumn
	case "recto":
		return style.BreakRecto
	case "verso":
		return style.BreakVerso
	case "left":
		return style.BreakLeft
	case "right":
		return style.BreakRight
	}
	return style.BreakAuto
}

func parseBorderStyle(v string) style.BorderStyle {
	switch v {
	case "hidden":
		return style.BorderHidden
	case "solid":
		return style.BorderSolid
	case "dashed":
		return style.BorderDashed
	case "dotted":
		return style.BorderDotted
	case "double":
		return style.BorderDouble
	case "groove":
		return style.BorderGroove
	case "ridge":
		return style.BorderRidge
	case "inset":
		return style.BorderInset
	case "outset":
		return style.BorderOutset
	}
	return style.BorderNone
}

func parseVAlign(v string) (style.VerticalAlign, qcss.DimenT) {
	switch v {
	case "top":
		return style.VAlignTop, qcss.Dimen()
	case "middle":
		return style.VAlignMiddle, qcss.Dimen()
	case "bottom":
		return style.VAlignBottom, qcss.Dimen()
	case "text-top":
		return style.VAlignTextTop, qcss.Dimen()
	case "text-bottom":
		return style.VAlignTextBottom, qcss.Dimen()
	case "sub":
		return style.VAlignSub, qcss.Dimen()
	case "super":
		return style.VAlignSuper, qcss.Dimen()
	case "baseline":
		return style.VAlignBaseline, qcss.Dimen()
	}
	return style.VAlignLength, qcss.DimenOption(v)
}

func parseWeight(v string) int {
	switch v {
	case "normal":
		return 400
	case "bold":
		return 700
	case "bolder":
		return 700
	case "lighter":
		return 300
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return 400
}

func splitCommaList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseContent(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) && len(v) >= 2 {
		return v[1 : len(v)-1]
	}
	return v
}

var namedColors = map[string]style.Color{
	"black": {A: 255}, "white": {255, 255, 255, 255},
	"red": {255, 0, 0, 255}, "green": {0, 128, 0, 255},
	"blue": {0, 0, 255, 255}, "gray": {128, 128, 128, 255},
	"grey": {128, 128, 128, 255}, "transparent": {},
}

func parseColor(v string) style.Color {
	v = strings.TrimSpace(v)
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return c
	}
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			r, _ := strconv.ParseUint(hex[0:2], 16, 8)
			g, _ := strconv.ParseUint(hex[2:4], 16, 8)
			b, _ := strconv.ParseUint(hex[4:6], 16, 8)
			return style.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
	}
	if strings.HasPrefix(v, "rgb") {
		inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(v, "rgba"), "rgb"), ")")
		inner = strings.Trim(inner, "( )")
		parts := strings.Split(inner, ",")
		c := style.Color{A: 255}
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
				c.R = uint8(n)
			}
			if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				c.G = uint8(n)
			}
			if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
				c.B = uint8(n)
			}
		}
		if len(parts) == 4 {
			if f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err == nil {
				c.A = uint8(f * 255)
			}
		}
		return c
	}
	return style.Color{A: 255}
}
