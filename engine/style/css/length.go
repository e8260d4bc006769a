/*
Package css implements the CSS length tagged variant used by resolved
box styles (spec §3 "Lengths are a tagged variant `{auto, fixed(px),
percent, intrinsic (min/max/fit-content), calc, none, zero}`").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/quire/core/dimen"
	"github.com/npillmayer/quire/core/option"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Kind is a constant for matching one arm of the Length variant with
// option.Of{ css.Auto: ..., css.ContentMin: ... }.
type Kind int

const (
	_ Kind = iota
	Auto
	Inherit
	Initial
	ContentMin    // intrinsic minimum-content width/height
	ContentMax    // intrinsic maximum-content width/height
	ContentFit    // fit-content
	FontScaled    // em/ex/ch/rem — depends on a font, not yet resolved
	ViewScaled    // vw/vh/vmin/vmax — depends on the viewport, not yet resolved
	ContentScaled // calc() referencing the box's own content
)

const (
	kindNone uint32 = 0

	kindAbsolute uint32 = 0x0001
	kindAuto     uint32 = 0x0002
	kindInherit  uint32 = 0x0004
	kindInitial  uint32 = 0x0008
	kindCMin     uint32 = 0x0010
	kindCMax     uint32 = 0x0020
	kindCFit     uint32 = 0x0040
	kindCalc     uint32 = 0x0080

	kindEM      uint32 = 0x0100
	kindEX      uint32 = 0x0200
	kindCH      uint32 = 0x0400
	kindREM     uint32 = 0x0800
	kindVW      uint32 = 0x1000
	kindVH      uint32 = 0x2000
	kindVMIN    uint32 = 0x4000
	kindVMAX    uint32 = 0x8000
	kindPercent uint32 = 0x10000

	relativeMask uint32 = 0x1ff00
	contentMask  uint32 = 0x0007
)

// DimenT is a resolved (or not yet resolved) CSS length, box-model value,
// or generic dimension. The zero value is "none" (unset).
type DimenT struct {
	d       dimen.Dimen
	percent float64
	flags   uint32
}

// Dimen returns an unset length.
func Dimen() DimenT {
	return DimenT{}
}

// SomeDimen wraps a fixed, already-resolved length.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: kindAbsolute}
}

// AutoDimen returns the `auto` length.
func AutoDimen() DimenT {
	return DimenT{flags: kindAuto}
}

// ZeroDimen returns a fixed length of 0 — distinct from Dimen() ("none"),
// matching the spec's explicit `zero` variant arm.
func ZeroDimen() DimenT {
	return DimenT{flags: kindAbsolute}
}

// Percentage wraps a percentage length (p in the range e.g. 0..100).
func Percentage(p float64) DimenT {
	return DimenT{percent: p, flags: kindPercent}
}

// Intrinsic wraps one of the three intrinsic-size keywords.
func Intrinsic(kind Kind) DimenT {
	switch kind {
	case ContentMin:
		return DimenT{flags: kindCMin}
	case ContentMax:
		return DimenT{flags: kindCMax}
	case ContentFit:
		return DimenT{flags: kindCFit}
	}
	return DimenT{}
}

// DimenOption parses a property string value into a DimenT. Never
// returns an error: illegal input yields an unset dimension (§4.12,
// "Layout is total").
func DimenOption(p string) DimenT {
	switch strings.TrimSpace(p) {
	case "":
		return DimenT{}
	case "auto":
		return DimenT{flags: kindAuto}
	case "initial":
		return DimenT{flags: kindInitial}
	case "inherit":
		return DimenT{flags: kindInherit}
	case "fit-content":
		return DimenT{flags: kindCFit}
	case "min-content":
		return DimenT{flags: kindCMin}
	case "max-content":
		return DimenT{flags: kindCMax}
	case "none":
		return DimenT{}
	}
	d, err := ParseDimen(p)
	if err != nil {
		T().Debugf("css: dimension option from %q: %v", p, err)
		return DimenT{}
	}
	return d
}

// --- matching ----------------------------------------------------------------

// Match implements option.Type.
func (d DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(d, choices)
}

// MatchToDimen is a Match wrapper for the common case where every arm
// yields a dimen.Dimen: it unwraps the interface{} result for the
// caller. Panics if a matched arm produced a non-dimen.Dimen value,
// which would be a programmer error in the match table, not a data
// error.
func (d DimenT) MatchToDimen(choices interface{}) (dimen.Dimen, error) {
	v, err := option.Match(d, choices)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return v.(dimen.Dimen), nil
}

// Equals implements option.Type.
func (d DimenT) Equals(other interface{}) bool {
	switch i := other.(type) {
	case dimen.Dimen:
		return d.flags == kindAbsolute && d.d == i
	case int:
		return d.flags == kindAbsolute && d.d == dimen.Dimen(i)
	case Kind:
		switch i {
		case Auto:
			return d.flags&kindAuto > 0
		case Inherit:
			return d.flags&kindInherit > 0
		case Initial:
			return d.flags&kindInitial > 0
		case ContentMin:
			return d.flags&kindCMin > 0
		case ContentMax:
			return d.flags&kindCMax > 0
		case ContentFit:
			return d.flags&kindCFit > 0
		case FontScaled:
			return d.flags&(kindEM|kindEX|kindCH|kindREM) > 0
		case ViewScaled:
			return d.flags&(kindVW|kindVH|kindVMIN|kindVMAX) > 0
		case ContentScaled:
			return d.flags&kindCalc > 0
		}
	case string:
		if i == "%" {
			return d.IsPercent()
		}
	}
	return false
}

// IsNone reports whether d is unset.
func (d DimenT) IsNone() bool {
	return d.flags == kindNone
}

// IsAbsolute reports whether d holds a resolved fixed length.
func (d DimenT) IsAbsolute() bool {
	return d.flags == kindAbsolute
}

// IsPercent reports whether d is a percentage length.
func (d DimenT) IsPercent() bool {
	return d.flags&kindPercent > 0
}

// IsRelative reports whether d depends on font, viewport or percentage.
func (d DimenT) IsRelative() bool {
	return d.flags&(relativeMask) > 0
}

// IsIntrinsic reports whether d is one of min-/max-/fit-content.
func (d DimenT) IsIntrinsic() bool {
	return d.flags&(kindCMin|kindCMax|kindCFit) > 0
}

// Unwrap returns the fixed value of d. Only meaningful if IsAbsolute().
func (d DimenT) Unwrap() dimen.Dimen {
	return d.d
}

// Percent returns the percentage value of d. Only meaningful if IsPercent().
func (d DimenT) Percent() float64 {
	return d.percent
}

// Resolve turns a percentage length into a fixed length given the
// reference (the containing block's corresponding dimension), leaving
// any other kind untouched.
func (d DimenT) Resolve(reference dimen.Dimen) DimenT {
	if !d.IsPercent() {
		return d
	}
	return SomeDimen(dimen.Dimen(float64(reference) * d.percent / 100))
}

func (d DimenT) String() string {
	switch {
	case d.IsNone():
		return "none"
	case d.flags&kindAuto > 0:
		return "auto"
	case d.flags&kindInitial > 0:
		return "initial"
	case d.flags&kindInherit > 0:
		return "inherit"
	case d.flags&kindCMin > 0:
		return "min-content"
	case d.flags&kindCMax > 0:
		return "max-content"
	case d.flags&kindCFit > 0:
		return "fit-content"
	case d.IsPercent():
		return fmt.Sprintf("%g%%", d.percent)
	case d.IsAbsolute():
		return d.d.String()
	}
	return "calc(?)"
}

// --- parsing -------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|[a-zA-Z]{2,4})?$`)

var relUnitStringMap = map[string]uint32{
	"em": kindEM, "ex": kindEX, "ch": kindCH, "rem": kindREM,
	"vw": kindVW, "vh": kindVH, "vmin": kindVMIN, "vmax": kindVMAX,
}

// ParseDimen parses a raw CSS length string ("15px", "80%", "-1.5rem",
// "thin"/"medium"/"thick" border-width keywords).
func ParseDimen(s string) (DimenT, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return DimenT{}, nil
	}
	switch s {
	case "thin":
		return SomeDimen(dimen.PX / 2), nil
	case "medium":
		return SomeDimen(dimen.PX), nil
	case "thick":
		return SomeDimen(dimen.PX * 2), nil
	}
	m := dimenPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return DimenT{}, errors.New("css: format error parsing dimension")
	}
	if len(m) > 2 && m[2] == "%" {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return DimenT{}, errors.New("css: format error parsing percentage")
		}
		return Percentage(n), nil
	}
	scale := dimen.SP
	var relFlags uint32
	if len(m) > 2 && m[2] != "" {
		switch strings.ToLower(m[2]) {
		case "pt":
			scale = dimen.PT
		case "mm":
			scale = dimen.MM
		case "bp", "px":
			scale = dimen.BP
		case "cm":
			scale = dimen.CM
		case "in":
			scale = dimen.IN
		case "sp":
			scale = dimen.SP
		default:
			u := strings.ToLower(m[2])
			if flag, ok := relUnitStringMap[u]; ok {
				relFlags = flag
			} else {
				return DimenT{}, fmt.Errorf("css: unsupported unit %q", m[2])
			}
		}
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DimenT{}, errors.New("css: format error parsing dimension")
	}
	if relFlags != 0 {
		return DimenT{d: dimen.Dimen(n), flags: relFlags}, nil
	}
	return DimenT{d: dimen.Dimen(n * float64(scale)), flags: kindAbsolute}, nil
}

// MinDimen returns the smaller of two absolute lengths; an unset length
// loses to any set one.
func MinDimen(a, b DimenT) DimenT {
	if !a.IsAbsolute() {
		return b
	}
	if !b.IsAbsolute() {
		return a
	}
	if a.d < b.d {
		return a
	}
	return b
}

// MaxDimen returns the larger of two absolute lengths; an unset length
// loses to any set one.
func MaxDimen(a, b DimenT) DimenT {
	if !a.IsAbsolute() {
		return b
	}
	if !b.IsAbsolute() {
		return a
	}
	if a.d > b.d {
		return a
	}
	return b
}

var _ option.Type = DimenT{}
