/*
Package option implements generic pattern matching over optional values.

Many CSS properties are best modeled as a small closed set of variants
(unset, auto, inherit, a concrete value, ...) rather than a pointer or a
sentinel value. This package gives every optional type in the engine a
common `Match` vocabulary so that resolving such a variant reads like a
match expression instead of a cascade of if/else on sentinel constants.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package option

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// Tracer traces to the core tracer.
func Tracer() tracing.Trace {
	return gtrace.CoreTracer
}
