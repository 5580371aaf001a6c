/*
Package sanitize repairs arbitrary user-sourced strings so they are safe to
hand over to a shaper and renderer.

Titles, summaries and channel names arrive in every script imaginable and
quite often carry artifacts from legacy encodings, copy-and-paste or
right-to-left editors: zero-width characters, bidi overrides, decomposed
Thai SARA AM, tone marks typed before their vowel, and so on. None of these
lets rendering fail with an error; they produce overlapping glyphs, tofu
boxes or misplaced diacritics instead.

Sanitize applies a fixed sequence of repair steps:

   1. NFC normalization
   2. stripping of zero-width characters
   3. stripping of bidi control characters
   4. replacing control characters by a single space
   5. Thai grapheme cluster repair (SARA AM, tone mark order, duplicate and
      orphaned marks)
   6. NFC normalization once more, if any removal left text denormalized
   7. spacing at script boundaries

Every modification is recorded as a Fix. Fixes are meant for tests and
diagnostics, never for the renderer.

Sanitize is a total function: it accepts any input and is idempotent, i.e.
sanitizing an already sanitized string yields no fixes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sanitize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'multiscript.sanitize'.
func tracer() tracing.Trace {
	return tracing.Select("multiscript.sanitize")
}
