/*
Package script classifies Unicode code-points into the small, closed set of
script tags the text preparation pipeline distinguishes.

Classification is a pure function of code-point ranges. It does not consult
fonts and it does not try to match ICU's script detection; every code-point
outside of the recognized blocks is either treated as Latin (Latin letters),
as "common" (whitespace, digits, punctuation; see IsCommon) or as Unknown.

Grapheme clusters are found with the UAX#29 grapheme breaker from
github.com/npillmayer/uax. Clients that need to look at "user perceived
characters", like the segmenter and the boundary spacing of the sanitizer,
use Clusters to iterate over them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package script

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'multiscript.segment'.
func tracer() tracing.Trace {
	return tracing.Select("multiscript.segment")
}
