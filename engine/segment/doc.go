/*
Package segment splits sanitized text into runs of a single script.

Segmentation works on grapheme clusters, so combining marks, variation
selectors and emoji modifiers always stay with their base character. Every
cluster is classified by its base character (see package script). Common
characters, i.e. whitespace, digits and punctuation, do not start a run of
their own: they belong to the preceding run, or to Latin if there is none.
Whitespace directly in front of a change of script moves to the following
run, which keeps "Part 2" in one run and splits "สวัสดี Roblox" into
"สวัสดี" and " Roblox".

Segments partition the input: they have no gaps, do not overlap, and
concatenating their texts reproduces the input exactly. Two adjacent
segments never carry the same script tag.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package segment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'multiscript.segment'.
func tracer() tracing.Trace {
	return tracing.Select("multiscript.segment")
}
