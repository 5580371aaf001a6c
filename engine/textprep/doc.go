/*
Package textprep prepares text fields for rendering with multiple scripts.

A Pipeline runs a raw string through the three stages of text preparation:

   raw ─→ sanitize ─→ segment ─→ resolve ─→ []ResolvedRun

The result is a list of runs, each carrying text, a font family and a style,
ready to be handed to a renderer. The renderer must embed the fonts without
subsetting them, as subsetting drops the GPOS/GSUB/GDEF tables needed for
positioning Thai marks.

Sanitizing and segmenting never fail. Resolution fails only if a font's data
does not match the font manifest; then the request yields an error and no
runs at all.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textprep

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'multiscript.textprep'
func tracer() tracing.Trace {
	return tracing.Select("multiscript.textprep")
}
