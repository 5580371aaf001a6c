/*
Package resources resolves fonts for runs of text.

A Resolver maps each script segment to a font family and style, following
a fixed policy: Thai, Latin and unclassified text use the "universal"
family, which has to cover Thai and Latin. CJK, Hangul, Arabic, Hebrew,
emoji and symbols use a dedicated family if the font manifest holds one,
and the universal family otherwise. Every script resolves to some family;
there is no error for unsupported scripts.

Font data is loaded on first use and verified against the manifest once per
process. A font failing verification aborts the resolution request which
needs it, but nothing else.

If no manifest is available, the resolver runs in degraded mode and maps
every segment to the built-in Go Sans family.

Configuration

Preferred families are read from the configuration:

   fonts.family.universal   (default Sarabun)
   fonts.family.cjk         (default NotoSansJP)
   fonts.family.korean      (default NotoSansKR)
   fonts.family.arabic      (default NotoSansArabic)
   fonts.family.hebrew      (default NotoSansHebrew)
   fonts.family.emoji       (default NotoEmoji)
   fonts.family.symbols     (default NotoSansSymbols2)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'multiscript.resources'.
func tracer() tracing.Trace {
	return tracing.Select("multiscript.resources")
}
