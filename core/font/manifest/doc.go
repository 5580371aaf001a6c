/*
Package manifest keeps a verified inventory of the font files available to
the text pipeline.

A manifest is built once, by an offline step, from a font root directory.
The expected layout is one directory per family, holding a Regular and
a Bold font file:

   fonts/
      Sarabun/Sarabun-Regular.ttf
      Sarabun/Sarabun-Bold.ttf
      NotoSansJP/NotoSansJP-Regular.otf
      …

Every entry records size and SHA-256 of its file, together with the scripts
the font covers. At runtime the manifest is loaded from disk and never
changes afterwards; the file system is not scanned again. Verify re-hashes
all files of a manifest and is meant for CI runs, not for the request path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package manifest

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'multiscript.manifest'
func tracer() tracing.Trace {
	return tracing.Select("multiscript.manifest")
}
