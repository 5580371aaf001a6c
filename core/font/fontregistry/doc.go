/*
Package fontregistry manages a registry for loaded fonts.

The registry is a cache of font data, keyed by family and style. Fonts are
loaded lazily, from the file recorded in a font manifest, and verified
against the manifest's size and SHA-256 before they enter the cache. Every
font is therefore verified at most once per process. Cached fonts are never
evicted or changed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'multiscript.fonts'
func tracer() tracing.Trace {
	return tracing.Select("multiscript.fonts")
}
