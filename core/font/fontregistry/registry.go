package fontregistry

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/schuko/tracing"
)

// ErrFontIntegrity is part of the error chain if font data on disk does not
// match its manifest entry.
var ErrFontIntegrity = errors.New("font integrity mismatch")

// Registry is a type for holding fonts loaded from a font manifest.
type Registry struct {
	sync.Mutex
	manifest *manifest.Manifest
	fonts    map[fontKey]*font.ScalableFont
}

type fontKey struct {
	family string
	style  font.Style
}

// NewRegistry creates an empty registry for the fonts of a manifest.
func NewRegistry(m *manifest.Manifest) *Registry {
	fr := &Registry{
		manifest: m,
		fonts:    make(map[fontKey]*font.ScalableFont),
	}
	return fr
}

// Font returns a verified font for a family and style. If the font has not
// been loaded yet, it is read from disk and checked against the manifest.
// A font failing the check is not cached and an error wrapping
// ErrFontIntegrity is returned; a later call will try again.
func (fr *Registry) Font(family string, style font.Style) (*font.ScalableFont, error) {
	k := fontKey{family: family, style: style}
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[k]; ok {
		return f, nil
	}
	e, ok := fr.manifest.Lookup(family, style)
	if !ok {
		return nil, core.Error(core.EMISSING, "font %s %s not in manifest", family, style)
	}
	f, err := fr.load(e)
	if err != nil {
		tracer().Errorf("registry cannot load %s: %v", e, err)
		return nil, err
	}
	tracer().Infof("registry caches font %s", e)
	fr.fonts[k] = f
	return f, nil
}

func (fr *Registry) load(e manifest.Entry) (*font.ScalableFont, error) {
	fpath := fr.manifest.Path(e)
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font file %s cannot be read", fpath)
	}
	if int64(len(data)) != e.SizeBytes {
		err = fmt.Errorf("%w: %s has %d bytes, manifest says %d", ErrFontIntegrity,
			e.RelativePath, len(data), e.SizeBytes)
		return nil, core.WrapError(err, core.EINTEGRITY, "font %s %s has been modified", e.Family, e.Style)
	}
	if digest := manifest.Digest(data); digest != e.SHA256 {
		err = fmt.Errorf("%w: %s has SHA-256 %s, manifest says %s", ErrFontIntegrity,
			e.RelativePath, digest, e.SHA256)
		return nil, core.WrapError(err, core.EINTEGRITY, "font %s %s has been modified", e.Family, e.Style)
	}
	f, err := manifest.CheckFontData(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font %s %s is not usable", e.Family, e.Style)
	}
	f.Filepath = fpath
	return f, nil
}

// Preload loads and verifies all fonts of the manifest. It returns the first
// error encountered, after having tried every font.
func (fr *Registry) Preload() error {
	if fr.manifest == nil {
		return nil
	}
	var first error
	for _, e := range fr.manifest.Entries {
		if _, err := fr.Font(e.Family, e.Style); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Cached returns true if a font for family and style is in the registry.
func (fr *Registry) Cached(family string, style font.Style) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.fonts[fontKey{family: family, style: style}]
	return ok
}

// LogFontList is a helper function to dump the list of cached fonts
// to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	keys := make([]string, 0, len(fr.fonts))
	for k, f := range fr.fonts {
		keys = append(keys, fmt.Sprintf("font [%s %s] = %s", k.family, k.style, f.Filepath))
	}
	sort.Strings(keys)
	tracer().Infof("--- registered fonts ---")
	for _, k := range keys {
		tracer().Infof("%s", k)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
