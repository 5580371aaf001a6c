package textprep

import (
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/multiscript/core/locate/resources"
	"github.com/npillmayer/multiscript/engine/glyphing"
	"github.com/npillmayer/multiscript/engine/glyphing/harfbuzz"
	"github.com/npillmayer/multiscript/engine/sanitize"
	"github.com/npillmayer/multiscript/engine/segment"
	"github.com/npillmayer/schuko"
)

// Pipeline prepares text for rendering. It is safe for concurrent use.
type Pipeline struct {
	resolver *resources.Resolver
}

// NewPipeline creates a pipeline for the fonts of a manifest. m may be nil,
// in which case every run is set in the built-in fallback font.
func NewPipeline(m *manifest.Manifest, conf schuko.Configuration) *Pipeline {
	return &Pipeline{resolver: resources.NewResolver(m, conf)}
}

// WithResolver creates a pipeline using an existing font resolver.
func WithResolver(r *resources.Resolver) *Pipeline {
	return &Pipeline{resolver: r}
}

// Resolver returns the font resolver of the pipeline, e.g. for fetching font
// data.
func (p *Pipeline) Resolver() *resources.Resolver {
	return p.resolver
}

// Render prepares a raw string for rendering in regular style.
func (p *Pipeline) Render(raw string) ([]resources.ResolvedRun, error) {
	return p.RenderStyled(raw, font.Regular)
}

// RenderStyled prepares a raw string for rendering in a given style.
func (p *Pipeline) RenderStyled(raw string, style font.Style) ([]resources.ResolvedRun, error) {
	prep, err := p.Prepare(raw, style)
	if err != nil {
		return nil, err
	}
	return prep.Runs, nil
}

// Prepared holds the intermediate results of text preparation, for
// diagnostics.
type Prepared struct {
	Raw      string
	Clean    string
	Fixes    []sanitize.Fix
	Segments []segment.Segment
	Runs     []resources.ResolvedRun
}

// Prepare runs all stages of text preparation and returns every
// intermediate result. If resolution fails, Runs is empty.
func (p *Pipeline) Prepare(raw string, style font.Style) (Prepared, error) {
	prep := Prepared{Raw: raw}
	prep.Clean, prep.Fixes = sanitize.Sanitize(raw)
	if len(prep.Fixes) > 0 {
		tracer().Debugf("%d fixes applied to %q", len(prep.Fixes), raw)
	}
	prep.Segments = segment.Split(prep.Clean)
	runs, err := p.resolver.Resolve(prep.Segments, style)
	if err != nil {
		tracer().Errorf("cannot resolve fonts for %q: %v", prep.Clean, err)
		return prep, err
	}
	prep.Runs = runs
	return prep, nil
}

// RunProbe tells how well the font chosen for a run covers the run's text.
type RunProbe struct {
	Run          resources.ResolvedRun
	Missing      int    // number of .notdef glyphs after shaping
	MissingRunes []rune // code-points without a glyph
}

// Probe shapes every run with its font and reports missing glyphs. Probing
// is a diagnostic tool and not needed for rendering.
func (p *Pipeline) Probe(runs []resources.ResolvedRun) ([]RunProbe, error) {
	type fontKey struct {
		family string
		style  font.Style
	}
	shapers := make(map[fontKey]*harfbuzz.Shaper)
	probes := make([]RunProbe, len(runs))
	for i, run := range runs {
		k := fontKey{family: run.Family, style: run.Style}
		sh, ok := shapers[k]
		if !ok {
			fontBytes, err := p.resolver.FontBytes(run.Family, run.Style)
			if err != nil {
				return nil, err
			}
			if sh, err = harfbuzz.NewShaper(fontBytes); err != nil {
				return nil, err
			}
			shapers[k] = sh
		}
		seq := sh.Shape(run.Text, glyphing.ParamsFor(run.Script))
		probes[i] = RunProbe{
			Run:          run,
			Missing:      seq.Missing(),
			MissingRunes: seq.MissingRunes(),
		}
		if probes[i].Missing > 0 {
			tracer().Infof("font %s lacks glyphs for %q", run.Family, string(probes[i].MissingRunes))
		}
	}
	return probes, nil
}
