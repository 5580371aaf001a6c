package resources

import (
	"fmt"
	"sync"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/fontregistry"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/multiscript/engine/segment"
	"github.com/npillmayer/schuko"
)

// Role is the part a font family plays for font resolution.
type Role string

// Roles of font families.
const (
	Universal Role = "universal"
	CJK       Role = "cjk"
	Korean    Role = "korean"
	Arabic    Role = "arabic"
	Hebrew    Role = "hebrew"
	Emoji     Role = "emoji"
	Symbols   Role = "symbols"
)

var defaultFamilies = map[Role]string{
	Universal: "Sarabun",
	CJK:       "NotoSansJP",
	Korean:    "NotoSansKR",
	Arabic:    "NotoSansArabic",
	Hebrew:    "NotoSansHebrew",
	Emoji:     "NotoEmoji",
	Symbols:   "NotoSansSymbols2",
}

// RoleOf returns the role of the font family to use for a script.
func RoleOf(tag script.Tag) Role {
	switch tag {
	case script.Han, script.Hiragana, script.Katakana:
		return CJK
	case script.Hangul:
		return Korean
	case script.Arabic:
		return Arabic
	case script.Hebrew:
		return Hebrew
	case script.Emoji:
		return Emoji
	case script.Symbols:
		return Symbols
	}
	return Universal // Thai, Latin, Unknown
}

// Policy holds the preferred family for each role.
type Policy map[Role]string

// PolicyFromConfig reads preferred families from keys `fonts.family.<role>`.
// Roles not configured get a default family.
func PolicyFromConfig(conf schuko.Configuration) Policy {
	p := make(Policy, len(defaultFamilies))
	for role, family := range defaultFamilies {
		p[role] = family
		if conf == nil {
			continue
		}
		if f := conf.GetString("fonts.family." + string(role)); f != "" {
			p[role] = f
		}
	}
	return p
}

// ResolvedRun is a run of text together with the font to render it with.
type ResolvedRun struct {
	Text   string
	Family string
	Style  font.Style
	Script script.Tag
}

func (run ResolvedRun) String() string {
	return fmt.Sprintf("[%s %s %s %q]", run.Family, run.Style, run.Script, run.Text)
}

// Resolver maps script segments to fonts. A resolver is safe for concurrent
// use; it owns the cache of verified font data.
type Resolver struct {
	manifest *manifest.Manifest
	policy   Policy
	registry *fontregistry.Registry
	families map[script.Tag]string
	degraded sync.Once
}

// NewResolver creates a resolver for a font manifest. If m is nil or holds no
// fonts, the resolver runs in degraded mode, using the built-in fallback font
// for everything. conf may be nil.
func NewResolver(m *manifest.Manifest, conf schuko.Configuration) *Resolver {
	r := &Resolver{
		policy:   PolicyFromConfig(conf),
		families: make(map[script.Tag]string),
	}
	if m != nil && len(m.Entries) > 0 {
		r.manifest = m
		r.registry = fontregistry.NewRegistry(m)
	}
	for _, tag := range script.Tags() {
		r.families[tag] = r.chooseFamily(tag)
		tracer().Debugf("script %s → family %s", tag, r.families[tag])
	}
	return r
}

// Degraded is true if the resolver has no manifest to work with.
func (r *Resolver) Degraded() bool {
	return r.manifest == nil
}

func (r *Resolver) chooseFamily(tag script.Tag) string {
	if r.Degraded() {
		return font.FallbackFamily
	}
	role := RoleOf(tag)
	if role != Universal {
		if family := r.policy[role]; r.manifest.HasFamily(family) {
			return family
		}
		if covering := r.manifest.Covering(tag); len(covering) > 0 {
			return covering[0]
		}
	}
	return r.universalFamily()
}

// universalFamily is the configured universal family, or else a family
// covering Thai, or else one covering Latin, or else the first one.
func (r *Resolver) universalFamily() string {
	if family := r.policy[Universal]; r.manifest.HasFamily(family) {
		return family
	}
	for _, tag := range []script.Tag{script.Thai, script.Latin} {
		if covering := r.manifest.Covering(tag); len(covering) > 0 {
			return covering[0]
		}
	}
	return r.manifest.Families()[0]
}

// FamilyFor returns the font family used for a script.
func (r *Resolver) FamilyFor(tag script.Tag) string {
	if family, ok := r.families[tag]; ok {
		return family
	}
	return r.families[script.Unknown]
}

// styleFor returns style, if family has it. Bold falls back to Regular and
// vice versa.
func (r *Resolver) styleFor(family string, style font.Style) font.Style {
	if r.Degraded() {
		return style
	}
	if _, ok := r.manifest.Lookup(family, style); ok {
		return style
	}
	other := font.Regular
	if style == font.Regular {
		other = font.Bold
	}
	if _, ok := r.manifest.Lookup(family, other); ok {
		tracer().Debugf("family %s has no %s style, using %s", family, style, other)
		return other
	}
	return style
}

// Resolve maps every segment to a font family and style. Fonts needed are
// loaded and verified, if not done before. If a font fails verification,
// Resolve returns an error wrapping fontregistry.ErrFontIntegrity and no runs.
func (r *Resolver) Resolve(segs []segment.Segment, style font.Style) ([]ResolvedRun, error) {
	if r.Degraded() {
		r.degraded.Do(func() {
			tracer().Errorf("no font manifest available, rendering everything with %s",
				font.FallbackFamily)
		})
	}
	runs := make([]ResolvedRun, 0, len(segs))
	for _, seg := range segs {
		family := r.FamilyFor(seg.Script)
		st := r.styleFor(family, style)
		if _, err := r.Font(family, st); err != nil {
			return nil, err
		}
		runs = append(runs, ResolvedRun{
			Text:   seg.Text,
			Family: family,
			Style:  st,
			Script: seg.Script,
		})
	}
	return runs, nil
}

// Font returns the verified font for a family and style.
func (r *Resolver) Font(family string, style font.Style) (*font.ScalableFont, error) {
	if family == font.FallbackFamily && (r.Degraded() || !r.manifest.HasFamily(family)) {
		return font.FallbackFont(style), nil
	}
	if r.Degraded() {
		return nil, core.Error(core.EMISSING, "font %s %s not available without manifest", family, style)
	}
	return r.registry.Font(family, style)
}

// FontBytes returns the verified font data for a family and style, to be
// handed to a renderer.
func (r *Resolver) FontBytes(family string, style font.Style) ([]byte, error) {
	f, err := r.Font(family, style)
	if err != nil {
		return nil, err
	}
	return f.Binary, nil
}

// Preload loads and verifies all fonts of the manifest. Servers should call
// it once at startup, before serving requests.
func (r *Resolver) Preload() error {
	if r.Degraded() {
		return nil
	}
	return r.registry.Preload()
}
