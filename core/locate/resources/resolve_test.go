package resources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/fontregistry"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/multiscript/engine/sanitize"
	"github.com/npillmayer/multiscript/engine/segment"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// buildManifest creates a font root from Go fonts, using the directory names
// as family names.
func buildManifest(t *testing.T, files map[string][]byte) *manifest.Manifest {
	root := t.TempDir()
	for name, data := range files {
		fpath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fpath), 0755))
		require.NoError(t, os.WriteFile(fpath, data, 0644))
	}
	m, err := manifest.Build(root)
	require.NoError(t, err)
	return m
}

func universalOnly(t *testing.T) *manifest.Manifest {
	return buildManifest(t, map[string][]byte{
		"Sarabun/Sarabun-Regular.ttf": goregular.TTF,
		"Sarabun/Sarabun-Bold.ttf":    gobold.TTF,
	})
}

func segs(tags ...script.Tag) []segment.Segment {
	s := make([]segment.Segment, len(tags))
	for i, tag := range tags {
		s[i] = segment.Segment{Text: tag.String(), Script: tag}
	}
	return s
}

func TestFallbackGuarantee(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	r := NewResolver(universalOnly(t), nil)
	runs, err := r.Resolve(segs(script.Tags()...), font.Regular)
	require.NoError(t, err)
	require.Len(t, runs, len(script.Tags()))
	for _, run := range runs {
		assert.Equal(t, "Sarabun", run.Family, "family for %s", run.Script)
	}
}

func TestScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	clean, _ := sanitize.Sanitize("\u0E2B\u0E31\u0E27\u0E43\u0E08\u0E0A\u0E4D\u0E32\u0E23\u0E31\u0E01 Roblox 99")
	r := NewResolver(universalOnly(t), nil)
	runs, err := r.Resolve(segment.Split(clean), font.Regular)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "\u0E2B\u0E31\u0E27\u0E43\u0E08\u0E0A\u0E33\u0E23\u0E31\u0E01", runs[0].Text)
	assert.Equal(t, " Roblox 99", runs[1].Text)
	for _, run := range runs {
		assert.Equal(t, "Sarabun", run.Family)
		assert.Equal(t, font.Regular, run.Style)
	}
}

func TestDedicatedFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	m := buildManifest(t, map[string][]byte{
		"Sarabun/Sarabun-Regular.ttf":               goregular.TTF,
		"NotoSansArabic/NotoSansArabic-Regular.ttf": gomono.TTF,
		"MyHebrew/MyHebrew-Regular.ttf":             gomono.TTF,
	})
	conf := testconfig.Conf{
		"fonts.family.hebrew": "MyHebrew",
	}
	r := NewResolver(m, conf)
	assert.Equal(t, "NotoSansArabic", r.FamilyFor(script.Arabic))
	assert.Equal(t, "MyHebrew", r.FamilyFor(script.Hebrew))
	assert.Equal(t, "Sarabun", r.FamilyFor(script.Han))
	assert.Equal(t, "Sarabun", r.FamilyFor(script.Hangul))
	assert.Equal(t, "Sarabun", r.FamilyFor(script.Thai))
	assert.Equal(t, "Sarabun", r.FamilyFor(script.Unknown))
}

func TestUniversalFamilyWithoutConfiguredFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	m := buildManifest(t, map[string][]byte{
		"Sans/Sans-Regular.ttf": goregular.TTF,
		"Mono/Mono-Regular.ttf": gomono.TTF,
	})
	r := NewResolver(m, testconfig.Conf{"fonts.family.universal": "DoesNotExist"})
	assert.Equal(t, "Mono", r.FamilyFor(script.Latin), "expected first Latin-covering family")
	r = NewResolver(m, testconfig.Conf{"fonts.family.universal": "Sans"})
	assert.Equal(t, "Sans", r.FamilyFor(script.Latin))
	assert.Equal(t, "Sans", r.FamilyFor(script.Emoji))
}

func TestBoldFallsBackToRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	m := buildManifest(t, map[string][]byte{
		"Sarabun/Sarabun-Regular.ttf": goregular.TTF,
	})
	r := NewResolver(m, nil)
	runs, err := r.Resolve(segs(script.Thai), font.Bold)
	require.NoError(t, err)
	assert.Equal(t, font.Regular, runs[0].Style)
}

func TestIntegrityMismatchFailsRequest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	m := universalOnly(t)
	e, _ := m.Lookup("Sarabun", font.Regular)
	corrupt := append([]byte{}, goregular.TTF...)
	corrupt[len(corrupt)/3] ^= 0x80
	require.NoError(t, os.WriteFile(m.Path(e), corrupt, 0644))
	//
	r := NewResolver(m, nil)
	runs, err := r.Resolve(segs(script.Latin, script.Thai), font.Regular)
	assert.Nil(t, runs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fontregistry.ErrFontIntegrity))
	assert.Equal(t, core.EINTEGRITY, core.Code(err))
	assert.Error(t, r.Preload())
	//
	// requests needing other fonts still succeed
	runs, err = r.Resolve(segs(script.Latin), font.Bold)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestFontVerifiedOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	m := universalOnly(t)
	r := NewResolver(m, nil)
	require.NoError(t, r.Preload())
	e, _ := m.Lookup("Sarabun", font.Regular)
	require.NoError(t, os.WriteFile(m.Path(e), []byte("swapped"), 0644))
	_, err := r.Resolve(segs(script.Thai), font.Regular)
	assert.NoError(t, err)
	b, err := r.FontBytes("Sarabun", font.Regular)
	require.NoError(t, err)
	assert.Equal(t, goregular.TTF, b)
}

func TestDegradedMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	for _, m := range []*manifest.Manifest{nil, buildManifest(t, nil)} {
		r := NewResolver(m, nil)
		assert.True(t, r.Degraded())
		assert.NoError(t, r.Preload())
		runs, err := r.Resolve(segs(script.Arabic, script.Thai, script.Emoji), font.Bold)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		for _, run := range runs {
			assert.Equal(t, font.FallbackFamily, run.Family)
			assert.Equal(t, font.Bold, run.Style)
		}
		b, err := r.FontBytes(font.FallbackFamily, font.Bold)
		require.NoError(t, err)
		assert.Equal(t, gobold.TTF, b)
		_, err = r.FontBytes("Sarabun", font.Regular)
		assert.Equal(t, core.EMISSING, core.Code(err))
	}
}

func TestLoadResolver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	dir := t.TempDir()
	r, err := LoadResolver(testconfig.Conf{
		"fonts.manifest": filepath.Join(dir, manifest.DefaultFilename),
	})
	require.NotNil(t, r)
	assert.True(t, r.Degraded())
	assert.True(t, errors.Is(err, manifest.ErrManifestMissing))
	//
	m := universalOnly(t)
	path := filepath.Join(dir, manifest.DefaultFilename)
	require.NoError(t, m.Save(path))
	r, err = LoadResolver(testconfig.Conf{"fonts.manifest": path})
	require.NoError(t, err)
	assert.False(t, r.Degraded())
	assert.Equal(t, "Sarabun", r.FamilyFor(script.Thai))
}

func TestDefaultManifestPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.resources")
	defer teardown()
	//
	_, err := DefaultManifestPath(nil)
	assert.Equal(t, core.EMISSING, core.Code(err))
	path, err := DefaultManifestPath(testconfig.Conf{"app-key": "multiscript-test"})
	if err != nil { // no user config dir in this environment
		t.Skip(err)
	}
	assert.Equal(t, manifest.DefaultFilename, filepath.Base(path))
	assert.Equal(t, "fonts", filepath.Base(filepath.Dir(path)))
	assert.Equal(t, "multiscript-test", filepath.Base(filepath.Dir(filepath.Dir(path))))
}

func TestRoles(t *testing.T) {
	assert.Equal(t, Universal, RoleOf(script.Thai))
	assert.Equal(t, Universal, RoleOf(script.Unknown))
	assert.Equal(t, CJK, RoleOf(script.Katakana))
	assert.Equal(t, Korean, RoleOf(script.Hangul))
	p := PolicyFromConfig(testconfig.Conf{"fonts.family.emoji": "Twemoji"})
	assert.Equal(t, "Twemoji", p[Emoji])
	assert.Equal(t, "Sarabun", p[Universal])
}
