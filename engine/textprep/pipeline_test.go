package textprep

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/fontregistry"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/multiscript/engine/sanitize"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const roblox = "\u0E2B\u0E31\u0E27\u0E43\u0E08\u0E0A\u0E4D\u0E32\u0E23\u0E31\u0E01 Roblox 99"

func testManifest(t *testing.T) *manifest.Manifest {
	root := t.TempDir()
	for name, data := range map[string][]byte{
		"Sarabun/Sarabun-Regular.ttf": goregular.TTF,
		"Sarabun/Sarabun-Bold.ttf":    gobold.TTF,
	} {
		fpath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fpath), 0755))
		require.NoError(t, os.WriteFile(fpath, data, 0644))
	}
	m, err := manifest.Build(root)
	require.NoError(t, err)
	return m
}

func corrupted(b []byte) []byte {
	c := append([]byte{}, b...)
	c[len(c)/2] ^= 0x10
	return c
}

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(testManifest(t), nil)
	runs, err := p.Render(roblox)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "\u0E2B\u0E31\u0E27\u0E43\u0E08\u0E0A\u0E33\u0E23\u0E31\u0E01", runs[0].Text)
	assert.Equal(t, script.Thai, runs[0].Script)
	assert.Equal(t, " Roblox 99", runs[1].Text)
	assert.Equal(t, script.Latin, runs[1].Script)
	for _, run := range runs {
		assert.Equal(t, "Sarabun", run.Family)
	}
	runs, err = p.RenderStyled(roblox, font.Bold)
	require.NoError(t, err)
	assert.Equal(t, font.Bold, runs[0].Style)
}

func TestPrepare(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(testManifest(t), nil)
	prep, err := p.Prepare(roblox, font.Regular)
	require.NoError(t, err)
	assert.Equal(t, roblox, prep.Raw)
	assert.Equal(t, 1, sanitize.Count(prep.Fixes, sanitize.ThaiSaraAmRecomposed))
	assert.Len(t, prep.Segments, 2)
	assert.Len(t, prep.Runs, 2)
	text := ""
	for _, run := range prep.Runs {
		text += run.Text
	}
	assert.Equal(t, prep.Clean, text)
}

func TestRenderEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(testManifest(t), nil)
	runs, err := p.Render("")
	assert.NoError(t, err)
	assert.Empty(t, runs)
	runs, err = p.Render("\u200B\u202E")
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRenderWithoutManifest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(nil, nil)
	runs, err := p.Render("\u0645\u0631\u062D\u0628\u0627 \u05E9\u05DC\u05D5\u05DD \U0001F600")
	require.NoError(t, err)
	require.NotEmpty(t, runs)
	for _, run := range runs {
		assert.Equal(t, font.FallbackFamily, run.Family)
	}
}

func TestRenderIntegrityFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	m := testManifest(t)
	e, _ := m.Lookup("Sarabun", font.Regular)
	require.NoError(t, os.WriteFile(m.Path(e), corrupted(goregular.TTF), 0644))
	p := NewPipeline(m, nil)
	runs, err := p.Render(roblox)
	assert.Nil(t, runs)
	assert.True(t, errors.Is(err, fontregistry.ErrFontIntegrity))
	prep, err := p.Prepare(roblox, font.Regular)
	assert.Error(t, err)
	assert.Empty(t, prep.Runs)
	assert.NotEmpty(t, prep.Segments)
}

func TestProbe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(testManifest(t), nil)
	runs, err := p.Render(roblox)
	require.NoError(t, err)
	probes, err := p.Probe(runs)
	require.NoError(t, err)
	require.Len(t, probes, 2)
	assert.Greater(t, probes[0].Missing, 0, "Go fonts have no Thai glyphs")
	assert.Contains(t, probes[0].MissingRunes, '\u0E2B')
	assert.Equal(t, 0, probes[1].Missing)
}

func TestConcurrentRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.textprep")
	defer teardown()
	//
	p := NewPipeline(testManifest(t), nil)
	inputs := []string{roblox, "Part 2", "\u4E2D\u6587 \uD55C\uAE00", "\u2192 \U0001F600 ok"}
	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.RenderStyled(inputs[i%len(inputs)], font.Style(i%2))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
