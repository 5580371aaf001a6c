package fontregistry

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func buildManifest(t *testing.T) *manifest.Manifest {
	root := t.TempDir()
	for name, data := range map[string][]byte{
		"GoSans/GoSans-Regular.ttf": goregular.TTF,
		"GoSans/GoSans-Bold.ttf":    gobold.TTF,
	} {
		fpath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fpath), 0755))
		require.NoError(t, os.WriteFile(fpath, data, 0644))
	}
	m, err := manifest.Build(root)
	require.NoError(t, err)
	return m
}

func TestRegistryLoadsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	m := buildManifest(t)
	fr := NewRegistry(m)
	assert.False(t, fr.Cached("GoSans", font.Regular))
	f, err := fr.Font("GoSans", font.Regular)
	require.NoError(t, err)
	assert.Equal(t, goregular.TTF, f.Binary)
	assert.True(t, fr.Cached("GoSans", font.Regular))
	//
	// the file changes after it has been verified: the cache keeps serving
	// the verified bytes, without reading the file again
	e, _ := m.Lookup("GoSans", font.Regular)
	require.NoError(t, os.WriteFile(m.Path(e), []byte("garbage"), 0644))
	f2, err := fr.Font("GoSans", font.Regular)
	require.NoError(t, err)
	assert.Same(t, f, f2)
	fr.LogFontList()
}

func TestRegistryIntegrityMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	m := buildManifest(t)
	fr := NewRegistry(m)
	e, _ := m.Lookup("GoSans", font.Bold)
	corrupt := append([]byte{}, gobold.TTF...)
	corrupt[100] ^= 0x01
	require.NoError(t, os.WriteFile(m.Path(e), corrupt, 0644))
	//
	_, err := fr.Font("GoSans", font.Bold)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontIntegrity))
	assert.Equal(t, core.EINTEGRITY, core.Code(err))
	assert.False(t, fr.Cached("GoSans", font.Bold))
	//
	// other fonts are not affected
	_, err = fr.Font("GoSans", font.Regular)
	assert.NoError(t, err)
	//
	// failures are not cached
	require.NoError(t, os.WriteFile(m.Path(e), gobold.TTF, 0644))
	_, err = fr.Font("GoSans", font.Bold)
	assert.NoError(t, err)
}

func TestRegistryMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	m := buildManifest(t)
	fr := NewRegistry(m)
	_, err := fr.Font("Sarabun", font.Regular)
	assert.Equal(t, core.EMISSING, core.Code(err))
	e, _ := m.Lookup("GoSans", font.Regular)
	require.NoError(t, os.Remove(m.Path(e)))
	_, err = fr.Font("GoSans", font.Regular)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestRegistryPreload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	m := buildManifest(t)
	fr := NewRegistry(m)
	require.NoError(t, fr.Preload())
	assert.True(t, fr.Cached("GoSans", font.Regular))
	assert.True(t, fr.Cached("GoSans", font.Bold))
	assert.NoError(t, NewRegistry(nil).Preload())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	fr := NewRegistry(buildManifest(t))
	fonts := make([]*font.ScalableFont, 16)
	var wg sync.WaitGroup
	for i := range fonts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fonts[i], _ = fr.Font("GoSans", font.Bold)
		}(i)
	}
	wg.Wait()
	for _, f := range fonts {
		require.NotNil(t, f)
		assert.Same(t, fonts[0], f)
	}
}
