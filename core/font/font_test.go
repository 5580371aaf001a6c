package font

import (
	"testing"

	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	for k, v := range map[string]struct {
		s  Style
		ok bool
	}{
		"fonts/Clarendon-bold.ttf":               {Bold, true},
		"NotoSansThai/NotoSansThai-Regular.ttf":  {Regular, true},
		"Sarabun/Sarabun-Bold.ttf":               {Bold, true},
		"Sarabun/Sarabun-BoldItalic.ttf":         {Regular, false},
		"Sarabun/Sarabun-Light.ttf":              {Regular, false},
		"NotoSansJP/NotoSansJP-SemiBold.otf":     {Regular, false},
		"Cambria Math.ttf":                       {Regular, true},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {Regular, false},
		"GoSans/GoSans_Bold.ttf":                 {Bold, true},
	} {
		style, ok := GuessStyle(k)
		assert.Equal(t, v.ok, ok, "acceptance of %s", k)
		if v.ok {
			assert.Equal(t, v.s, style, "style of %s", k)
		}
	}
}

func TestStyleText(t *testing.T) {
	for _, s := range []Style{Regular, Bold} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Style
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s Style
	assert.Error(t, s.UnmarshalText([]byte("Italic")))
}

func TestSignature(t *testing.T) {
	assert.True(t, HasOpenTypeSignature(goregular.TTF))
	assert.True(t, HasOpenTypeSignature([]byte("OTTO....")))
	assert.False(t, HasOpenTypeSignature([]byte("wOFF....")))
	assert.False(t, HasOpenTypeSignature(nil))
	_, err := ParseOpenTypeFont([]byte("not a font"))
	assert.Error(t, err)
	_, err = ParseOpenTypeFont(goregular.TTF[:64])
	assert.Error(t, err, "expected truncated font to be rejected")
}

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	regular := FallbackFont(Regular)
	require.NotNil(t, regular)
	assert.NotEmpty(t, regular.Family())
	bold := FallbackFont(Bold)
	require.NotNil(t, bold)
	assert.NotEqual(t, regular.Binary, bold.Binary)
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "multiscript.fonts")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	coverage := f.Coverage()
	assert.Contains(t, coverage, script.Latin)
	assert.NotContains(t, coverage, script.Thai)
	assert.NotContains(t, coverage, script.Han)
	assert.NotContains(t, coverage, script.Unknown)
}

func TestNormalizeFontname(t *testing.T) {
	assert.Equal(t, "noto_sans_thai", NormalizeFontname(" Noto Sans Thai "))
	assert.Equal(t, "gosans-regular", NormalizeFontname("GoSans-Regular.ttf"))
}
