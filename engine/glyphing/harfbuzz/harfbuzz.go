/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

The shaper is used to check fonts for missing glyphs. It does not position
glyphs for output; this is left to the renderer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'multiscript.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("multiscript.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// --- Shape -----------------------------------------------------------------

// Shaper shapes text with a single font. A Shaper is not safe for concurrent
// use.
type Shaper struct {
	font *hb.Font
}

// NewShaper creates a shaper for font data in TrueType/OpenType format.
func NewShaper(fontBytes []byte) (*Shaper, error) {
	face, err := hbtt.Parse(bytes.NewReader(fontBytes), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font cannot be parsed for shaping")
	}
	return &Shaper{font: hb.NewFont(face)}, nil
}

// Shape turns the Unicode characters of text into glyphs of the shaper's font.
// Glyph positions are reported in font units.
func (sh *Shaper) Shape(text string, params glyphing.Params) glyphing.GlyphSequence {
	if text == "" {
		return glyphing.GlyphSequence{}
	}
	buf := hb.NewBuffer()
	convertParams(&buf.Props, params)
	runes := []rune(text)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(sh.font, nil)
	seq := glyphing.GlyphSequence{
		Glyphs: make([]glyphing.ShapedGlyph, len(buf.Info)),
	}
	for i, ginfo := range buf.Info {
		gpos := &buf.Pos[i]
		g := &seq.Glyphs[i]
		g.ClusterID = ginfo.Cluster
		g.GID = glyphing.GlyphIndex(ginfo.Glyph)
		g.XAdvance = int32(gpos.XAdvance)
		g.YAdvance = int32(gpos.YAdvance)
		g.XOffset = int32(gpos.XOffset)
		g.YOffset = int32(gpos.YOffset)
		if g.ClusterID >= 0 && g.ClusterID < len(runes) {
			g.CodePoint = runes[g.ClusterID]
		}
	}
	return seq
}

// MissingGlyphs shapes text with a font and counts the glyphs the font does
// not have, i.e. .notdef glyphs in the output.
func MissingGlyphs(fontBytes []byte, text string, scr language.Script) (int, error) {
	sh, err := NewShaper(fontBytes)
	if err != nil {
		return 0, err
	}
	seq := sh.Shape(text, glyphing.Params{Script: scr})
	n := seq.Missing()
	if n > 0 {
		tracer().Debugf("font lacks %d glyphs for %q: %q", n, text, string(seq.MissingRunes()))
	}
	return n, nil
}

// convertParams is a helper function to convert glyphing parameters to
// HarfBuzz's format.
func convertParams(hbProps *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		hbProps.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		hbProps.Script = Script4HB(params.Script)
	}
	hbProps.Direction = Direction4HB(params.Direction)
}
