/*
Package glyphing holds types for shaping text into glyphs.

Shaping is not part of text preparation proper. It is used to probe the
fonts chosen for runs of text: a glyph index of 0 (.notdef) in a shaped
sequence tells that the font cannot display a character, which would show
up as a "tofu" box in the rendered document.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"

	"github.com/npillmayer/multiscript/core/script"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// DirectionOf returns the horizontal writing direction of a script.
func DirectionOf(tag script.Tag) Direction {
	if tag.IsRightToLeft() {
		return RightToLeft
	}
	return LeftToRight
}

// NotDef is the glyph index of the .notdef glyph, which a font uses for
// characters it has no glyph for.
const NotDef GlyphIndex = 0

// GlyphIndex is a glyph's index within a font.
type GlyphIndex uint32

// A ShapedGlyph is a glyph produced by a shaper. Advances and offsets are
// given in font units.
type ShapedGlyph struct {
	ClusterID int        // position of code-point(s) for this glyph in original string
	XAdvance  int32      // advance after glyph has been set
	YAdvance  int32      //
	XOffset   int32      // position of anchor dot for glyph
	YOffset   int32      //
	GID       GlyphIndex // glyph index within font
	CodePoint rune       // code-point of first rune to produce this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, cp=%#U, advance=%d)", g.GID, g.CodePoint, g.XAdvance)
}

// Params collects shaping parameters.
type Params struct {
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
}

// ParamsFor returns shaping parameters for text in a script.
func ParamsFor(tag script.Tag) Params {
	return Params{
		Direction: DirectionOf(tag),
		Script:    tag.ISO15924(),
	}
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs []ShapedGlyph // resulting sequence of glyphs
}

// Missing returns the number of .notdef glyphs in the sequence.
func (seq GlyphSequence) Missing() int {
	n := 0
	for _, g := range seq.Glyphs {
		if g.GID == NotDef {
			n++
		}
	}
	return n
}

// MissingRunes returns the code-points which have been shaped to .notdef,
// in order of appearance and without duplicates.
func (seq GlyphSequence) MissingRunes() []rune {
	var runes []rune
	seen := make(map[rune]bool)
	for _, g := range seq.Glyphs {
		if g.GID == NotDef && !seen[g.CodePoint] {
			seen[g.CodePoint] = true
			runes = append(runes, g.CodePoint)
		}
	}
	return runes
}
