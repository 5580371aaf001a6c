/*
Package font is for font file handling.

We stick to the following nomenclature:

* A "family" is a typeface, i.e. a set of fonts designed to work together.
An example is "Noto Sans Thai". On disk a family lives in a directory of
its own.

* A "scalable font" is a single font file of a family with a certain style.
An example is "Noto Sans Thai Bold".

The pipeline distinguishes two styles only, Regular and Bold. Font files
are TrueType or OpenType (CFF) fonts; collections (*.ttc) are not supported.

If everything else fails, FallbackFont returns the Go Sans font, which is
compiled into every binary.

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/multiscript/core/script"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'multiscript.fonts'
func tracer() tracing.Trace {
	return tracing.Select("multiscript.fonts")
}

// --- Styles ----------------------------------------------------------------

// Style is the style of a font within its family.
type Style int

// We support exactly two styles.
const (
	Regular Style = iota
	Bold
)

func (s Style) String() string {
	switch s {
	case Regular:
		return "Regular"
	case Bold:
		return "Bold"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the style for a name, as produced by String.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "regular", "normal", "r", "":
		return Regular, nil
	case "bold", "b":
		return Bold, nil
	}
	return Regular, fmt.Errorf("unsupported font style %q", name)
}

// MarshalText encodes a style by its name.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a style from its name.
func (s *Style) UnmarshalText(text []byte) error {
	style, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// GuessStyle tries to guess a font's style from the font's file name.
// It returns false for variants other than Regular and Bold, e.g. italics
// or light weights.
func GuessStyle(fontfilename string) (Style, bool) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		return Regular, false
	}
	s := strings.FieldsFunc(fontfilename, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "normal", "regular", "r", "book", "text":
			return Regular, true
		case "bold", "b":
			return Bold, true
		case "light", "xlight", "thin", "medium", "semibold", "xbold", "extrabold", "black":
			return Regular, false
		}
	}
	if strings.Contains(fontfilename, "bold") {
		return Bold, !strings.Contains(fontfilename, "semibold") && !strings.Contains(fontfilename, "extrabold")
	}
	return Regular, true
}

// --- Scalable fonts --------------------------------------------------------

// ScalableFont is a font file loaded into memory.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// HasOpenTypeSignature checks the magic bytes of a font file: 00 01 00 00 for
// TrueType outlines, 'OTTO' for CFF outlines.
func HasOpenTypeSignature(fbytes []byte) bool {
	if len(fbytes) < 4 {
		return false
	}
	return bytes.Equal(fbytes[:4], []byte{0x00, 0x01, 0x00, 0x00}) ||
		bytes.Equal(fbytes[:4], []byte("OTTO"))
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font bytes. It fails for data without an OpenType
// signature and for truncated or otherwise unparsable font files.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	if !HasOpenTypeSignature(fbytes) {
		return nil, fmt.Errorf("no TrueType/OpenType signature")
	}
	if err = checkTableDirectory(fbytes); err != nil {
		return nil, err
	}
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// checkTableDirectory makes sure every table listed in the font's table
// directory lies within the font data.
func checkTableDirectory(fbytes []byte) error {
	if len(fbytes) < 12 {
		return fmt.Errorf("font truncated: no table directory")
	}
	numTables := int(binary.BigEndian.Uint16(fbytes[4:6]))
	if len(fbytes) < 12+16*numTables {
		return fmt.Errorf("font truncated: incomplete table directory")
	}
	for i := 0; i < numTables; i++ {
		rec := fbytes[12+16*i : 12+16*(i+1)]
		offset := uint64(binary.BigEndian.Uint32(rec[8:12]))
		length := uint64(binary.BigEndian.Uint32(rec[12:16]))
		if offset+length > uint64(len(fbytes)) {
			return fmt.Errorf("font truncated: table %q exceeds file size", rec[0:4])
		}
	}
	return nil
}

// Family returns the typographic family name from the font's name table.
func (sf *ScalableFont) Family() string {
	if sf.SFNT == nil {
		return ""
	}
	var buf sfnt.Buffer
	if name, err := sf.SFNT.Name(&buf, sfnt.NameIDTypographicFamily); err == nil && name != "" {
		return name
	}
	name, _ := sf.SFNT.Name(&buf, sfnt.NameIDFamily)
	return name
}

// coverageSamples are the code-points a font has to map to count as
// covering a script.
var coverageSamples = map[script.Tag][]rune{
	script.Thai:     {'ก', 'า', '่', 'ิ'},
	script.Latin:    {'A', 'z', '0'},
	script.Han:      {'中', '日'},
	script.Hiragana: {'あ', 'の'},
	script.Katakana: {'ア', 'カ'},
	script.Hangul:   {'한', '글'},
	script.Arabic:   {'ب', 'ع'},
	script.Hebrew:   {'א', 'ש'},
	script.Emoji:    {'\U0001F600'},
	script.Symbols:  {'→', '‰'},
}

// Coverage probes the font's character map and returns the scripts the font
// covers, in tag order. Unknown is never part of the result.
func (sf *ScalableFont) Coverage() []script.Tag {
	if sf.SFNT == nil {
		return nil
	}
	var buf sfnt.Buffer
	var tags []script.Tag
	for _, tag := range script.Tags() {
		samples, ok := coverageSamples[tag]
		if !ok {
			continue
		}
		covered := true
		for _, r := range samples {
			if gid, err := sf.SFNT.GlyphIndex(&buf, r); err != nil || gid == 0 {
				covered = false
				break
			}
		}
		if covered {
			tags = append(tags, tag)
		}
	}
	tracer().Debugf("font %s covers %v", sf.Fontname, tags)
	return tags
}

// --- Fallback font ---------------------------------------------------------

// FallbackFamily is the family name of the built-in fallback font.
const FallbackFamily = "Go Sans"

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans, which has a bold variant.
func FallbackFont(style Style) *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFonts[Regular] = loadFallbackFont(goregular.TTF, "Go Sans Regular")
		fallbackFonts[Bold] = loadFallbackFont(gobold.TTF, "Go Sans Bold")
	})
	if style == Bold {
		return fallbackFonts[Bold]
	}
	return fallbackFonts[Regular]
}

var fallbackFontLoading sync.Once

// fallbackFonts hold the fonts that are used if everything else fails.
var fallbackFonts [2]*ScalableFont

func loadFallbackFont(ttf []byte, name string) *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: name,
		Filepath: "internal",
		Binary:   ttf,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// NormalizeFontname is a helper to derive a comparable key from a font or
// family name.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}
