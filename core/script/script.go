package script

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Tag is a script tag. The set of tags is closed.
type Tag int8

// Script tags known to the pipeline.
const (
	Unknown Tag = iota
	Thai
	Latin
	Han
	Hiragana
	Katakana
	Hangul
	Arabic
	Hebrew
	Emoji
	Symbols
)

var tagNames = [...]string{
	Unknown:  "Unknown",
	Thai:     "Thai",
	Latin:    "Latin",
	Han:      "Han",
	Hiragana: "Hiragana",
	Katakana: "Katakana",
	Hangul:   "Hangul",
	Arabic:   "Arabic",
	Hebrew:   "Hebrew",
	Emoji:    "Emoji",
	Symbols:  "Symbols",
}

// Tags returns all tags, in declaration order.
func Tags() []Tag {
	return []Tag{Unknown, Thai, Latin, Han, Hiragana, Katakana, Hangul, Arabic, Hebrew, Emoji, Symbols}
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// Parse returns the tag for a name, as produced by String. Case is ignored.
func Parse(name string) (Tag, error) {
	for i, n := range tagNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Tag(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown script tag %q", name)
}

// MarshalText encodes a tag by its name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tag from its name.
func (t *Tag) UnmarshalText(text []byte) error {
	tag, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// iso15924 holds the ISO 15924 codes for script tags. Emoji and Symbols are
// not scripts in Unicode's sense; ISO 15924 has codes for both.
var iso15924 = [...]string{
	Unknown:  "Zzzz",
	Thai:     "Thai",
	Latin:    "Latn",
	Han:      "Hani",
	Hiragana: "Hira",
	Katakana: "Kana",
	Hangul:   "Hang",
	Arabic:   "Arab",
	Hebrew:   "Hebr",
	Emoji:    "Zsye",
	Symbols:  "Zsym",
}

// ISO15924 returns the 4-letter ISO 15924 script for a tag, suitable for
// handing over to a shaper.
func (t Tag) ISO15924() language.Script {
	if t < 0 || int(t) >= len(iso15924) {
		t = Unknown
	}
	return language.MustParseScript(iso15924[t])
}

// IsRightToLeft is true for scripts written right-to-left.
func (t Tag) IsRightToLeft() bool {
	return t == Arabic || t == Hebrew
}
