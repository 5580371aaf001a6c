package script

import "unicode"

type blockRange struct {
	lo, hi rune
	tag    Tag
}

// blocks is searched top down; more specific ranges come first.
var blocks = []blockRange{
	{0x0590, 0x05FF, Hebrew},
	{0x0600, 0x06FF, Arabic},
	{0x0750, 0x077F, Arabic}, // Arabic Supplement
	{0x0E00, 0x0E7F, Thai},
	{0x1100, 0x11FF, Hangul}, // Jamo
	{0x2000, 0x206F, Symbols},
	{0x2190, 0x23FF, Symbols}, // arrows, math operators, technical
	{0x25A0, 0x25FF, Symbols}, // geometric shapes
	{0x2600, 0x27BF, Emoji},   // misc symbols and dingbats
	{0x3040, 0x309F, Hiragana},
	{0x30A0, 0x30FF, Katakana},
	{0x3130, 0x318F, Hangul}, // compatibility Jamo
	{0x31F0, 0x31FF, Katakana},
	{0x3400, 0x4DBF, Han},
	{0x4E00, 0x9FFF, Han},
	{0xAC00, 0xD7AF, Hangul},
	{0xF900, 0xFAFF, Han},
	{0xFB1D, 0xFB4F, Hebrew},
	{0xFB50, 0xFDFF, Arabic},
	{0xFE00, 0xFE0F, Emoji}, // variation selectors
	{0xFE70, 0xFEFE, Arabic},
	{0xFF66, 0xFF9F, Katakana}, // halfwidth
	{0xFF00, 0xFFEF, Han},      // fullwidth forms
	{0x1F000, 0x1FAFF, Emoji},
	{0x20000, 0x2FA1F, Han},
}

// IsCommon is true for code-points which do not determine a script by
// themselves: whitespace, ASCII digits, ASCII and Latin-1 punctuation and
// symbols, and CJK punctuation.
func IsCommon(r rune) bool {
	switch {
	case unicode.IsSpace(r):
		return true
	case r < 0x80:
		return !isASCIILetter(r)
	case r >= 0x00A0 && r <= 0x00BF, r == 0x00D7, r == 0x00F7:
		return true
	case r >= 0x2000 && r <= 0x200A, r == 0x202F, r == 0x205F:
		return true // typographic spaces
	case r >= 0x3000 && r <= 0x303F:
		return true
	}
	return false
}

// IsDigit is true for ASCII digits.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Of classifies a single code-point. Common code-points (see IsCommon) and
// non-spacing marks outside of the recognized blocks are reported as
// Unknown; callers decide which script they inherit.
func Of(r rune) Tag {
	if r < 0x80 {
		if isASCIILetter(r) {
			return Latin
		}
		return Unknown
	}
	if IsCommon(r) {
		return Unknown
	}
	for _, b := range blocks {
		if r >= b.lo && r <= b.hi {
			return b.tag
		}
	}
	if unicode.Is(unicode.Latin, r) {
		return Latin
	}
	return Unknown
}

// IsInherited is true for combining marks which take the script of their
// base character, provided they are not part of one of the recognized blocks
// (Thai vowel signs and tone marks are classified as Thai).
func IsInherited(r rune) bool {
	if Of(r) != Unknown {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Me)
}
