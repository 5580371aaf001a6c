package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// A step is a single repair step. It receives the current text and returns
// the repaired text, appending fixes to the ones it got.
type step func(s string, fixes []Fix) (string, []Fix)

// steps run in this order; later steps rely on the earlier ones.
var steps = []step{
	normalize,
	stripZeroWidth,
	stripBidiControls,
	replaceControls,
	repairThai,
	normalize,
	spaceScriptBoundaries,
}

// Sanitize normalizes and repairs raw, returning the clean string together
// with the list of repairs applied. It never fails; for an already clean
// input it returns the input unchanged and no fixes.
func Sanitize(raw string) (clean string, fixes []Fix) {
	clean = raw
	for _, step := range steps {
		clean, fixes = step(clean, fixes)
	}
	if len(fixes) > 0 {
		tracer().Debugf("sanitized %q with %d fixes", clean, len(fixes))
	}
	return clean, fixes
}

// --- Normalization ---------------------------------------------------------

// normalize runs first and again after the removal steps. Dropping a
// zero-width, bidi or orphaned character may leave a base and a combining
// mark adjacent, which NFC then composes.
func normalize(s string, fixes []Fix) (string, []Fix) {
	valid := strings.ToValidUTF8(s, string(unicode.ReplacementChar))
	if valid == s && norm.NFC.IsNormalString(s) {
		return s, fixes
	}
	n := norm.NFC.String(valid)
	if n == s {
		return s, fixes
	}
	return n, append(fixes, Fix{Kind: NFCNormalized, Position: 0, Original: s, Replacement: n})
}

// --- Invisible characters --------------------------------------------------

func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, 0xFEFF:
		return true
	}
	return false
}

// isBidiControl covers embeddings and overrides, isolates and the
// directional marks.
func isBidiControl(r rune) bool {
	switch {
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	case r == 0x200E, r == 0x200F, r == 0x061C:
		return true
	}
	return false
}

func stripZeroWidth(s string, fixes []Fix) (string, []Fix) {
	return strip(s, fixes, isZeroWidth, ZeroWidthStripped)
}

func stripBidiControls(s string, fixes []Fix) (string, []Fix) {
	return strip(s, fixes, isBidiControl, BidiControlStripped)
}

func strip(s string, fixes []Fix, drop func(rune) bool, kind FixKind) (string, []Fix) {
	if strings.IndexFunc(s, drop) < 0 {
		return s, fixes
	}
	var b strings.Builder
	b.Grow(len(s))
	for pos, r := range s {
		if drop(r) {
			fixes = append(fixes, Fix{Kind: kind, Position: pos, Original: string(r)})
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), fixes
}

// --- Control characters ----------------------------------------------------

// replaceControls replaces every run of C0/C1 control characters, including
// tab and newline, by exactly one space. A CR-LF pair thus yields a single
// space, as does a lone tab.
func replaceControls(s string, fixes []Fix) (string, []Fix) {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s, fixes
	}
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	flush := func(end int) {
		if start >= 0 {
			fixes = append(fixes, Fix{
				Kind:        ControlCharStripped,
				Position:    start,
				Original:    s[start:end],
				Replacement: " ",
			})
			b.WriteByte(' ')
			start = -1
		}
	}
	for pos, r := range s {
		if unicode.IsControl(r) {
			if start < 0 {
				start = pos
			}
			continue
		}
		flush(pos)
		b.WriteRune(r)
	}
	flush(len(s))
	return b.String(), fixes
}
