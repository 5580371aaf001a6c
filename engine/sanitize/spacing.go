package sanitize

import (
	"strings"

	"github.com/npillmayer/multiscript/core/script"
)

// boundary classes for script boundary spacing
type boundaryClass int

const (
	neutral boundaryClass = iota
	thaiClass
	latinClass
	digitClass
	emojiClass
	otherScriptClass
)

func classify(c script.Cluster) boundaryClass {
	if c.IsSpace() {
		return neutral
	}
	if script.IsDigit(c.Base()) {
		return digitClass
	}
	switch c.Tag() {
	case script.Thai:
		return thaiClass
	case script.Latin:
		return latinClass
	case script.Emoji:
		return emojiClass
	case script.Unknown:
		return neutral
	}
	return otherScriptClass
}

// gap returns the spacing to insert between two adjacent clusters.
// Emoji get two spaces on either side, to leave room for their oversized
// glyph metrics.
func gap(a, b boundaryClass) string {
	if a == neutral || b == neutral || a == b {
		return ""
	}
	if a == emojiClass || b == emojiClass {
		return "  "
	}
	switch {
	case a == thaiClass && (b == latinClass || b == digitClass):
		return " "
	case b == thaiClass && (a == latinClass || a == digitClass):
		return " "
	}
	return ""
}

// spaceScriptBoundaries inserts spacing between grapheme clusters at
// Thai/Latin, Thai/digit and emoji boundaries. Boundaries already separated
// by whitespace are left alone.
func spaceScriptBoundaries(s string, fixes []Fix) (string, []Fix) {
	clusters := script.Clusters(s)
	if len(clusters) < 2 {
		return s, fixes
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	prev := classify(clusters[0])
	b.WriteString(clusters[0].Text)
	for _, c := range clusters[1:] {
		class := classify(c)
		if g := gap(prev, class); g != "" {
			fixes = append(fixes, Fix{
				Kind:        ScriptBoundarySpaced,
				Position:    c.Start,
				Replacement: g,
			})
			b.WriteString(g)
		}
		b.WriteString(c.Text)
		prev = class
	}
	return b.String(), fixes
}
