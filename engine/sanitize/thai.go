package sanitize

import (
	"strings"
	"unicode/utf8"
)

// Thai code-points the cluster repair cares about.
const (
	thaiNikhahit = 0x0E4D
	thaiSaraAa   = 0x0E32
	thaiSaraAm   = 0x0E33
)

func isThai(r rune) bool {
	return r >= 0x0E00 && r <= 0x0E7F
}

// isThaiBase is true for the Thai base consonants.
func isThaiBase(r rune) bool {
	return r >= 0x0E01 && r <= 0x0E2E
}

func isThaiToneMark(r rune) bool {
	return r >= 0x0E48 && r <= 0x0E4B
}

// isThaiDependentVowel is true for vowel signs above and below the base.
func isThaiDependentVowel(r rune) bool {
	return r == 0x0E31 || (r >= 0x0E34 && r <= 0x0E3A)
}

// isThaiMark is true for all Thai combining marks: dependent vowels, tone
// marks and the other diacritics attaching to a base (MAITAIKHU, THANTHAKHAT,
// NIKHAHIT, YAMAKKAN).
func isThaiMark(r rune) bool {
	return isThaiDependentVowel(r) || (r >= 0x0E47 && r <= 0x0E4E)
}

// repairThai performs the Thai cluster repairs, in order: SARA AM
// recomposition, tone mark reordering, removal of duplicate marks and removal
// of orphaned marks.
func repairThai(s string, fixes []Fix) (string, []Fix) {
	if strings.IndexFunc(s, isThai) < 0 {
		return s, fixes
	}
	runes := []rune(s)
	runes, fixes = recomposeSaraAm(runes, fixes)
	runes, fixes = reorderToneMarks(runes, fixes)
	runes, fixes = removeDuplicateMarks(runes, fixes)
	runes, fixes = removeOrphanMarks(runes, fixes)
	return string(runes), fixes
}

// offset returns the byte offset of runes[i] in the UTF-8 encoding of runes.
func offset(runes []rune, i int) int {
	n := 0
	for _, r := range runes[:i] {
		n += utf8.RuneLen(r)
	}
	return n
}

// NIKHAHIT followed by SARA AA is a legacy spelling of SARA AM which NFC
// leaves alone.
func recomposeSaraAm(runes []rune, fixes []Fix) ([]rune, []Fix) {
	out := runes[:0:0]
	for i := 0; i < len(runes); i++ {
		if runes[i] == thaiNikhahit && i+1 < len(runes) && runes[i+1] == thaiSaraAa {
			fixes = append(fixes, Fix{
				Kind:        ThaiSaraAmRecomposed,
				Position:    offset(runes, i),
				Original:    string(runes[i : i+2]),
				Replacement: string(rune(thaiSaraAm)),
			})
			tracer().Debugf("recomposed SARA AM at rune %d", i)
			out = append(out, thaiSaraAm)
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return out, fixes
}

// reorderToneMarks moves tone marks behind the dependent vowels following
// them within a cluster. A cluster is a base consonant followed by a run of
// marks. Other marks between a tone mark and its vowel keep their relative
// order. The multiset of code-points is unchanged.
func reorderToneMarks(runes []rune, fixes []Fix) ([]rune, []Fix) {
	for i := 0; i < len(runes); i++ {
		if !isThaiBase(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isThaiMark(runes[end]) {
			end++
		}
		for j := i + 1; j < end; j++ {
			if !isThaiToneMark(runes[j]) {
				continue
			}
			k := nextDependentVowel(runes[:end], j+1)
			if k < 0 {
				continue
			}
			moved := append(append([]rune{}, runes[j+1:k+1]...), runes[j])
			fixes = append(fixes, Fix{
				Kind:        ThaiToneMarkReordered,
				Position:    offset(runes, j),
				Original:    string(runes[j : k+1]),
				Replacement: string(moved),
			})
			copy(runes[j:k+1], moved)
			j-- // the rune now at j may be another tone mark
		}
		i = end - 1
	}
	return runes, fixes
}

func nextDependentVowel(runes []rune, from int) int {
	for k := from; k < len(runes); k++ {
		if isThaiDependentVowel(runes[k]) {
			return k
		}
	}
	return -1
}

func removeDuplicateMarks(runes []rune, fixes []Fix) ([]rune, []Fix) {
	out := runes[:0:0]
	for i, r := range runes {
		if isThaiMark(r) && len(out) > 0 && out[len(out)-1] == r {
			fixes = append(fixes, Fix{
				Kind:     DuplicateMarkRemoved,
				Position: offset(runes, i),
				Original: string(r),
			})
			continue
		}
		out = append(out, r)
	}
	return out, fixes
}

// removeOrphanMarks drops marks whose nearest preceding non-mark is not a
// base consonant, or which start the text.
func removeOrphanMarks(runes []rune, fixes []Fix) ([]rune, []Fix) {
	out := runes[:0:0]
	hasBase := false
	for i, r := range runes {
		if !isThaiMark(r) {
			hasBase = isThaiBase(r)
			out = append(out, r)
			continue
		}
		if !hasBase {
			fixes = append(fixes, Fix{
				Kind:     OrphanMarkRemoved,
				Position: offset(runes, i),
				Original: string(r),
			})
			continue
		}
		out = append(out, r)
	}
	return out, fixes
}
