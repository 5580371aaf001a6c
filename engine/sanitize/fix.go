package sanitize

import "fmt"

// FixKind tells which repair step produced a Fix.
type FixKind int

// Kinds of repairs, in the order the repair steps run.
const (
	NFCNormalized FixKind = iota
	ZeroWidthStripped
	BidiControlStripped
	ControlCharStripped
	ThaiSaraAmRecomposed
	ThaiToneMarkReordered
	DuplicateMarkRemoved
	OrphanMarkRemoved
	ScriptBoundarySpaced
)

var fixKindNames = [...]string{
	NFCNormalized:         "NFCNormalized",
	ZeroWidthStripped:     "ZeroWidthStripped",
	BidiControlStripped:   "BidiControlStripped",
	ControlCharStripped:   "ControlCharStripped",
	ThaiSaraAmRecomposed:  "ThaiSaraAmRecomposed",
	ThaiToneMarkReordered: "ThaiToneMarkReordered",
	DuplicateMarkRemoved:  "DuplicateMarkRemoved",
	OrphanMarkRemoved:     "OrphanMarkRemoved",
	ScriptBoundarySpaced:  "ScriptBoundarySpaced",
}

func (k FixKind) String() string {
	if k < 0 || int(k) >= len(fixKindNames) {
		return fmt.Sprintf("FixKind(%d)", int(k))
	}
	return fixKindNames[k]
}

// Fix records a single repair.
//
// Position is the byte offset of the repair within the string as it was
// handed to the repair step, i.e. after all earlier steps had run. Original
// is the text replaced (empty for insertions), Replacement the text put in
// its place (empty for removals).
type Fix struct {
	Kind        FixKind
	Position    int
	Original    string
	Replacement string
}

func (f Fix) String() string {
	return fmt.Sprintf("%s@%d(%+q→%+q)", f.Kind, f.Position, f.Original, f.Replacement)
}

// Count returns the number of fixes of a given kind.
func Count(fixes []Fix, kind FixKind) int {
	n := 0
	for _, f := range fixes {
		if f.Kind == kind {
			n++
		}
	}
	return n
}
