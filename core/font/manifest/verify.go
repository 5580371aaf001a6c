package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/npillmayer/multiscript/core"
)

// MismatchKind tells how a font file deviates from its manifest entry.
type MismatchKind int

// Kinds of mismatches; a file is reported with the first one found.
const (
	FileMissing MismatchKind = iota
	SizeMismatch
	HashMismatch
)

func (k MismatchKind) String() string {
	switch k {
	case FileMissing:
		return "missing"
	case SizeMismatch:
		return "size mismatch"
	case HashMismatch:
		return "hash mismatch"
	}
	return fmt.Sprintf("MismatchKind(%d)", int(k))
}

// Mismatch is a font file which does not match its manifest entry.
type Mismatch struct {
	Entry    Entry
	Path     string
	Kind     MismatchKind
	Expected string
	Actual   string
}

func (mm Mismatch) String() string {
	return fmt.Sprintf("%s %s at %s: %s (expected %s, found %s)", mm.Entry.Family,
		mm.Entry.Style, mm.Entry.RelativePath, mm.Kind, mm.Expected, mm.Actual)
}

// Report is the result of a verification run.
type Report struct {
	Checked    int
	Mismatches []Mismatch
}

// OK is true if no mismatch has been found.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Verify re-hashes every file referenced by a manifest and compares size and
// SHA-256 with the recorded values. All entries are checked; if any of them
// does not match, the report lists every mismatch and the returned error
// wraps ErrMismatch.
func Verify(m *Manifest) (Report, error) {
	var report Report
	if m == nil {
		return report, core.Error(core.EMISSING, "no manifest to verify")
	}
	for _, e := range m.Entries {
		report.Checked++
		if mm, ok := verifyEntry(m, e); !ok {
			tracer().Errorf("verify: %s", mm)
			report.Mismatches = append(report.Mismatches, mm)
		}
	}
	if report.OK() {
		tracer().Infof("verified %d font files", report.Checked)
		return report, nil
	}
	var files []string
	for _, mm := range report.Mismatches {
		files = append(files, mm.Entry.RelativePath)
	}
	err := fmt.Errorf("%w: %s", ErrMismatch, strings.Join(files, ", "))
	return report, core.WrapError(err, core.EINTEGRITY,
		"%d of %d font files do not match the manifest", len(report.Mismatches), report.Checked)
}

func verifyEntry(m *Manifest, e Entry) (Mismatch, bool) {
	mm := Mismatch{Entry: e, Path: m.Path(e)}
	data, err := os.ReadFile(mm.Path)
	if err != nil {
		mm.Kind, mm.Expected = FileMissing, "file"
		if errors.Is(err, fs.ErrNotExist) {
			mm.Actual = "no file"
		} else {
			mm.Actual = err.Error()
		}
		return mm, false
	}
	if int64(len(data)) != e.SizeBytes {
		mm.Kind = SizeMismatch
		mm.Expected = fmt.Sprintf("%d bytes", e.SizeBytes)
		mm.Actual = fmt.Sprintf("%d bytes", len(data))
		return mm, false
	}
	if digest := Digest(data); digest != e.SHA256 {
		mm.Kind, mm.Expected, mm.Actual = HashMismatch, e.SHA256, digest
		return mm, false
	}
	return mm, true
}
