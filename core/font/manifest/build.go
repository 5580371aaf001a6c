package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
)

// IsFontFile is true for file names with a TrueType or OpenType extension.
func IsFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// Build scans a font root directory recursively and creates a manifest for
// all Regular and Bold font files found. Files of other styles are skipped.
//
// A single bad font file fails the whole build: empty files, files without an
// OpenType signature, truncated files and duplicate (family, style) pairs
// result in an error wrapping ErrManifestBuild.
func Build(root string) (*Manifest, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, buildError(err, "font root %s not accessible", root)
	}
	if !info.IsDir() {
		return nil, buildError(nil, "font root %s is not a directory", root)
	}
	m := &Manifest{
		Version:     Version,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		root:        root,
	}
	b := builder{m: m}
	if err = m.reindex(); err != nil {
		return nil, buildError(err, "cannot set up index")
	}
	if err = filepath.WalkDir(root, b.visit(root)); err != nil {
		return nil, err
	}
	values := m.index.Values()
	m.Entries = make([]Entry, len(values))
	for i, v := range values {
		m.Entries[i] = *v.(*Entry)
	}
	if err = m.reindex(); err != nil { // re-point index to m.Entries
		return nil, buildError(err, "cannot index entries")
	}
	if len(m.Entries) == 0 {
		tracer().Errorf("no font files found in %s", root)
	}
	tracer().Infof("built manifest for %s: %d entries, %d families", root,
		len(m.Entries), len(m.Families()))
	return m, nil
}

type builder struct {
	m *Manifest
}

func (b builder) visit(root string) fs.WalkDirFunc {
	return func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return buildError(err, "cannot scan %s", fpath)
		}
		if d.IsDir() {
			if fpath != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsFontFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, fpath)
		if err != nil {
			return buildError(err, "cannot relate %s to font root", fpath)
		}
		return b.add(fpath, filepath.ToSlash(rel))
	}
}

func (b builder) add(fpath, rel string) error {
	style, ok := font.GuessStyle(rel)
	if !ok {
		tracer().Infof("skipping %s: neither Regular nor Bold", rel)
		return nil
	}
	data, err := os.ReadFile(fpath)
	if err != nil {
		return buildError(err, "cannot read %s", rel)
	}
	sf, err := CheckFontData(data)
	if err != nil {
		return buildError(err, "bad font file %s", rel)
	}
	family := path.Dir(rel)
	if family == "." {
		if family = sf.Family(); family == "" {
			family = strings.SplitN(strings.TrimSuffix(path.Base(rel), path.Ext(rel)), "-", 2)[0]
		}
	} else {
		family = path.Base(family)
	}
	k := entryKey(family, style)
	if other, exists := b.m.index.Get(k); exists {
		return buildError(nil, "%s duplicates %s", rel, other.(*Entry).RelativePath)
	}
	e := &Entry{
		Family:         family,
		Style:          style,
		RelativePath:   rel,
		SizeBytes:      int64(len(data)),
		SHA256:         Digest(data),
		ScriptCoverage: sf.Coverage(),
	}
	b.m.index.Put(k, e)
	tracer().Debugf("manifest entry %s, covers %v", e, e.ScriptCoverage)
	return nil
}

// CheckFontData validates font data and returns the parsed font. Empty data,
// data without an OpenType signature and truncated fonts are rejected.
func CheckFontData(data []byte) (*font.ScalableFont, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("zero-byte font file")
	}
	if !font.HasOpenTypeSignature(data) {
		return nil, fmt.Errorf("no TrueType/OpenType signature")
	}
	sf, err := font.ParseOpenTypeFont(data)
	if err != nil {
		return nil, fmt.Errorf("truncated or corrupt font: %w", err)
	}
	return sf, nil
}

func buildError(err error, format string, v ...interface{}) error {
	msg := fmt.Sprintf(format, v...)
	if err == nil {
		err = fmt.Errorf("%w: %s", ErrManifestBuild, msg)
	} else {
		err = fmt.Errorf("%w: %s: %v", ErrManifestBuild, msg, err)
	}
	return core.WrapError(err, core.EBUILD, msg)
}
