package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
	"github.com/npillmayer/multiscript/core/script"
)

// Version is the schema version of manifest files written by this package.
const Version = 1

// DefaultFilename is the file name a manifest is stored under.
const DefaultFilename = "font-manifest.v1.json"

// Sentinel errors, to be tested with errors.Is.
var (
	ErrManifestMissing = errors.New("font manifest missing")
	ErrManifestBuild   = errors.New("font manifest build failed")
	ErrMismatch        = errors.New("font files do not match manifest")
)

// Entry describes a single font file of a family.
type Entry struct {
	Family         string       `json:"family"`
	Style          font.Style   `json:"style"`
	RelativePath   string       `json:"relativePath"`
	SizeBytes      int64        `json:"sizeBytes"`
	SHA256         string       `json:"sha256"`
	ScriptCoverage []script.Tag `json:"scriptCoverage"`
}

// Covers is true if the font has glyphs for script tag.
func (e Entry) Covers(tag script.Tag) bool {
	for _, t := range e.ScriptCoverage {
		if t == tag {
			return true
		}
	}
	return false
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s (%s)", e.Family, e.Style, e.RelativePath)
}

// Manifest is an inventory of font files. A manifest must not be changed after
// it has been built or loaded; it is safe for concurrent use by readers.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	FontRoot    string    `json:"fontRoot"` // relative to the manifest file
	Entries     []Entry   `json:"entries"`

	root     string
	index    *treemap.Map // family/style → *Entry
	families *trie.Trie
}

func entryKey(family string, style font.Style) string {
	return family + "/" + style.String()
}

// reindex builds the lookup structures for m.Entries. It fails for duplicate
// (family, style) pairs.
func (m *Manifest) reindex() error {
	m.index = treemap.NewWithStringComparator()
	m.families = trie.New()
	for i := range m.Entries {
		e := &m.Entries[i]
		k := entryKey(e.Family, e.Style)
		if _, exists := m.index.Get(k); exists {
			return fmt.Errorf("duplicate manifest entry for %s %s", e.Family, e.Style)
		}
		m.index.Put(k, e)
		if _, ok := m.families.Find(e.Family); !ok {
			m.families.Add(e.Family, e.Family)
		}
	}
	return nil
}

// Root returns the font root directory the entries' paths are relative to.
func (m *Manifest) Root() string {
	return m.root
}

// Path returns the file path of an entry's font file.
func (m *Manifest) Path(e Entry) string {
	return filepath.Join(m.root, filepath.FromSlash(e.RelativePath))
}

// Lookup finds the entry for a family and style.
func (m *Manifest) Lookup(family string, style font.Style) (Entry, bool) {
	if m == nil || m.index == nil {
		return Entry{}, false
	}
	if e, ok := m.index.Get(entryKey(family, style)); ok {
		return *e.(*Entry), true
	}
	return Entry{}, false
}

// HasFamily is true if the manifest contains any entry for family.
func (m *Manifest) HasFamily(family string) bool {
	if m == nil || m.families == nil {
		return false
	}
	_, ok := m.families.Find(family)
	return ok
}

// Families returns the names of all families in the manifest, sorted.
func (m *Manifest) Families() []string {
	if m == nil || m.index == nil {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	it := m.index.Iterator()
	for it.Next() {
		e := it.Value().(*Entry)
		if !seen[e.Family] {
			seen[e.Family] = true
			names = append(names, e.Family)
		}
	}
	sort.Strings(names) // index order is by "family/style", not by family
	return names
}

// FamiliesWithPrefix returns the sorted names of all families starting with
// prefix.
func (m *Manifest) FamiliesWithPrefix(prefix string) []string {
	if prefix == "" {
		return m.Families()
	}
	if m == nil || m.families == nil {
		return nil
	}
	names := m.families.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// Covering returns the sorted names of families with at least one font
// covering script tag.
func (m *Manifest) Covering(tag script.Tag) []string {
	var names []string
	for _, family := range m.Families() {
		for _, style := range []font.Style{font.Regular, font.Bold} {
			if e, ok := m.Lookup(family, style); ok && e.Covers(tag) {
				names = append(names, family)
				break
			}
		}
	}
	return names
}

// Digest returns the hex-encoded SHA-256 of font data.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// --- Persistence -----------------------------------------------------------

// Save writes the manifest to a JSON file. The font root is recorded relative
// to the directory of the manifest file.
func (m *Manifest) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create directory for manifest %s", path)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot locate manifest %s", path)
	}
	absRoot, err := filepath.Abs(m.root)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot locate font root %s", m.root)
	}
	if rel, err := filepath.Rel(absDir, absRoot); err == nil {
		m.FontRoot = filepath.ToSlash(rel)
	} else {
		m.FontRoot = filepath.ToSlash(absRoot)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode manifest")
	}
	if err = os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write manifest %s", path)
	}
	tracer().Infof("manifest with %d entries saved to %s", len(m.Entries), path)
	return nil
}

// Load reads a manifest from a JSON file. A missing, unreadable or malformed
// manifest results in an error wrapping ErrManifestMissing.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, missing(path, err)
	}
	m := &Manifest{}
	if err = json.Unmarshal(data, m); err != nil {
		return nil, missing(path, err)
	}
	if m.Version != Version {
		return nil, missing(path, fmt.Errorf("unsupported manifest version %d", m.Version))
	}
	for _, e := range m.Entries {
		if e.Family == "" || e.RelativePath == "" {
			return nil, missing(path, fmt.Errorf("incomplete entry %v", e))
		}
		if _, err := hex.DecodeString(e.SHA256); err != nil || len(e.SHA256) != 2*sha256.Size {
			return nil, missing(path, fmt.Errorf("malformed hash for %v", e))
		}
	}
	if err = m.reindex(); err != nil {
		return nil, missing(path, err)
	}
	root := filepath.FromSlash(m.FontRoot)
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(path), root)
	}
	m.root = root
	tracer().Infof("loaded manifest %s with %d entries", path, len(m.Entries))
	return m, nil
}

func missing(path string, err error) error {
	return core.WrapError(fmt.Errorf("%w: %v", ErrManifestMissing, err), core.EMISSING,
		"font manifest %s cannot be loaded", path)
}
