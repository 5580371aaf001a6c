package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font"
)

// ImportSystemFont locates an installed system font by name and copies it
// into the font root, using the layout expected by Build. It returns the path
// of the copied file. Importing is an offline step; a manifest has to be
// rebuilt afterwards.
func ImportSystemFont(root, name, family string, style font.Style) (string, error) {
	fpath, err := findfont.Find(name)
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "system font %s not found", name)
	}
	tracer().Infof("%s is system font %s", name, fpath)
	return ImportFile(root, fpath, family, style)
}

// ImportFile copies a font file into the font root as
// <root>/<family>/<name>-<style>.<ext>, where name is the normalized family
// name. If family is empty, the font's own family name is used.
func ImportFile(root, src, family string, style font.Style) (string, error) {
	if !IsFontFile(src) {
		return "", core.Error(core.EINVALID, "%s is not a TrueType/OpenType file", src)
	}
	f, err := font.LoadOpenTypeFont(src)
	if errors.Is(err, fs.ErrNotExist) {
		return "", core.WrapError(err, core.EMISSING, "cannot read font %s", src)
	} else if err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot import %s", src)
	}
	if family == "" {
		family = f.Family()
	}
	if strings.TrimSpace(family) == "" || strings.ContainsAny(family, `/\`) || family == "." || family == ".." {
		return "", core.Error(core.EINVALID, "invalid family name %q", family)
	}
	dir := filepath.Join(root, family)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot create family directory %s", dir)
	}
	ext := strings.ToLower(filepath.Ext(src))
	dest := filepath.Join(dir, font.NormalizeFontname(family)+"-"+style.String()+ext)
	if err = os.WriteFile(dest, f.Binary, 0644); err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot write %s", dest)
	}
	tracer().Infof("imported %s (%s) as %s", src, f.Fontname, dest)
	return dest, nil
}
