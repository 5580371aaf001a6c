package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/multiscript/core"
	"github.com/npillmayer/multiscript/core/font/manifest"
	"github.com/npillmayer/schuko"
)

// DefaultManifestPath returns the location of the font manifest. If the
// configuration sets `fonts.manifest`, this is used. Otherwise the manifest
// is located in the user's config directory, taken from `os.UserConfigDir()`,
// plus an application specific key, taken as `app-key` from the configuration:
//
//    <UserConfigDir>/<app-key>/fonts/font-manifest.v1.json
//
func DefaultManifestPath(conf schuko.Configuration) (string, error) {
	if conf != nil {
		if p := conf.GetString("fonts.manifest"); p != "" {
			return p, nil
		}
	}
	var appkey string
	if conf != nil {
		appkey = conf.GetString("app-key")
	}
	tracer().Debugf("config[app-key] = %s", appkey)
	if appkey == "" {
		tracer().Errorf("application key is not set")
		return "", core.Error(core.EMISSING, "application key not configured, cannot locate font manifest")
	}
	uconfdir, err := os.UserConfigDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user config directory not set")
	}
	return filepath.Join(uconfdir, appkey, "fonts", manifest.DefaultFilename), nil
}

// LoadResolver loads the font manifest from its configured location and
// creates a resolver for it. It always returns a usable resolver: if the
// manifest cannot be loaded, the resolver is in degraded mode and the error
// (wrapping manifest.ErrManifestMissing) is returned alongside it.
func LoadResolver(conf schuko.Configuration) (*Resolver, error) {
	path, err := DefaultManifestPath(conf)
	if err != nil {
		return NewResolver(nil, conf), err
	}
	m, err := manifest.Load(path)
	if err != nil {
		tracer().Errorf("cannot load font manifest: %v", err)
		return NewResolver(nil, conf), err
	}
	return NewResolver(m, conf), nil
}
