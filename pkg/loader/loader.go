// Package loader materializes the manifest: it locates the manifest
// script, evaluates it through the embedded Starlark engine and hands
// the resulting value tree to the normalizer. All file I/O and
// scripting-runtime bootstrap lives here, outside the core.
package loader

import (
	"os"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/logging"
	"github.com/arthur-debert/mdot/pkg/manifest"
	"github.com/arthur-debert/mdot/pkg/paths"
)

// PackagesGlobal is the global the manifest script must assign its
// package list to.
const PackagesGlobal = "packages"

// Loader evaluates manifest scripts into manifest value trees.
type Loader struct {
	paths  *paths.Paths
	logger zerolog.Logger
}

// New creates a Loader over the given path set.
func New(p *paths.Paths) *Loader {
	return &Loader{
		paths:  p,
		logger: logging.GetLogger("loader"),
	}
}

// Load reads and evaluates the manifest at the given filename
// (resolved against the config root) and returns the top-level table.
func (l *Loader) Load(filename string) (*manifest.Table, error) {
	path := l.paths.ManifestPath(filename)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read manifest %s", path).WithDetail("path", path)
	}
	l.logger.Debug().Str("path", path).Msg("Evaluating manifest")
	return l.LoadSource(path, src)
}

// LoadSource evaluates manifest source held in memory. The script is
// executed once; its `packages` global becomes the root of the value
// tree handed to the normalizer.
func (l *Loader) LoadSource(filename string, src interface{}) (*manifest.Table, error) {
	thread := &starlark.Thread{
		Name: "mdot",
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Info().Str("manifest", filename).Msg(msg)
		},
	}

	globals, err := starlark.ExecFile(thread, filename, src, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrScriptEval, "manifest evaluation failed")
	}

	root, ok := globals[PackagesGlobal]
	if !ok {
		return nil, errors.Newf(errors.ErrScriptEval,
			"manifest %s does not define '%s'", filename, PackagesGlobal)
	}

	value, err := FromStarlark(thread, root)
	if err != nil {
		return nil, err
	}
	tbl, ok := value.AsTable()
	if !ok {
		return nil, errors.Newf(errors.ErrScriptValue,
			"'%s' must be a list or dict, got %s", PackagesGlobal, root.Type())
	}
	return tbl, nil
}
