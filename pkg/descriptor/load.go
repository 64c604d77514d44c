package descriptor

import (
	"path/filepath"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Load reads and parses the descriptor at path. The descriptor's Dir is set
// to the absolute directory containing it.
func Load(fsys types.FS, path string) (*Descriptor, error) {
	logger := logging.GetLogger("descriptor")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read descriptor %s", path).
			WithDetail("path", path)
	}

	format := FormatFromPath(absPath)
	d, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "invalid %s template", path).
			WithDetail("path", path)
	}
	d.Dir = filepath.Dir(absPath)

	logger.Debug().
		Str("path", absPath).
		Str("format", string(format)).
		Str("name", d.Name).
		Int("variables", d.Variables.Len()).
		Int("constants", d.Constants.Len()).
		Int("actions", len(d.Actions)).
		Msg("Parsed descriptor")

	return d, nil
}
