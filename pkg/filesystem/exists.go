package filesystem

import (
	"errors"
	"io/fs"

	"github.com/arthur-debert/templatizer/pkg/types"
)

// Exists reports whether name exists. Errors other than "not exist" are
// returned so callers never mistake an unreadable path for a free one.
func Exists(fsys types.FS, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
