// Package discovery finds descriptor files in template directories and
// turns them into registered templates.
//
// Discovery is resilient: a descriptor that cannot be read, parsed, resolved
// or registered is recorded in the Report with its error and the scan moves
// on to the next file.
package discovery

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/arthur-debert/templatizer/pkg/descriptor"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/generator"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/template"
)

// DefaultExtensions are scanned when no extensions are configured
var DefaultExtensions = []string{descriptor.Extension}

// Entry is the discovery result of one descriptor file
type Entry struct {
	Path       string
	Descriptor *descriptor.Descriptor
	Registered bool
	Err        error
}

// Name returns the descriptor name, or "" when the file could not be parsed
func (e Entry) Name() string {
	if e.Descriptor == nil {
		return ""
	}
	return e.Descriptor.Name
}

// Report lists every descriptor file found, in scan order
type Report struct {
	Entries []Entry
}

// Scan globs each directory for files with the given extensions and loads
// them. Directories are visited in order and files sorted by name within a
// directory. Missing directories are skipped.
func Scan(fs afero.Fs, dirs []string, extensions []string) *Report {
	logger := logging.GetLogger("discovery")
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	fsys := filesystem.NewAferoFS(fs)
	report := &Report{}
	seen := make(map[string]bool)

	for _, dir := range dirs {
		if ok, err := afero.DirExists(fs, dir); err != nil || !ok {
			logger.Debug().Str("dir", dir).Msg("Template directory not found, skipping")
			continue
		}

		var files []string
		for _, ext := range extensions {
			matches, err := afero.Glob(fs, filepath.Join(dir, "*"+ext))
			if err != nil {
				logger.Warn().Err(err).Str("dir", dir).Str("extension", ext).Msg("Invalid glob pattern")
				continue
			}
			files = append(files, matches...)
		}
		sort.Strings(files)

		for _, path := range files {
			if seen[path] {
				continue
			}
			seen[path] = true

			d, err := descriptor.Load(fsys, path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Skipping invalid descriptor")
			}
			report.Entries = append(report.Entries, Entry{Path: path, Descriptor: d, Err: err})
		}
	}

	logger.Debug().
		Int("dirs", len(dirs)).
		Int("files", len(report.Entries)).
		Int("failed", len(report.Failures())).
		Msg("Scanned template directories")

	return report
}

// Register resolves every parsed descriptor against args and registers it
// with g. Failures are stored on the entry.
func (r *Report) Register(g *generator.Generator, args map[string]string, opts template.Options) {
	logger := logging.GetLogger("discovery")

	for i := range r.Entries {
		e := &r.Entries[i]
		if e.Err != nil || e.Descriptor == nil {
			continue
		}

		t, err := template.Resolve(e.Descriptor, args, opts)
		if err == nil {
			err = g.Register(t)
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", e.Path).Str("template", e.Name()).Msg("Template not registered")
			e.Err = err
			continue
		}
		e.Registered = true
	}
}

// Failures returns the entries that have an error
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Failure returns the error of the first failed descriptor named name. It
// explains why a lookup by that name finds nothing.
func (r *Report) Failure(name string) error {
	for _, e := range r.Entries {
		if e.Err != nil && e.Name() == name && !errors.IsErrorCode(e.Err, errors.ErrDuplicateTemplate) {
			return e.Err
		}
	}
	return nil
}
