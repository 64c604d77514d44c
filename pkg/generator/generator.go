// Package generator holds resolved templates by name and runs them.
//
// A Generator is populated once (usually from discovery) and is read-only
// afterwards. Names are kept in registration order; registering a second
// template under an existing name fails and the first one is retained.
package generator

import (
	"context"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/pipeline"
	"github.com/arthur-debert/templatizer/pkg/registry"
	"github.com/arthur-debert/templatizer/pkg/template"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Generator is the template registry
type Generator struct {
	templates registry.Registry[*template.Template]
}

// New creates an empty Generator
func New() *Generator {
	return &Generator{templates: registry.New[*template.Template]()}
}

// Register adds t under its name
func (g *Generator) Register(t *template.Template) error {
	if t == nil {
		return errors.New(errors.ErrInvalidInput, "cannot register a nil template")
	}

	if g.templates.Has(t.Name()) {
		return errors.Newf(errors.ErrDuplicateTemplate, "template %s is already registered", t.Name()).
			WithDetail("template", t.Name()).
			WithDetail("dir", t.Dir())
	}
	if err := g.templates.Register(t.Name(), t); err != nil {
		return err
	}

	logger := logging.GetLogger("generator")
	logger.Debug().
		Str("template", t.Name()).
		Str("dir", t.Dir()).
		Msg("Registered template")
	return nil
}

// Lookup returns the template registered under name
func (g *Generator) Lookup(name string) (*template.Template, error) {
	t, err := g.templates.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s not found", name).
			WithDetail("template", name)
	}
	return t, nil
}

// Names lists registered template names in registration order
func (g *Generator) Names() []string {
	return g.templates.List()
}

// Len returns the number of registered templates
func (g *Generator) Len() int {
	return g.templates.Count()
}

// Execute runs the actions of the named template through handler. When
// opts.Matcher is nil the template's own matcher processes file contents.
func (g *Generator) Execute(ctx context.Context, name string, handler types.Handler, opts pipeline.Options) (*types.Result, error) {
	logger := logging.GetLogger("generator").With().Str("template", name).Logger()
	done := logging.LogOperationStart(logger, "execute")
	defer done()

	t, err := g.Lookup(name)
	if err != nil {
		return nil, err
	}

	if opts.Matcher == nil {
		opts.Matcher = t.Matcher()
	}
	if missing := t.MissingArguments(); len(missing) > 0 {
		logger.Warn().Strs("arguments", missing).Msg("Running with missing arguments")
	}

	result, err := pipeline.Run(ctx, t.Actions(), handler, opts)
	if result != nil {
		result.Template = name
	}
	if err != nil {
		return result, err
	}

	logger.Info().
		Int("done", result.Count(types.StatusDone)).
		Int("skipped", result.Count(types.StatusSkipped)).
		Int("missingSource", result.Count(types.StatusSourceMissing)).
		Int("failed", result.Count(types.StatusFailed)).
		Msg("Template executed")
	return result, nil
}
