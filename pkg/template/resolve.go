package template

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/templatizer/pkg/descriptor"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/expression"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/ordered"
	"github.com/arthur-debert/templatizer/pkg/substitution"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Options controls template resolution
type Options struct {
	// StrictArguments makes a missing argument an ArgumentRequired error.
	// Otherwise every placeholder of a missing argument resolves to "".
	StrictArguments bool

	// Now supplies the time for %YEAR% and %DATE%. Defaults to time.Now.
	Now func() time.Time

	// Evaluator is shared between templates to reuse compiled expressions.
	// A new one is created when nil.
	Evaluator *expression.Evaluator
}

// Resolve evaluates d against args and builds a read-only Template
func Resolve(d *descriptor.Descriptor, args map[string]string, opts Options) (*Template, error) {
	logger := logging.GetLogger("template.resolve").With().Str("template", d.Name).Logger()

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Evaluator == nil {
		opts.Evaluator = expression.NewEvaluator()
	}

	dir := d.Dir
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	t := &Template{
		name:        d.Name,
		description: d.Description,
		dir:         dir,
	}

	variables, err := t.resolveVariables(d, args, opts)
	if err != nil {
		return nil, err
	}

	constants, err := t.resolveConstants(d, opts)
	if err != nil {
		return nil, err
	}

	t.placeholders = merge(map[Source]*ordered.Map[string]{
		SourceVariables: variables,
		SourceConstants: constants,
		SourceBuiltins:  builtins(opts.Now(), dir),
	})
	t.matcher = substitution.Compile(t.placeholders)

	t.actions = t.resolveActions(d.Actions)

	logger.Debug().
		Int("placeholders", t.placeholders.Len()).
		Int("actions", len(t.actions)).
		Strs("missingArguments", t.missing).
		Msg("Resolved template")

	return t, nil
}

func (t *Template) resolveVariables(d *descriptor.Descriptor, args map[string]string, opts Options) (*ordered.Map[string], error) {
	logger := logging.GetLogger("template.resolve")
	out := ordered.New[string]()

	var err error
	d.Variables.Range(func(arg string, tokens *ordered.Map[string]) bool {
		input, supplied := args[arg]
		if !supplied {
			t.missing = append(t.missing, arg)
			if opts.StrictArguments {
				err = errors.Newf(errors.ErrArgumentRequired, "--%s argument required", arg).
					WithDetail("template", t.name).
					WithDetail("argument", arg)
				return false
			}
			logger.Debug().Str("template", t.name).Str("argument", arg).
				Msg("Argument not supplied, its placeholders resolve to empty strings")
		}

		tokens.Range(func(token, expr string) bool {
			if !supplied {
				out.Set(token, "")
				return true
			}
			var value string
			value, err = opts.Evaluator.EvaluateVariable(expr, input)
			if err != nil {
				err = expressionFailure(err, t.name, token, expr)
				return false
			}
			logger.Trace().Str("token", token).Str("value", value).Msg("Resolved variable")
			out.Set(token, value)
			return true
		})
		return err == nil
	})

	return out, err
}

func (t *Template) resolveConstants(d *descriptor.Descriptor, opts Options) (*ordered.Map[string], error) {
	logger := logging.GetLogger("template.resolve")
	out := ordered.New[string]()

	var err error
	d.Constants.Range(func(token, expr string) bool {
		var value string
		value, err = opts.Evaluator.EvaluateConstant(expr)
		if err != nil {
			err = expressionFailure(err, t.name, token, expr)
			return false
		}
		logger.Trace().Str("token", token).Str("value", value).Msg("Resolved constant")
		out.Set(token, value)
		return true
	})

	return out, err
}

func (t *Template) resolveActions(specs [][]string) []types.Action {
	actions := make([]types.Action, 0, len(specs))
	for _, raw := range specs {
		switch len(raw) {
		case 1:
			actions = append(actions, types.ShellAction(t.matcher.Substitute(raw[0])))
		case 2:
			source := t.matcher.Substitute(raw[1])
			if !filepath.IsAbs(source) {
				source = filepath.Join(t.dir, source)
			}
			actions = append(actions, types.EmitFileAction(t.matcher.Substitute(raw[0]), source))
		}
	}
	return actions
}

func expressionFailure(err error, name, token, expr string) error {
	return errors.Wrapf(err, errors.ErrInvalidTemplate, "template %s: cannot resolve %s", name, token).
		WithDetail("template", name).
		WithDetail("token", token).
		WithDetail("expression", expr)
}
