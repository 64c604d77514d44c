package template

import (
	"github.com/arthur-debert/templatizer/pkg/ordered"
	"github.com/arthur-debert/templatizer/pkg/substitution"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Template is a resolved descriptor. It is read-only once Resolve returns.
type Template struct {
	name         string
	description  string
	dir          string
	placeholders *ordered.Map[string]
	matcher      *substitution.Matcher
	actions      []types.Action
	missing      []string
}

// Name returns the template name
func (t *Template) Name() string { return t.name }

// Description returns the optional descriptor description
func (t *Template) Description() string { return t.description }

// Dir returns the absolute directory of the descriptor
func (t *Template) Dir() string { return t.dir }

// Placeholders returns a copy of the merged token -> value map in alternation order
func (t *Template) Placeholders() *ordered.Map[string] {
	out := ordered.New[string]()
	t.placeholders.Range(func(k, v string) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Matcher returns the compiled substitution matcher
func (t *Template) Matcher() *substitution.Matcher { return t.matcher }

// Actions returns a copy of the substituted actions in descriptor order
func (t *Template) Actions() []types.Action {
	out := make([]types.Action, len(t.actions))
	copy(out, t.actions)
	return out
}

// MissingArguments lists declared arguments that were not supplied
func (t *Template) MissingArguments() []string {
	out := make([]string, len(t.missing))
	copy(out, t.missing)
	return out
}

// Process substitutes the template's placeholders in content
func (t *Template) Process(content []byte) []byte {
	return t.matcher.SubstituteBytes(content)
}
