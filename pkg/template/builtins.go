package template

import (
	"strconv"
	"time"

	"github.com/arthur-debert/templatizer/pkg/ordered"
)

// Reserved placeholder tokens. User variables and constants cannot override them.
const (
	TokenYear        = "%YEAR%"
	TokenDate        = "%DATE%"
	TokenTemplateDir = "%TPLDIR%"
)

// DateLayout renders %DATE% as DD/MM/YY
const DateLayout = "02/01/06"

// Source identifies where a placeholder value came from
type Source int

const (
	SourceVariables Source = iota
	SourceConstants
	SourceBuiltins
)

func (s Source) String() string {
	switch s {
	case SourceVariables:
		return "variables"
	case SourceConstants:
		return "constants"
	case SourceBuiltins:
		return "builtins"
	default:
		return "unknown"
	}
}

// MergeOrder is the order placeholder sources are merged in. When the same
// token comes from several sources the value of the later source wins, while
// the token keeps the alternation position of its first declaration. A
// template that declares a builtin token such as %YEAR% therefore loses its
// value to the builtin but moves the builtin ahead of later tokens when
// overlapping matches are tie-broken.
var MergeOrder = []Source{SourceVariables, SourceConstants, SourceBuiltins}

// builtins returns the reserved placeholders for a template directory
func builtins(now time.Time, dir string) *ordered.Map[string] {
	m := ordered.New[string]()
	m.Set(TokenYear, strconv.Itoa(now.Year()))
	m.Set(TokenDate, now.Format(DateLayout))
	m.Set(TokenTemplateDir, dir)
	return m
}

// merge combines the per-source maps following MergeOrder
func merge(sources map[Source]*ordered.Map[string]) *ordered.Map[string] {
	merged := ordered.New[string]()
	for _, source := range MergeOrder {
		sources[source].Range(func(token, value string) bool {
			merged.Set(token, value)
			return true
		})
	}
	return merged
}
