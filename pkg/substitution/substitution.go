// Package substitution replaces placeholder tokens in text in a single pass.
//
// All tokens are compiled into one alternation of quoted literals. Go's
// regexp engine matches leftmost-first: at any position the alternative
// declared earliest wins, even when a later token would produce a longer
// match. Matching is linear in the length of the input, and replaced output
// is never scanned again.
package substitution

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/templatizer/pkg/ordered"
)

// Matcher substitutes a fixed set of placeholder tokens
type Matcher struct {
	re     *regexp.Regexp
	tokens []string
	values map[string]string
}

// Compile builds a Matcher from placeholders. The alternation follows the
// map's key order. Empty tokens are ignored.
func Compile(placeholders *ordered.Map[string]) *Matcher {
	m := &Matcher{values: make(map[string]string, placeholders.Len())}

	placeholders.Range(func(token, value string) bool {
		if token == "" {
			return true
		}
		m.tokens = append(m.tokens, token)
		m.values[token] = value
		return true
	})

	if len(m.tokens) == 0 {
		return m
	}

	quoted := make([]string, len(m.tokens))
	for i, token := range m.tokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	m.re = regexp.MustCompile(strings.Join(quoted, "|"))

	return m
}

// Tokens returns the tokens in alternation order
func (m *Matcher) Tokens() []string {
	out := make([]string, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// Substitute replaces every non-overlapping token occurrence in text
func (m *Matcher) Substitute(text string) string {
	if m == nil || m.re == nil {
		return text
	}
	return m.re.ReplaceAllStringFunc(text, func(token string) string {
		return m.values[token]
	})
}

// SubstituteBytes is Substitute for byte slices
func (m *Matcher) SubstituteBytes(data []byte) []byte {
	if m == nil || m.re == nil {
		return data
	}
	return m.re.ReplaceAllFunc(data, func(token []byte) []byte {
		return []byte(m.values[string(token)])
	})
}
