package expression

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type function struct {
	name      string
	call      func(params ...interface{}) (interface{}, error)
	signature interface{}
}

// functions are the helpers expr-lang does not ship with
var functions = []function{
	{"title", stringFunc(func(s string) string { return cases.Title(language.Und).String(s) }), new(func(string) string)},
	{"capitalize", stringFunc(capitalize), new(func(string) string)},
	{"slug", stringFunc(slug.Make), new(func(string) string)},
	{"snake", stringFunc(func(s string) string { return strings.Join(words(s), "_") }), new(func(string) string)},
	{"kebab", stringFunc(func(s string) string { return strings.Join(words(s), "-") }), new(func(string) string)},
	{"camel", stringFunc(camel), new(func(string) string)},
}

func stringFunc(fn func(string) string) func(params ...interface{}) (interface{}, error) {
	return func(params ...interface{}) (interface{}, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(params))
		}
		s, ok := params[0].(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", params[0])
		}
		return fn(s), nil
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func camel(s string) string {
	parts := words(s)
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

// words splits s into lower-cased words on separators and lower-to-upper
// case transitions: "myHTTPServer v2" -> [my, httpserver, v2].
func words(s string) []string {
	var out []string
	var current []rune
	var prev rune

	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()

	return out
}
