// Package expression evaluates the small per-placeholder expressions found in
// template descriptors.
//
// Variables are evaluated with a single input bound to the identifier v (the
// textual value of the external argument); constants are evaluated with no
// input at all. Expressions are compiled with expr-lang and run against an
// environment that only holds that input, with every builtin disabled except
// an explicit allow-list of pure string, numeric and conversion functions.
// Before compiling, the syntax tree is checked so that predicates and
// closures, pipes into them, ranges, let bindings, array and map literals and
// $env are rejected as well.
// Nothing evaluated here can touch the filesystem, spawn processes, read the
// environment or the clock.
//
// Some examples:
//
//	upper(v)                         "foo"   -> "FOO"
//	v == "" ? "unnamed" : title(v)   "my app" -> "My App"
//	int(v) + 1                       "41"    -> "42"
//	slug(v) + "-service"             "Foo Bar" -> "foo-bar-service"
//	"2011"                           constant -> "2011"
package expression
