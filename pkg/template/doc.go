// Package template turns a parsed descriptor and a set of external
// arguments into a resolved, read-only Template.
//
// Resolution evaluates every variable expression against its argument,
// every constant expression without input, and merges the results with the
// built-in placeholders in MergeOrder. The merged map is compiled once into
// a substitution matcher that rewrites the action commands and paths
// eagerly; file contents are only substituted when the pipeline runs.
package template
