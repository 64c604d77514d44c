// Package registry provides a generic, thread-safe, insertion-ordered
// registry. The generator keeps its templates in one; the first item
// registered under a name wins and later duplicates are rejected.
package registry
