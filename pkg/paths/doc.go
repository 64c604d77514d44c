// Package paths resolves where templatizer keeps its files. It follows the
// XDG Base Directory specification for configuration, data and state, and
// knows about the legacy ~/.templatizer file, which predates config.toml.
package paths
