// Package config loads templatizer's configuration.
//
// Values are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/templatizer/config.toml or --config
//  3. TEMPLATIZER_* environment variables, with __ separating sections
//     (TEMPLATIZER_SHELL__PROGRAM=bash)
//  4. command line overrides
//
// Template directories listed in the legacy ~/.templatizer file, one per
// line, are appended to templates.paths.
package config
