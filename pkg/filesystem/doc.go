// Package filesystem provides filesystem implementations for templatizer.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero-backed one used for in-memory tests
// and wherever callers already hold an afero.Fs.
package filesystem
