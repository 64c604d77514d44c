// Package types defines the values shared by the generator core and its
// collaborators: the Action variant produced by template resolution, the
// Handler boundary through which every side effect flows, the FS interface
// used to check destinations and read template sources, and the per-action
// Outcome reported by the pipeline.
package types
