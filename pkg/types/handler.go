package types

import (
	"context"
	"fmt"
)

// Handler performs the side effect of one action. For shell actions target
// is the substituted command and content is nil; for file actions target is
// the destination path and content the processed template.
type Handler interface {
	Handle(ctx context.Context, kind ActionKind, target string, content []byte) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, kind ActionKind, target string, content []byte) error

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, kind ActionKind, target string, content []byte) error {
	return f(ctx, kind, target, content)
}

// ShellError is returned by handlers when a shell command exits unsuccessfully
type ShellError struct {
	Command  string
	ExitCode int
	Err      error
}

// Error implements the error interface
func (e *ShellError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %q exited with status %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
}

// Unwrap returns the underlying process error
func (e *ShellError) Unwrap() error {
	return e.Err
}
