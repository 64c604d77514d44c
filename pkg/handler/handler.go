// Package handler provides the default action handler: it writes emitted
// files through a types.FS and runs shell commands with a configurable shell
// program in the working directory. In dry-run mode nothing is touched and
// every action is only logged.
package handler

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/types"
)

const (
	// DefaultShell runs commands as `sh -c <command>`
	DefaultShell = "sh"

	// FileMode is the permission of emitted files
	FileMode os.FileMode = 0644

	// DirMode is the permission of created parent directories
	DirMode os.FileMode = 0755

	// waitDelay bounds how long output pipes may stay open after the
	// command was killed by a cancelled context.
	waitDelay = 2 * time.Second
)

// Options configures a Handler
type Options struct {
	FS      types.FS
	WorkDir string

	// Shell is the program commands are passed to with -c
	Shell string

	// Timeout bounds each shell command. Zero means no limit.
	Timeout time.Duration

	// Env is appended to the process environment of shell commands
	Env []string

	DryRun bool

	// Stdout and Stderr receive command output. Default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Handler is the default types.Handler
type Handler struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Handler, filling in defaults for unset options
func New(opts Options) *Handler {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Shell == "" {
		opts.Shell = DefaultShell
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Handler{
		opts:   opts,
		logger: logging.GetLogger("handler"),
	}
}

// Handle implements types.Handler
func (h *Handler) Handle(ctx context.Context, kind types.ActionKind, target string, content []byte) error {
	switch kind {
	case types.ActionShell:
		return h.runShell(ctx, target)
	case types.ActionEmitFile:
		return h.writeFile(target, content)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported action kind %s", kind)
	}
}

func (h *Handler) writeFile(path string, content []byte) error {
	if h.opts.DryRun {
		h.logger.Info().Str("path", path).Int("bytes", len(content)).Msg("Dry run - file would be written")
		return nil
	}

	dir := filepath.Dir(path)
	if err := h.opts.FS.MkdirAll(dir, DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir).
			WithDetail("path", dir)
	}
	if err := h.opts.FS.WriteFile(path, content, FileMode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}

	h.logger.Info().Str("path", path).Msg("Wrote file")
	return nil
}

func (h *Handler) runShell(ctx context.Context, command string) error {
	if command == "" {
		return errors.New(errors.ErrInvalidInput, "shell action requires a command")
	}

	h.logger.Info().
		Str("command", command).
		Str("workingDir", h.opts.WorkDir).
		Msg("Executing command")

	if h.opts.DryRun {
		h.logger.Info().Msg("Dry run - command would be executed")
		return nil
	}

	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}

	logging.LogCommand(h.opts.Shell, []string{"-c", command})
	start := time.Now()

	cmd := exec.CommandContext(ctx, h.opts.Shell, "-c", command)
	cmd.Dir = h.opts.WorkDir
	cmd.Env = append(os.Environ(), h.opts.Env...)
	cmd.WaitDelay = waitDelay

	// stream to the user and keep a copy for the log
	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(h.opts.Stdout, &stdout)
	cmd.Stderr = io.MultiWriter(h.opts.Stderr, &stderr)

	err := cmd.Run()
	logging.LogDuration(start, "shell")

	if stdout.Len() > 0 {
		h.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		h.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		h.logger.Error().
			Err(err).
			Str("command", command).
			Int("exitCode", exitCode).
			Str("stderr", stderr.String()).
			Msg("Command execution failed")

		return &types.ShellError{Command: command, ExitCode: exitCode, Err: err}
	}

	h.logger.Info().Str("command", command).Msg("Command executed successfully")
	return nil
}
