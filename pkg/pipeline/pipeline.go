// Package pipeline runs the resolved actions of a template in order.
//
// Every side effect goes through the caller's types.Handler; the pipeline
// itself only reads: it checks whether file destinations already exist and
// reads source templates through a types.FS. Actions never run concurrently,
// since later actions routinely depend on what earlier ones created.
//
// Failure policy:
//   - an existing destination is skipped, never overwritten
//   - a missing or unreadable source skips that action only
//   - a failing file write is recorded and the pipeline carries on
//   - a failing shell command stops the pipeline unless
//     Options.ContinueOnShellFailure is set
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/substitution"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Options configures a pipeline run
type Options struct {
	// FS is used to check destinations and read sources. Defaults to the OS filesystem.
	FS types.FS

	// Matcher substitutes placeholders in source contents. A nil matcher leaves contents unchanged.
	Matcher *substitution.Matcher

	// WorkDir is the base for relative destinations. Relative destinations are
	// left untouched when empty.
	WorkDir string

	// ContinueOnShellFailure keeps running after a shell command fails
	ContinueOnShellFailure bool

	// Observer, when set, is called with every outcome as soon as it is known
	Observer func(types.Outcome)
}

// Run executes actions in order through handler. The returned error is only
// non-nil when the run was stopped early (shell failure or cancelled
// context); per-action problems are reported in the Result.
func Run(ctx context.Context, actions []types.Action, handler types.Handler, opts Options) (*types.Result, error) {
	logger := logging.GetLogger("pipeline")

	if handler == nil {
		return nil, errors.New(errors.ErrInvalidInput, "pipeline requires an action handler")
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	result := &types.Result{Outcomes: make([]types.Outcome, 0, len(actions))}
	record := func(o types.Outcome) {
		result.Outcomes = append(result.Outcomes, o)
		if opts.Observer != nil {
			opts.Observer(o)
		}
	}

	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			skipRemaining(actions[i:], record)
			return result, errors.Wrap(err, errors.ErrActionExecute, "pipeline cancelled")
		}

		var outcome types.Outcome
		switch action.Kind {
		case types.ActionShell:
			outcome = runShell(ctx, action, handler)
		case types.ActionEmitFile:
			outcome = runEmitFile(ctx, action, handler, opts)
		default:
			outcome = types.Outcome{
				Action: action,
				Status: types.StatusFailed,
				Err:    errors.Newf(errors.ErrInvalidInput, "unknown action kind %s", action.Kind),
			}
		}
		record(outcome)

		logger.Debug().
			Int("index", i).
			Str("kind", action.Kind.String()).
			Str("target", action.Target()).
			Str("status", string(outcome.Status)).
			Msg("Action finished")

		if outcome.Status == types.StatusFailed && action.Kind == types.ActionShell && !opts.ContinueOnShellFailure {
			skipRemaining(actions[i+1:], record)
			return result, errors.Wrapf(outcome.Err, errors.ErrActionExecute,
				"shell action %d failed, remaining actions were not run", i+1).
				WithDetail("command", action.Command)
		}
	}

	return result, nil
}

func runShell(ctx context.Context, action types.Action, handler types.Handler) types.Outcome {
	logger := logging.GetLogger("pipeline")
	logger.Debug().Str("command", action.Command).Msg("Executing shell action")

	if err := handler.Handle(ctx, types.ActionShell, action.Command, nil); err != nil {
		logger.Error().Err(err).Str("command", action.Command).Msg("Shell action failed")
		return types.Outcome{Action: action, Status: types.StatusFailed, Err: err}
	}
	return types.Outcome{Action: action, Status: types.StatusDone}
}

func runEmitFile(ctx context.Context, action types.Action, handler types.Handler, opts Options) types.Outcome {
	logger := logging.GetLogger("pipeline")

	destination := action.Destination
	if opts.WorkDir != "" && !filepath.IsAbs(destination) {
		destination = filepath.Join(opts.WorkDir, destination)
	}
	action.Destination = destination

	exists, err := filesystem.Exists(opts.FS, destination)
	if err != nil {
		return types.Outcome{
			Action: action,
			Status: types.StatusFailed,
			Err: errors.Wrapf(err, errors.ErrFileAccess, "cannot check %s", destination).
				WithDetail("path", destination),
		}
	}
	if exists {
		logger.Info().Str("path", destination).Msg("File exists, skipping")
		return types.Outcome{Action: action, Status: types.StatusSkipped}
	}

	data, err := opts.FS.ReadFile(action.Source)
	if err != nil {
		logger.Warn().Err(err).Str("source", action.Source).Str("path", destination).
			Msg("Source template missing, skipping")
		return types.Outcome{
			Action: action,
			Status: types.StatusSourceMissing,
			Err: errors.Wrapf(err, errors.ErrActionSourceMissing, "source template %s is missing", action.Source).
				WithDetail("source", action.Source).
				WithDetail("path", destination),
		}
	}

	content := opts.Matcher.SubstituteBytes(data)
	if err := handler.Handle(ctx, types.ActionEmitFile, destination, content); err != nil {
		logger.Error().Err(err).Str("path", destination).Msg("Writing file failed")
		return types.Outcome{Action: action, Status: types.StatusFailed, Err: err}
	}

	logger.Debug().Str("path", destination).Int("bytes", len(content)).Msg("File written")
	return types.Outcome{Action: action, Status: types.StatusDone}
}

func skipRemaining(actions []types.Action, record func(types.Outcome)) {
	for _, action := range actions {
		record(types.Outcome{Action: action, Status: types.StatusNotRun})
	}
}
