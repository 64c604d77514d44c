package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/handler"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/pipeline"
	"github.com/arthur-debert/templatizer/pkg/types"
	"github.com/arthur-debert/templatizer/pkg/ui"
)

func newRunCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "run <template> [--key=value ...]",
		Short:              MsgRunShort,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, raw []string) error {
			inv, err := parseInvocation(o, raw, false)
			if err != nil {
				return err
			}
			setupLogging(o)
			if o.help {
				return cmd.Help()
			}
			return runInvocation(cmd, o, inv)
		},
	}
	addRunFlags(cmd.Flags(), o)
	return cmd
}

// runInvocation runs the single template named in inv
func runInvocation(cmd *cobra.Command, o *options, inv *invocation) error {
	if len(inv.positional) == 0 {
		_ = cmd.Help()
		return errors.New(errors.ErrInvalidInput, MsgNoTemplate)
	}
	if len(inv.positional) > 1 {
		return errors.Newf(errors.ErrInvalidInput, "expected one template, got %d: %v",
			len(inv.positional), inv.positional)
	}
	name := inv.positional[0]

	logger := logging.GetLogger("cmd.run")
	logger.Info().
		Str("template", name).
		Bool("dryRun", o.dryRun).
		Int("arguments", len(inv.arguments)).
		Msg("Running template")

	a, err := loadApp(o, inv.arguments, true, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	t, err := a.lookup(name)
	if err != nil {
		return err
	}

	workDir, err := resolveWorkDir(o.workDir)
	if err != nil {
		return err
	}

	// keep JSON output parseable by moving command output to stderr
	var commandOut io.Writer = cmd.OutOrStdout()
	if a.renderer.Format() == ui.FormatJSON {
		commandOut = cmd.ErrOrStderr()
	}

	fsys := filesystem.NewOS()
	h := handler.New(handler.Options{
		FS:      fsys,
		WorkDir: workDir,
		Shell:   a.cfg.Shell.Program,
		Timeout: a.cfg.Shell.Timeout,
		Env: []string{
			"TEMPLATIZER_TEMPLATE=" + t.Name(),
			"TEMPLATIZER_TEMPLATE_DIR=" + t.Dir(),
		},
		DryRun: o.dryRun,
		Stdout: commandOut,
		Stderr: cmd.ErrOrStderr(),
	})

	result, runErr := a.gen.Execute(cmd.Context(), name, h, pipeline.Options{
		FS:                     fsys,
		WorkDir:                workDir,
		ContinueOnShellFailure: a.cfg.Shell.ContinueOnFailure,
	})
	if result != nil {
		if err := a.renderer.RenderResult(result, o.dryRun); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if n := result.Count(types.StatusFailed); n > 0 {
		return errors.Newf(errors.ErrActionExecute, "%d action(s) of %s failed", n, name).
			WithDetail("template", name)
	}
	return nil
}
