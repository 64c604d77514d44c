package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/templatizer/internal/version"
	"github.com/arthur-debert/templatizer/pkg/ui"
)

// NewRootCmd creates the templatizer command tree
func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   MsgRootUse,
		Short: MsgRootShort,
		Long:  MsgRootLong,
		// template arguments are arbitrary --key=value flags
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// commands parsing their own flags set up logging afterwards
			if !cmd.DisableFlagParsing {
				setupLogging(o)
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, raw []string) error {
			inv, err := parseInvocation(o, raw, true)
			if err != nil {
				return err
			}
			setupLogging(o)

			switch {
			case o.help:
				return cmd.Help()
			case o.version:
				fmt.Fprint(cmd.OutOrStdout(), version.String())
				return nil
			}
			return runInvocation(cmd, o, inv)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	addGlobalFlags(rootCmd.PersistentFlags(), o)
	addRunFlags(rootCmd.Flags(), o)
	rootCmd.Flags().BoolVar(&o.version, "version", false, MsgFlagVersion)

	rootCmd.AddCommand(
		newRunCmd(o),
		newListCmd(o),
		newShowCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
		newCompletionCmd(),
		newManCmd(),
	)

	return rootCmd
}

// Execute runs the command line args and returns the process exit code.
// Errors are rendered on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	log.Debug().Err(err).Msg("Command failed")
	if renderer, rerr := ui.NewRenderer(ui.FormatAuto, stderr); rerr == nil {
		_ = renderer.RenderError(err)
	} else {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return ExitCode(err)
}
