package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:                "show <template> [--key=value ...]",
		Short:              MsgShowShort,
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
			if len(inv.positional) != 1 {
				return errors.New(errors.ErrInvalidInput, "show takes exactly one template name")
			}

			a, err := loadApp(o, inv.arguments, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			t, err := a.lookup(inv.positional[0])
			if err != nil {
				return err
			}
			return a.renderer.RenderTemplate(t)
		},
	}
}
