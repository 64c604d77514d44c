package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/templatizer/pkg/template"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(o, nil, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			templates := make([]*template.Template, 0, a.gen.Len())
			for _, name := range a.gen.Names() {
				t, err := a.gen.Lookup(name)
				if err != nil {
					return err
				}
				templates = append(templates, t)
			}
			return a.renderer.RenderList(templates, a.report)
		},
	}
}
