package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/templatizer/pkg/config"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/paths"
)

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return err
			}
			target := p.ConfigFile()
			if o.configFile != "" {
				target = paths.ExpandHome(o.configFile)
			}

			fsys := filesystem.NewOS()
			exists, err := filesystem.Exists(fsys, target)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot check %s", target)
			}
			if exists && !force {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to overwrite", target).
					WithDetail("path", target)
			}

			// start from the defaults, ignoring any existing user or legacy file
			cfg, err := config.Load(config.LoadOptions{})
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}

			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
			}
			if err := fsys.WriteFile(target, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShow,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
