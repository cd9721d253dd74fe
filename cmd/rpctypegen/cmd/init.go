package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rpctypegen/am"
	"github.com/teranos/rpctypegen/errors"
)

func newInitCmd(o *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [input_dir] [output_path]",
		Short: "Write rpctypegen.toml with the effective configuration",
		Long: `Write rpctypegen.toml in the working directory from the effective
configuration, including flags and positional arguments. An existing file is
only replaced with --force; the previous three versions are kept as
rpctypegen.toml.back1 to .back3.

Examples:
  rpctypegen init                                  # Defaults
  rpctypegen init --lang go annotations/ types.go  # Go project`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.applyArgs(args); err != nil {
				return err
			}

			path := am.ProjectConfigName
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path),
					"use --force to replace it (a backup is kept)")
			}

			if err := am.WriteProjectConfig(path, o.cfg); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing rpctypegen.toml")
	return cmd
}
