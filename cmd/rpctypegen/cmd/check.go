package cmd

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen"
)

// ErrOutOfDate is returned by check when the artifact differs from a fresh
// generation
var ErrOutOfDate = errors.New("generated types are out of date")

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [input_dir] [output_path]",
		Short: "Check if a generated artifact is up to date",
		Long: `Check if an existing artifact matches the current annotations.

This command generates into a temporary file and compares it with the
existing artifact, ignoring the disclaimer comment.

Exit codes:
  0 - Artifact is up to date
  1 - Artifact is out of date (first differences shown), or the check failed

Examples:
  rpctypegen check                              # Check the default artifact
  rpctypegen check annotations/ src/types.rs    # Check a checked-in artifact`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runCheck(cmd, args)
		},
	}
}

func (o *options) runCheck(cmd *cobra.Command, args []string) error {
	if err := o.applyArgs(args); err != nil {
		return err
	}

	ctx, g, err := o.prepare(cmd.Context(), "check")
	if err != nil {
		return err
	}
	defer g.input.Cleanup()

	existing, err := o.outputPath(g.gen)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "rpctypegen-check-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	// Same base name so formatters see the same file kind
	generated := filepath.Join(tempDir, filepath.Base(existing))
	if _, err := g.run(ctx, generated); err != nil {
		return err
	}

	result, err := typegen.CompareFiles(generated, existing)
	if err != nil {
		return errors.Wrap(err, "failed to compare artifacts")
	}

	if result.UpToDate {
		pterm.Success.Printfln("%s is up to date", existing)
		return nil
	}

	pterm.Error.Printfln("%s is out of date", existing)
	for _, diff := range result.Differences {
		pterm.Printf("  - %s\n", diff)
	}

	return errors.WithHintf(ErrOutOfDate, "run 'rpctypegen %s %s' to regenerate", o.cfg.InputDir, existing)
}

