// Package cmd implements the rpctypegen command line.
package cmd

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/am"
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/logger"
	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/driver"
	"github.com/teranos/rpctypegen/typegen/format"
	"github.com/teranos/rpctypegen/typegen/golang"
	"github.com/teranos/rpctypegen/typegen/python"
	"github.com/teranos/rpctypegen/typegen/rust"
	"github.com/teranos/rpctypegen/typegen/source"
	"github.com/teranos/rpctypegen/version"
)

// flagKeys maps persistent flags to the config keys they override
var flagKeys = map[string]string{
	"lang":       "lang",
	"formatter":  "formatter",
	"go-package": "go_package",
	"json-log":   "log.json",
	"cargo":      "cargo.enabled",
}

// options is the state shared by every command of one invocation
type options struct {
	configPath string
	cfg        *am.Config
	viper      *viper.Viper
}

// NewRootCmd builds the command tree. The root command generates.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "rpctypegen [input_dir] [output_path]",
		Short: "Generate typed RPC response declarations from quizface annotations",
		Long: `Generate typed response declarations from quizface annotation files.

Every *.json (or *.yaml) annotation file in the input directory becomes one
module named after the RPC method. All modules are appended to one artifact,
which is formatted after each append.

Defaults:
  input_dir    ./example_dir
  output_path  ./output/<latest quizface output dir>_<version>/rpc_response_types.<ext>

Configuration sources (in order of precedence):
  1. Command line flags and arguments
  2. Environment variables (RPCTYPEGEN_* prefix)
  3. --config file, or rpctypegen.toml found upward from the working directory
  4. User config (~/.config/rpctypegen/rpctypegen.toml)
  5. Default values

Examples:
  rpctypegen                                   # Rust types from ./example_dir
  rpctypegen annotations/ src/types.rs         # Explicit input and output
  rpctypegen --lang go annotations/ types.go   # Go types
  rpctypegen git::https://github.com/zcash/quizface//output/v4.1.1 types.rs
  rpctypegen check annotations/ src/types.rs   # Verify a checked-in artifact
  rpctypegen watch annotations/ src/types.rs   # Regenerate on change`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runGenerate(cmd, args)
		},
	}

	flags := root.PersistentFlags()
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	flags.StringVarP(&o.configPath, "config", "c", "", "Config file (default: rpctypegen.toml found upward from the working directory)")
	flags.StringP("lang", "l", am.LangRust, "Target language: rust, go, python")
	flags.String("formatter", "", `Formatter command, "goimports" or "none" (default: rustfmt, goimports or black by language)`)
	flags.String("go-package", am.DefaultGoPackage, "Package clause of Go artifacts")
	flags.Bool("json-log", false, "Structured JSON logs")
	flags.Bool("cargo", false, "Write a Cargo.toml next to Rust artifacts")

	root.AddCommand(newCheckCmd(o))
	root.AddCommand(newWatchCmd(o))
	root.AddCommand(newInitCmd(o))
	root.AddCommand(newConfigCmd(o))
	root.AddCommand(newVersionCmd())

	return root
}

// setup loads configuration with flags bound on top and initializes logging
func (o *options) setup(cmd *cobra.Command) error {
	v := am.GetViper()
	if o.configPath != "" {
		if err := am.MergeConfigFile(v, o.configPath, am.SourceProject); err != nil {
			return err
		}
	}

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", flag)
		}
	}

	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Config loaded", "config", cfg.String(), "verbosity", logger.LevelName(verbosity))

	o.cfg = cfg
	o.viper = v
	return nil
}

// changedFlags returns the config keys overridden on the command line,
// keyed to the flag that set them
func changedFlags(cmd *cobra.Command) map[string]string {
	changed := make(map[string]string)
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			changed[key] = flag
		}
	}
	return changed
}

// applyArgs lets positional arguments override input_dir and output_path,
// then validates the result
func (o *options) applyArgs(args []string) error {
	if len(args) > 0 {
		o.cfg.InputDir = args[0]
	}
	if len(args) > 1 {
		o.cfg.OutputPath = args[1]
	}
	return o.cfg.Validate()
}

// generatorFor returns the back-end for the configured language
func generatorFor(cfg *am.Config) (typegen.Generator, error) {
	switch cfg.Lang {
	case am.LangRust:
		return rust.NewGenerator(), nil
	case am.LangGo:
		return golang.NewGenerator(cfg.GoPackage), nil
	case am.LangPython:
		return python.NewGenerator(), nil
	default:
		return nil, errors.Newf("unsupported lang %q", cfg.Lang)
	}
}

// outputPath returns the configured artifact path, or derives it from the
// latest quizface output directory
func (o *options) outputPath(gen typegen.Generator) (string, error) {
	if o.cfg.OutputPath != "" {
		return o.cfg.OutputPath, nil
	}
	path, err := source.DefaultOutputPath(o.cfg.OutputRoot, o.cfg.QuizfaceOutputDir, version.Version, gen.FileExtension())
	if err != nil {
		return "", errors.WithHint(err, "pass an output path or set output_path in rpctypegen.toml")
	}
	return path, nil
}

// generation is one resolved generation request
type generation struct {
	gen       typegen.Generator
	formatter format.Formatter
	input     *source.Dir
	log       *zap.SugaredLogger
}

// prepare resolves the back-end, formatter and input directory, and tags the
// context with a fresh run id. The caller must Cleanup the returned input.
func (o *options) prepare(ctx context.Context, component string) (context.Context, *generation, error) {
	gen, err := generatorFor(o.cfg)
	if err != nil {
		return ctx, nil, err
	}
	formatter, err := format.New(o.cfg.GetFormatter())
	if err != nil {
		return ctx, nil, err
	}

	ctx = logger.WithComponent(logger.WithRunID(ctx, uuid.NewString()), component)
	log := logger.LoggerFromContext(ctx)

	input, err := source.Resolve(ctx, o.cfg.InputDir, log)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, &generation{gen: gen, formatter: formatter, input: input, log: log}, nil
}

// run generates into outputPath
func (g *generation) run(ctx context.Context, outputPath string) (*driver.Report, error) {
	return driver.New(g.gen, g.formatter, g.log).Run(ctx, g.input.LocalPath, outputPath)
}

func (o *options) runGenerate(cmd *cobra.Command, args []string) error {
	if err := o.applyArgs(args); err != nil {
		return err
	}

	ctx, g, err := o.prepare(cmd.Context(), "generate")
	if err != nil {
		return err
	}
	defer g.input.Cleanup()

	output, err := o.outputPath(g.gen)
	if err != nil {
		return err
	}

	report, err := g.run(ctx, output)
	if err != nil {
		return err
	}
	printReport(report)

	return o.writeCargo(output)
}

// writeCargo scaffolds Cargo.toml next to Rust artifacts when enabled
func (o *options) writeCargo(output string) error {
	if !o.cfg.Cargo.Enabled || o.cfg.Lang != am.LangRust {
		return nil
	}
	manifest, err := rust.WriteCargoManifest(output, o.cfg.Cargo.PackageName, version.Version)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Updated %s", manifest)
	return nil
}

func printReport(report *driver.Report) {
	pterm.Success.Printfln("Wrote %d modules to %s (%s)",
		len(report.Modules), report.Output, report.Duration.Round(time.Millisecond))
	for _, file := range report.Skipped {
		pterm.Warning.Printfln("Skipped %s: insufficient annotation", file)
	}
}
