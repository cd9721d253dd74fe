package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rpctypegen/am"
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/logger"
	"github.com/teranos/rpctypegen/typegen/format"
	"github.com/teranos/rpctypegen/typegen/watch"
)

func newWatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [input_dir] [output_path]",
		Short: "Regenerate whenever annotations or the config change",
		Long: `Generate once, then regenerate whenever an annotation file in the input
directory or the project config file changes. Bursts of changes are
coalesced (watch.debounce_ms, default 500). Stop with Ctrl-C.

A failed generation is reported and watching continues.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.runWatch(ctx, cmd, args)
		},
	}
}

func (o *options) runWatch(ctx context.Context, cmd *cobra.Command, args []string) error {
	if err := o.applyArgs(args); err != nil {
		return err
	}

	runCtx, g, err := o.prepare(ctx, "watch")
	if err != nil {
		return err
	}
	defer g.input.Cleanup()
	if g.input.IsFetched {
		return errors.WithHint(errors.Newf("cannot watch remote input %s", o.cfg.InputDir),
			"watch needs a local annotation directory")
	}

	output, err := o.outputPath(g.gen)
	if err != nil {
		return err
	}

	w, err := watch.New(time.Duration(o.cfg.GetWatchDebounceMS())*time.Millisecond, g.log)
	if err != nil {
		return err
	}
	if err := w.AddDir(g.input.LocalPath); err != nil {
		return err
	}
	configFile := o.configPath
	if configFile == "" {
		configFile = am.FindProjectConfig()
	}
	if configFile != "" {
		configFile = filepath.Clean(configFile)
		if err := w.AddFile(configFile); err != nil {
			return err
		}
	}

	o.regenerate(runCtx, g, output)
	pterm.Info.Printfln("Watching %s (Ctrl-C to stop)", g.input.LocalPath)

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		for _, path := range changed {
			if path == configFile {
				g = o.reloadConfig(cmd, g)
				break
			}
		}
		o.regenerate(ctx, g, output)
	})
}

// regenerate runs one generation and reports failures without stopping
func (o *options) regenerate(ctx context.Context, g *generation, output string) {
	report, err := g.run(ctx, output)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		pterm.Error.Printfln("%v", err)
		for _, hint := range errors.GetAllHints(err) {
			pterm.Printf("  hint: %s\n", hint)
		}
		return
	}
	printReport(report)
	if err := o.writeCargo(output); err != nil {
		pterm.Error.Printfln("%v", err)
	}
}

// reloadConfig re-reads the configuration after the config file changed and
// rebuilds the back-end and formatter from it. Input, output and language
// stay those of the first generation. On failure g is returned unchanged.
func (o *options) reloadConfig(cmd *cobra.Command, g *generation) *generation {
	previous := o.cfg
	am.Reset()
	if err := o.setup(cmd); err != nil {
		logger.Warnw("Config reload failed, keeping previous config", logger.FieldError, err)
		o.cfg = previous
		return g
	}
	o.cfg.InputDir = previous.InputDir
	o.cfg.OutputPath = previous.OutputPath
	o.cfg.Lang = previous.Lang

	gen, err := generatorFor(o.cfg)
	if err == nil {
		var f format.Formatter
		if f, err = format.New(o.cfg.GetFormatter()); err == nil {
			logger.Infow("Config reloaded", logger.FieldFormatter, f.Name())
			return &generation{gen: gen, formatter: f, input: g.input, log: g.log}
		}
	}
	logger.Warnw("Config reload failed, keeping previous config", logger.FieldError, err)
	o.cfg = previous
	return g
}
