// Package driver runs a generation: every annotation file of a directory is
// compiled, emitted and appended to one artifact, which is formatted after
// each append.
package driver

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/logger"
	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/compiler"
	"github.com/teranos/rpctypegen/typegen/format"
	"github.com/teranos/rpctypegen/typegen/schema"
	"github.com/teranos/rpctypegen/typegen/source"
)

// Runner generates one artifact from one annotation directory.
type Runner struct {
	Generator typegen.Generator
	Formatter format.Formatter
	Logger    *zap.SugaredLogger
}

// Report summarizes a finished run.
type Report struct {
	Output string
	// Modules lists the module names appended, in file order
	Modules []string
	// Skipped lists annotation files that contributed nothing because some
	// node had insufficient annotation
	Skipped  []string
	Duration time.Duration
}

// New creates a Runner. A nil formatter disables formatting.
func New(gen typegen.Generator, f format.Formatter, log *zap.SugaredLogger) *Runner {
	if f == nil {
		f = format.Nop{}
	}
	if log == nil {
		log = logger.Logger
	}
	return &Runner{Generator: gen, Formatter: f, Logger: log}
}

// Run processes inputDir into outputPath. Files are handled one at a time in
// path order. The first fatal condition stops the run and is returned; the
// artifact then holds every module appended before it.
func (r *Runner) Run(ctx context.Context, inputDir, outputPath string) (*Report, error) {
	start := time.Now()
	log := r.Logger.With(
		logger.FieldInput, inputDir,
		logger.FieldOutput, outputPath,
		logger.FieldLanguage, r.Generator.Language(),
	)

	files, err := source.ListAnnotationFiles(inputDir, log)
	if err != nil {
		return nil, err
	}

	if err := r.startArtifact(outputPath); err != nil {
		return nil, err
	}

	report := &Report{Output: outputPath}
	comp := compiler.New(r.Generator.Keywords())

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "generation interrupted")
		}

		code, mod, err := r.processFile(comp, file)
		if errors.IsInsufficient(err) {
			log.Warnw("Skipping file with insufficient annotation",
				logger.FieldFile, file,
				logger.FieldError, err.Error(),
			)
			report.Skipped = append(report.Skipped, file)
			continue
		}
		if err != nil {
			return report, err
		}

		if err := appendArtifact(outputPath, code); err != nil {
			return report, err
		}
		if err := r.Formatter.Format(ctx, outputPath); err != nil {
			return report, errors.Wrapf(err, "formatting after %s", file)
		}

		log.Debugw("Appended module",
			logger.FieldFile, file,
			logger.FieldModule, mod.Name,
			logger.FieldDeclarations, len(mod.Declarations),
		)
		report.Modules = append(report.Modules, mod.Name)
	}

	report.Duration = time.Since(start)
	log.Infow("Generation complete",
		logger.FieldCount, len(report.Modules),
		logger.FieldSkipped, len(report.Skipped),
		logger.FieldDurationMS, report.Duration.Milliseconds(),
	)
	return report, nil
}

// processFile reads, decodes, compiles and emits one annotation file.
func (r *Runner) processFile(comp *compiler.Compiler, file string) (string, *typegen.Module, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", nil, errors.NewFilesystemError(err, file)
	}

	root, err := schema.Decode(file, data)
	if err != nil {
		return "", nil, errors.NewFilesystemError(err, file)
	}

	mod, err := comp.CompileFile(schema.MethodName(file), file, root)
	if err != nil {
		return "", nil, errors.Wrapf(err, "%s", file)
	}

	code, err := typegen.Emit(mod, r.Generator)
	if err != nil {
		return "", nil, err
	}
	return code, mod, nil
}

// startArtifact truncates outputPath and writes the disclaimer and preamble.
func (r *Runner) startArtifact(outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewFilesystemError(err, dir)
		}
	}

	header := typegen.Header(r.Generator)
	if err := os.WriteFile(outputPath, []byte(header), 0644); err != nil {
		return errors.NewFilesystemError(err, outputPath)
	}
	return nil
}

func appendArtifact(outputPath, code string) error {
	f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return errors.NewFilesystemError(err, outputPath)
	}
	defer f.Close()

	if _, err := f.WriteString(code); err != nil {
		return errors.NewFilesystemError(err, outputPath)
	}
	return nil
}
