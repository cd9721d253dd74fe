// Package format runs a source formatter over the generated artifact after
// every append.
package format

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/tools/imports"

	"github.com/teranos/rpctypegen/errors"
)

// Formatter rewrites a file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
	// Name identifies the formatter in logs
	Name() string
}

// CommandFormatter runs an external program with the artifact path as its
// last argument (e.g. rustfmt). A non-zero exit is an error.
type CommandFormatter struct {
	argv []string
}

// NewCommandFormatter parses a shell-style command line such as
// "rustfmt --edition 2021".
func NewCommandFormatter(command string) (*CommandFormatter, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid formatter command %q", command)
	}
	if len(argv) == 0 {
		return nil, errors.New("formatter command is empty")
	}
	return &CommandFormatter{argv: argv}, nil
}

// Name returns the program name
func (f *CommandFormatter) Name() string {
	return f.argv[0]
}

// Format runs the command on path
func (f *CommandFormatter) Format(ctx context.Context, path string) error {
	args := append(append([]string{}, f.argv[1:]...), path)
	cmd := exec.CommandContext(ctx, f.argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		err = errors.Mark(errors.Wrapf(err, "%s %s", f.Name(), path), errors.ErrFormatterFailed)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.WithDetail(err, msg)
		}
		return errors.WithHintf(err, "is %s installed and on PATH? set formatter in rpctypegen.toml to override", f.Name())
	}
	return nil
}

// ImportsFormatter formats Go source in process, adding missing imports
// the way goimports does.
type ImportsFormatter struct{}

// Name returns "goimports"
func (ImportsFormatter) Name() string {
	return "goimports"
}

// Format rewrites path with gofmt style and completed imports
func (ImportsFormatter) Format(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.NewFilesystemError(err, path)
	}

	out, err := imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	})
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "goimports %s", path), errors.ErrFormatterFailed)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.NewFilesystemError(err, path)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return errors.NewFilesystemError(err, path)
	}
	return nil
}

// Nop leaves files untouched.
type Nop struct{}

// Name returns "none"
func (Nop) Name() string { return "none" }

// Format does nothing
func (Nop) Format(context.Context, string) error { return nil }

// Builtin names the in-process Go formatter in configuration.
const Builtin = "goimports"

// New returns the formatter for a configured command. Builtin selects
// ImportsFormatter; "none" or "" disables formatting.
func New(command string) (Formatter, error) {
	switch strings.TrimSpace(command) {
	case "", "none":
		return Nop{}, nil
	case Builtin:
		return ImportsFormatter{}, nil
	default:
		return NewCommandFormatter(command)
	}
}
