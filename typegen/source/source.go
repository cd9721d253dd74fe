// Package source locates annotation files: a local directory or a remote
// go-getter source fetched into a temporary directory.
package source

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/rpctypegen/errors"
)

// Dir is a resolved annotation directory
type Dir struct {
	// LocalPath is the directory to read annotations from
	LocalPath string
	// OriginalInput is the input as given (URL or path)
	OriginalInput string
	// IsFetched indicates the annotations were downloaded
	IsFetched bool
	cleanup   func()
}

// Cleanup removes any temporary directory created for this source.
// Safe to call multiple times.
func (d *Dir) Cleanup() {
	if d.cleanup != nil {
		d.cleanup()
		d.cleanup = nil
	}
}

// Resolve turns input into a local directory. Supported inputs:
//   - Local paths: ./example_dir, /abs/path, ~/quizface/output/v4.1.1
//   - Git URLs: git::https://github.com/user/repo//output/v4.1.1
//   - Archives: https://example.com/annotations.tar.gz (auto-extracted)
//
// The returned Dir must be cleaned up when done.
func Resolve(ctx context.Context, input string, logger *zap.SugaredLogger) (*Dir, error) {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect source type of %s", input)
	}

	logger.Debugw("go-getter detected source",
		"input", input,
		"detected", detected,
	)

	parsed, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse detected source %s", detected)
	}

	if parsed.Scheme == "file" || parsed.Scheme == "" {
		return resolveLocal(input)
	}
	return fetch(ctx, input, detected, logger)
}

func resolveLocal(input string) (*Dir, error) {
	localPath := input
	if strings.HasPrefix(localPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to expand home directory")
		}
		localPath = filepath.Join(home, localPath[2:])
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, errors.NewFilesystemError(err, localPath)
	}
	if !info.IsDir() {
		return nil, errors.Mark(errors.Newf("%s is not a directory", localPath), errors.ErrFilesystem)
	}

	return &Dir{
		LocalPath:     localPath,
		OriginalInput: input,
		cleanup:       func() {},
	}, nil
}

func fetch(ctx context.Context, input, detected string, logger *zap.SugaredLogger) (*Dir, error) {
	tempDir, err := os.MkdirTemp("", "rpctypegen-annotations-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	// go-getter wants a destination that does not exist yet in dir mode
	dst := filepath.Join(tempDir, "src")

	logger.Infow("Fetching annotations",
		"input", input,
		"detected", detected,
		"destination", dst,
	)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Pwd:     tempDir,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to fetch %s", input),
			"remote inputs use go-getter syntax, e.g. git::https://host/repo//subdir?ref=tag")
	}

	return &Dir{
		LocalPath:     dst,
		OriginalInput: input,
		IsFetched:     true,
		cleanup: func() {
			logger.Debugw("Cleaning up fetched annotations", "path", tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}
