package am

import (
	"go/token"

	"github.com/teranos/rpctypegen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	supported := false
	for _, lang := range SupportedLanguages {
		if c.Lang == lang {
			supported = true
			break
		}
	}
	if !supported {
		return errors.WithHintf(errors.Newf("unsupported lang %q", c.Lang),
			"supported languages: %v", SupportedLanguages)
	}

	if c.InputDir == "" {
		return errors.New("input_dir cannot be empty")
	}

	// Output path is optional, but then it is derived from these two
	if c.OutputPath == "" {
		if c.OutputRoot == "" {
			return errors.New("output_root cannot be empty when output_path is not set")
		}
		if c.QuizfaceOutputDir == "" {
			return errors.New("quizface_output_dir cannot be empty when output_path is not set")
		}
	}

	if c.Lang == LangGo && !token.IsIdentifier(c.GoPackage) {
		return errors.Newf("go_package must be a Go identifier, got %q", c.GoPackage)
	}

	if c.Cargo.Enabled && c.Cargo.PackageName == "" {
		return errors.New("cargo.package_name cannot be empty when cargo is enabled")
	}

	// Debounce: 0 = default, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
