package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// Command line defaults: annotations in ./example_dir,
// artifacts under ./output, quizface checked out next to this repository.
const (
	DefaultInputDir          = "./example_dir"
	DefaultOutputRoot        = "./output"
	DefaultQuizfaceOutputDir = "../../quizface/output"
	DefaultGoPackage         = "rpcresponse"
	DefaultCargoPackage      = "zcashrpc-response-types"
	DefaultWatchDebounceMS   = 500
)

// defaultFormatters maps a language to its formatter when none is configured
var defaultFormatters = map[string]string{
	LangRust:   "rustfmt",
	LangGo:     "goimports",
	LangPython: "black --quiet",
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", DefaultInputDir)
	v.SetDefault("output_path", "")
	v.SetDefault("output_root", DefaultOutputRoot)
	v.SetDefault("quizface_output_dir", DefaultQuizfaceOutputDir)
	v.SetDefault("lang", LangRust)
	v.SetDefault("formatter", "")
	v.SetDefault("go_package", DefaultGoPackage)

	v.SetDefault("cargo.enabled", false)
	v.SetDefault("cargo.package_name", DefaultCargoPackage)

	v.SetDefault("log.json", false)

	v.SetDefault("watch.debounce_ms", DefaultWatchDebounceMS)
}

// GetFormatter returns the configured formatter, or the language default
func (c *Config) GetFormatter() string {
	if c.Formatter != "" {
		return c.Formatter
	}
	return defaultFormatters[c.Lang]
}

// GetWatchDebounceMS returns the watch debounce period (default: 500)
func (c *Config) GetWatchDebounceMS() int {
	if c.Watch.DebounceMS <= 0 {
		return DefaultWatchDebounceMS
	}
	return c.Watch.DebounceMS
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Lang: %s, InputDir: %s, OutputPath: %s, Formatter: %s}",
		c.Lang, c.InputDir, c.OutputPath, c.GetFormatter())
}
