// Package am loads rpctypegen configuration from defaults, rpctypegen.toml
// files and RPCTYPEGEN_* environment variables.
package am

// Config represents the rpctypegen configuration
type Config struct {
	// Annotation directory or go-getter source
	InputDir string `mapstructure:"input_dir" toml:"input_dir" json:"input_dir" yaml:"input_dir"`
	// Artifact path (empty = derived, see OutputRoot)
	OutputPath string `mapstructure:"output_path" toml:"output_path,omitempty" json:"output_path,omitempty" yaml:"output_path,omitempty"`
	// Root of derived artifact paths
	OutputRoot string `mapstructure:"output_root" toml:"output_root" json:"output_root" yaml:"output_root"`
	// quizface output, one directory per daemon version
	QuizfaceOutputDir string `mapstructure:"quizface_output_dir" toml:"quizface_output_dir" json:"quizface_output_dir" yaml:"quizface_output_dir"`
	// rust, go or python
	Lang string `mapstructure:"lang" toml:"lang" json:"lang" yaml:"lang"`
	// Command line, "goimports" or "none" (empty = language default)
	Formatter string `mapstructure:"formatter" toml:"formatter,omitempty" json:"formatter,omitempty" yaml:"formatter,omitempty"`
	// Package clause of Go artifacts
	GoPackage string `mapstructure:"go_package" toml:"go_package" json:"go_package" yaml:"go_package"`

	Cargo CargoConfig `mapstructure:"cargo" toml:"cargo" json:"cargo" yaml:"cargo"`
	Log   LogConfig   `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Watch WatchConfig `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
}

// CargoConfig configures the Cargo.toml written next to Rust artifacts
type CargoConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	// Used only when no Cargo.toml exists yet
	PackageName string `mapstructure:"package_name" toml:"package_name" json:"package_name" yaml:"package_name"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"` // Structured JSON logs instead of console output
}

// WatchConfig configures the watch command
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // Quiet period before regenerating (default: 500)
}

// Target languages
const (
	LangRust   = "rust"
	LangGo     = "go"
	LangPython = "python"
)

// SupportedLanguages lists the accepted values of lang
var SupportedLanguages = []string{LangRust, LangGo, LangPython}

// File names
const (
	ProjectConfigName = "rpctypegen.toml"
	EnvPrefix         = "RPCTYPEGEN"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
