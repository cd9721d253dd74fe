package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/rpctypegen/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// ConfigSources records which file set each key, filled while loading.
// Keys absent here come from defaults or the environment.
var ConfigSources = map[string]SourceInfo{}

// Load reads the rpctypegen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access.
// Command-line flags are bound onto it.
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// RPCTYPEGEN_LANG, RPCTYPEGEN_CARGO_ENABLED, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Merge configs in precedence order: user -> project -> env vars
	mergeConfigFiles(v, configPaths())

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.config/rpctypegen/rpctypegen.toml (or the
// platform equivalent), empty if the directory cannot be determined.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpctypegen", ProjectConfigName)
}

// FindProjectConfig searches for rpctypegen.toml by walking up from the
// working directory. Returns the first path found, or empty string.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

// configSource pairs a config file with the source class it represents
type configSource struct {
	path   string
	source ConfigSource
}

func configPaths() []configSource {
	var paths []configSource
	if user := UserConfigPath(); user != "" {
		paths = append(paths, configSource{path: user, source: SourceUser})
	}
	if project := FindProjectConfig(); project != "" {
		paths = append(paths, configSource{path: project, source: SourceProject})
	}
	return paths
}

// mergeConfigFiles merges configuration files in the given precedence order
// (lowest first). Missing or unreadable files are skipped.
func mergeConfigFiles(v *viper.Viper, files []configSource) {
	for _, file := range files {
		if _, err := os.Stat(file.path); err != nil {
			continue
		}
		_ = MergeConfigFile(v, file.path, file.source)
	}
}

// MergeConfigFile merges one TOML file into v as config, so environment
// variables and bound flags still take precedence over it. Every key it sets
// is recorded in ConfigSources.
func MergeConfigFile(v *viper.Viper, path string, source ConfigSource) error {
	tempViper := viper.New()
	tempViper.SetConfigFile(path)
	tempViper.SetConfigType("toml")
	if err := tempViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	settings := tempViper.AllSettings()
	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	trackSources(settings, "", SourceInfo{Source: source, Path: path})
	return nil
}

func trackSources(settings map[string]interface{}, prefix string, info SourceInfo) {
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			trackSources(nested, fullKey, info)
			continue
		}
		ConfigSources[fullKey] = info
	}
}
