package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/rpctypegen/am"
	"github.com/teranos/rpctypegen/errors"
)

func newConfigCmd(o *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect rpctypegen configuration",
		Long: `Display the effective rpctypegen configuration and where it comes from.

Examples:
  rpctypegen config show                 # Effective configuration as TOML
  rpctypegen config show --format json   # ... as JSON
  rpctypegen config get lang             # One value
  rpctypegen config where                # Source of every value
  rpctypegen config validate             # Validate the configuration`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := marshalConfig(o.cfg, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	showCmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., lang, cargo.enabled)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.viper.IsSet(args[0]) {
				return errors.WithHint(errors.Newf("unknown config key %q", args[0]),
					"run 'rpctypegen config where' to list keys")
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.viper.Get(args[0]))
			return nil
		},
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration files that were checked, whether they exist, and
which source set each effective value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := pterm.TableData{{"Source", "Path", "Status"}}
			for _, f := range []struct {
				source am.ConfigSource
				path   string
			}{
				{am.SourceUser, am.UserConfigPath()},
				{am.SourceProject, projectConfigPath(o)},
			} {
				files = append(files, []string{string(f.source), f.path, fileStatus(f.path)})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(files).Render(); err != nil {
				return err
			}

			settings := pterm.TableData{{"Key", "Value", "Source", "From"}}
			for _, s := range am.Introspect(o.viper, changedFlags(cmd)) {
				settings = append(settings, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(settings).Render()
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			pterm.Success.Println("Configuration is valid")
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, whereCmd, validateCmd)
	return configCmd
}

// marshalConfig renders cfg in one of the supported formats
func marshalConfig(cfg *am.Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# rpctypegen configuration\n"), data...), nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# rpctypegen configuration\n"), data...), nil
	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}

func projectConfigPath(o *options) string {
	if o.configPath != "" {
		return o.configPath
	}
	if path := am.FindProjectConfig(); path != "" {
		return path
	}
	return am.ProjectConfigName
}

func fileStatus(path string) string {
	if path == "" {
		return "unavailable"
	}
	if _, err := os.Stat(path); err != nil {
		return "missing"
	}
	return "found"
}
