package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/easyface/easyface/internal/config"
	"github.com/easyface/easyface/internal/ui"
	"github.com/easyface/easyface/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() ([]byte, error)
}

var cfgLoader = configLoader{defaultConfig: loadDefaultConfigYAML}

func loadAppConfig(cfgPath string) (config.File, error) {
	return cfgLoader.load(cfgPath)
}

func loadDefaultConfigYAML() ([]byte, error) {
	data := ui.DefaultConfigYAML()
	if len(data) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return data, nil
}

// load merges the file at cfgPath over the embedded defaults.
func (l configLoader) load(cfgPath string) (config.File, error) {
	defaults, err := l.defaultConfig()
	if err != nil {
		return config.File{}, fmt.Errorf("load default config: %w", err)
	}
	cfg, err := config.Load(defaults, cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

var configDefaults bool

// configCmd groups configuration-related subcommands similar to gh-style CLIs.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect easyface configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configDefaults {
			data, err := cfgLoader.defaultConfig()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		p, _ := settings.PathsFromContext(rootCtx)
		cfg, err := loadAppConfig(p.Config)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the files this run reads and writes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, ok := settings.PathsFromContext(rootCtx)
		if !ok {
			return fmt.Errorf("runtime settings missing from context")
		}
		w := cmd.OutOrStdout()
		for _, row := range [][2]string{
			{"settings", p.Settings},
			{"shortcuts", p.Shortcuts},
			{"config", p.Config},
			{"log", p.Log},
			{"downloads", p.Downloads},
		} {
			v := row[1]
			if v == "" {
				v = "-"
			}
			fmt.Fprintf(w, "%-10s %s\n", row[0], v)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits
	configShowCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the built-in defaults verbatim")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathsCmd)
}
