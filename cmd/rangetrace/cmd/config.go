package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mogiioin/hls-ranges/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing rangetrace configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the effective configuration",
	Long: `Dump the configuration in YAML format, after defaults, config file
and environment variables have been applied.

You can redirect this output to a file to create a configuration template:

  rangetrace config dump > rangetrace.yaml

Environment variables use the RANGETRACE_ prefix and underscores for nesting.
Example: replay.strict -> RANGETRACE_REPLAY_STRICT`,
	RunE: runConfigDump,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Unmarshal(viper.GetViper())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# rangetrace configuration file")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Environment variable overrides:")
	fmt.Fprintln(out, "#   RANGETRACE_LOGGING_LEVEL, RANGETRACE_LOGGING_FORMAT")
	fmt.Fprintln(out, "#   RANGETRACE_REPLAY_STRICT, RANGETRACE_REPLAY_OUTPUT")
	fmt.Fprintln(out)
	_, err = out.Write(yamlData)
	return err
}
