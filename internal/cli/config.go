package cli

import (
	"fmt"
	"strings"

	"github.com/apper-canvas/taskflow/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the effective settings or change one in the config file.

Examples:
  taskflow config show
  taskflow config set default_priority high
  taskflow config set backend api`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings (file, environment and flags)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting in the config file",
	Long: `Change one setting in the config file.

Keys: ` + strings.Join(config.Keys(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	if shown.APIKey != "" {
		shown.APIKey = "********"
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if _, err := config.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	path, _ := config.Path()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s in %s\n", args[0], args[1], path)
	return nil
}
