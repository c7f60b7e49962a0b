package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redhour/internal/console"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by redhour.

Values coming from .env or the environment are not affected. Fails when no
configuration file is in use.`,
	Example: `
  # Delete active config
  redhour config delete

  # Delete config at a custom path
  redhour --configFile ./custom-redhour.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return errors.New("no configuration file in use")
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("delete configuration file %s: %w", configPath, err)
		}

		console.New(cmd.OutOrStdout()).Success("Configuration file deleted: %s", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
