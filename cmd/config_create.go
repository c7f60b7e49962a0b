package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redhour/internal/console"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Write the example template (the same one "config edit" starts from) to the active
config path. An existing file is never overwritten.`,
	Example: `
  # Create default config at $HOME/.redhour.yaml
  redhour config create

  # Create a project local config
  redhour --configFile ./.redhour.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd.OutOrStdout())
	},
}

func saveDefaultConfig(out io.Writer) error {
	printer := console.New(out)

	configPath, err := configTargetPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := writeTemplateIfMissing(configPath)
	if err != nil {
		return err
	}
	if !created {
		printer.Info("Config file already exists at: %s", configPath)
		return nil
	}

	printer.Success("New config file created at: %s", configPath)
	printer.Plain("Fill in redmine.api_key and the mail/smtp values, or provide them through .env.")
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
