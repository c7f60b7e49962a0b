package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redhour/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

Secrets (API key, SMTP password) are masked. Values may come from the config file,
a .env file or the environment.`,
	Example: `
  # Show active configuration
  redhour config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file in use (environment and defaults only)")
		}
		printConfig(out, cfg)
		return nil
	},
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "%s: %s\n", config.KeyRedmineURL, cfg.Redmine.URL)
	fmt.Fprintf(out, "%s: %s\n", config.KeyRedmineAPIKey, maskSecret(cfg.Redmine.APIKey))
	fmt.Fprintf(out, "%s: %s\n", config.KeyMailFrom, cfg.Mail.From)
	fmt.Fprintf(out, "%s: %s\n", config.KeyMailFromName, cfg.Mail.FromName)
	fmt.Fprintf(out, "%s: %s\n", config.KeyMailTo, cfg.Mail.To)
	fmt.Fprintf(out, "%s: %s\n", config.KeyMailCc, cfg.Mail.Cc)
	fmt.Fprintf(out, "%s: %s\n", config.KeySMTPServer, cfg.SMTP.Server)
	fmt.Fprintf(out, "%s: %d\n", config.KeySMTPPort, cfg.SMTP.Port)
	fmt.Fprintf(out, "%s: %s\n", config.KeySMTPPassword, maskSecret(cfg.SMTP.Password))
	fmt.Fprintf(out, "%s: %s\n", config.KeyPathsCSVDirName, cfg.Paths.CSVDirName)
	fmt.Fprintf(out, "%s: %s\n", config.KeyPathsPeriodFile, valueOr(cfg.Paths.PeriodFile, "(derived from the sheet path)"))
	fmt.Fprintf(out, "%s: %s\n", config.KeyPathsMailDir, cfg.Paths.MailDir)
	fmt.Fprintf(out, "%s: %s\n", config.KeyPathsSignatureImage, cfg.Paths.SignatureImage)
	fmt.Fprintf(out, "%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
}

func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
