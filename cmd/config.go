package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage redhour configuration file values.",
	Long: `Create, edit, display, and delete the redhour configuration file.

The configuration stores the Redmine connection, the mail and SMTP settings and path overrides:
- redmine.url / redmine.api_key
- mail.from / mail.from_name / mail.to / mail.cc
- smtp.server / smtp.port / smtp.password
- paths.csv_dir_name / paths.period_file / paths.mail_dir / paths.signature_image
- log.level

Every value can also be set through the environment or a .env file.`,
	Example: `
  # Create default config in $HOME/.redhour.yaml
  redhour config create

  # Show active config and source file
  redhour config show

  # Open active config in editor (creates example if missing)
  redhour config edit

  # Delete active config file
  redhour config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
