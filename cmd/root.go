/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redhour/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "redhour",
	Short: "Upload monthly time sheets to Redmine and mail the hour distribution report.",
	Long: `
**********************************************
*                 REDHOUR                    *
**********************************************

This CLI reads a monthly time sheet (ODS, Excel or CSV), expands bare day numbers with the
month from the period marker file, uploads the rows marked "Subir?" = SI as Redmine time
entries, and sends the monthly hours/project distribution mail with a Markdown archive copy.

Supported input formats:
- OpenDocument: .ods
- Excel: .xlsx, .xlsm, .xltx
- CSV: .csv

Settings come from the config file, a .env file in the working directory, or the environment
(REDMINE_URL, API_KEY, DE, DE_NAME, PARA, CC, SMTP_SERVER, SMTP_PORT, SMTP_PASS, CSV_DIR_NAME).
`,
	Example: `
  # Create configuration file
  redhour config create

  # Export the normalized sheet as CSV next to the monthly folders
  redhour load "Horas/2024/Mayo.ods" --create-csv

  # Preview which rows would be uploaded
  redhour load "Horas/2024/Mayo.ods" --dry-run

  # Upload approved rows to Redmine
  redhour load "Horas/2024/Mayo.ods"

  # Send the monthly report mail and archive it
  redhour report "Horas/2024/CSV Files for Script/Mayo.csv"
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.redhour.yaml, then ./.redhour.yaml)")
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring unreadable .env file:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".redhour" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".redhour")
	}

	cobra.CheckErr(config.BindEnv())

	// A config file is optional: the environment alone is enough.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Could not read config file:", err)
	}
}
