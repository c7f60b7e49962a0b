package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"redhour/config"
	"redhour/internal/console"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active redhour config file in your editor ($VISUAL, then $EDITOR, then vi).

A missing file is created from the example template first. When the editor exits the
file is validated, and the command reports whether "load" and "report" have every
setting they need.`,
	Example: `
  # Edit active config
  redhour config edit

  # Edit with a specific editor
  VISUAL="code --wait" redhour config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer := console.New(cmd.OutOrStdout())

		configPath, err := configTargetPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeTemplateIfMissing(configPath)
		if err != nil {
			return err
		}
		if created {
			printer.Info("No config file found. Created example config at: %s", configPath)
		}

		editor, err := editorCommand(os.Getenv, configPath)
		if err != nil {
			return err
		}
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read edited config: %w", err)
		}
		cfg, err := config.ValidateYAMLContent(content)
		if err != nil {
			return fmt.Errorf("invalid config in %s: %w", configPath, err)
		}

		printer.Success("Configuration saved and validated: %s", configPath)
		reportReadiness(printer, cfg)
		return nil
	},
}

// reportReadiness tells which commands can run with the file alone. Missing
// values may still come from the environment.
func reportReadiness(printer *console.Printer, cfg *config.Config) {
	if err := config.ValidateLoader(cfg); err != nil {
		printer.Warn("load needs more settings (or environment values): %v", err)
	}
	if err := config.ValidateReporter(cfg); err != nil {
		printer.Warn("report needs more settings (or environment values): %v", err)
	}
}

// configTargetPath picks the file "config create/edit" work on: the flag, the
// file viper loaded, then $HOME/.redhour.yaml.
func configTargetPath(flagValue, loaded string) (string, error) {
	for _, candidate := range []string{flagValue, loaded} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".redhour.yaml"), nil
}

// writeTemplateIfMissing creates path with the example config. It reports
// false when the file already exists.
func writeTemplateIfMissing(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(config.ExampleYAML()); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}
	return true, nil
}

// editorCommand builds the editor invocation from $VISUAL or $EDITOR (vi
// otherwise). Editor values may carry arguments, e.g. "code --wait".
func editorCommand(getenv func(string) string, configPath string) (*exec.Cmd, error) {
	value := "vi"
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			value = v
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, errors.New("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], configPath)...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
