package cmd

import (
	"fmt"
	"io"
	"os"

	"toggljournal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var (
	configPromptInput  io.Reader = os.Stdin
	configPromptOutput io.Writer = os.Stdout
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by toggljournal.

The command asks for confirmation by typing exactly "Y" unless --yes is set.
If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  toggljournal config delete

  # Delete config at a custom path without prompting
  toggljournal --configFile ./custom-toggljournal.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		deleted, hadToken, err := deleteConfigFile(configPath, configDeleteYes, configPromptInput, configPromptOutput)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		if hadToken {
			fmt.Printf("The Toggl API token stored in it is gone; pass --token or set %s_TOGGL_API_TOKEN.\n", envPrefix)
		}
		return nil
	},
}

// deleteConfigFile removes path after confirmation. hadToken reports whether
// the removed file stored a Toggl API token.
func deleteConfigFile(path string, assumeYes bool, input io.Reader, output io.Writer) (deleted, hadToken bool, err error) {
	if !assumeYes {
		confirmed, err := confirmDeletePrompt(input, output, fmt.Sprintf("Delete configuration file %q?", path))
		if err != nil {
			return false, false, err
		}
		if !confirmed {
			return false, false, nil
		}
	}

	if content, err := os.ReadFile(path); err == nil {
		if cfg, err := config.ValidateYAMLContent(content); err == nil {
			hadToken = cfg.Toggl.APIToken != ""
		}
	}

	if err := os.Remove(path); err != nil {
		return false, false, fmt.Errorf("error deleting configuration file: %w", err)
	}
	return true, hadToken, nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Delete without confirmation prompt")
}
