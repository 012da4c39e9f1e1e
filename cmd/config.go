package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage toggljournal configuration file values.",
	Long: `Create, edit, display, and delete the toggljournal configuration file.

The configuration stores application-wide values:
- toggl.base_url / toggl.api_token / toggl.page_size / toggl.timezone
- journal.author / journal.personal_journal
- notation.delimiter
- output.dir / output.formats
- pdf.enabled / pdf.page_size / pdf.margin_* / pdf.browser_bin
- style.* (colors, fonts, list style of the rendered journal)

Every key can be overridden by an environment variable, e.g.
TOGGLJOURNAL_TOGGL_API_TOKEN for toggl.api_token.`,
	Example: `
  # Create default config in $HOME/.toggljournal.yaml
  toggljournal config create

  # Show active config and source file
  toggljournal config show

  # Open active config in editor (creates example if missing)
  toggljournal config edit

  # Delete active config file
  toggljournal config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
