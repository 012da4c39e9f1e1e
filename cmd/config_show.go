package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"toggljournal/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The API token
is masked.`,
	Example: `
  # Show active configuration
  toggljournal config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults and environment values.")
		}
		fmt.Println("Configuration:")
		printConfig(os.Stdout, *cfg)
	},
}

func printConfig(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "%s: %s\n", config.KeyTogglBaseURL, cfg.Toggl.BaseURL)
	fmt.Fprintf(w, "%s: %s\n", config.KeyTogglAPIToken, maskToken(cfg.Toggl.APIToken))
	fmt.Fprintf(w, "%s: %d\n", config.KeyTogglPageSize, cfg.Toggl.PageSize)
	fmt.Fprintf(w, "%s: %s\n", config.KeyTogglTimezone, cfg.Toggl.Timezone)
	fmt.Fprintf(w, "%s: %s\n", config.KeyJournalAuthor, cfg.Journal.Author)
	fmt.Fprintf(w, "%s: %s\n", config.KeyJournalPersonal, cfg.Journal.PersonalJournal)
	fmt.Fprintf(w, "%s: %s\n", config.KeyNotationDelimiter, cfg.Notation.Delimiter)
	fmt.Fprintf(w, "%s: %s\n", config.KeyOutputDir, cfg.Output.Dir)
	fmt.Fprintf(w, "%s: %s\n", config.KeyOutputFormats, strings.Join(cfg.Output.Formats, ","))
	fmt.Fprintf(w, "%s: %t\n", config.KeyPDFEnabled, cfg.PDF.Enabled)
	fmt.Fprintf(w, "%s: %s\n", config.KeyPDFPageSize, cfg.PDF.PageSize)
	fmt.Fprintf(w, "pdf.margins: %.2f %.2f %.2f %.2f\n", cfg.PDF.MarginTop, cfg.PDF.MarginRight, cfg.PDF.MarginBottom, cfg.PDF.MarginLeft)
	fmt.Fprintf(w, "%s: %s\n", config.KeyPDFBrowserBin, cfg.PDF.BrowserBin)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStyleFontFamily, cfg.Style.FontFamily)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStyleHighlight, cfg.Style.HighlightColor)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStyleProjectColor, cfg.Style.ProjectColor)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStylePersonalColor, cfg.Style.PersonalColor)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStyleNoteList, cfg.Style.NoteListStyle)
	fmt.Fprintf(w, "%s: %s\n", config.KeyStyleTextAlign, cfg.Style.ProjectTextAlign)
}

func maskToken(token string) string {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return "(not set)"
	case len(token) <= 4:
		return "****"
	default:
		return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
	}
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
