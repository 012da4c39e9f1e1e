package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/journal"
	"toggljournal/output"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	journalToken       string
	journalSince       string
	journalUntil       string
	journalProject     string
	journalPersonal    string
	journalAuthor      string
	journalSource      string
	journalInputs      []string
	journalInputFormat string
	journalDBPath      string
	journalOffline     bool
	journalOutDir      string
	journalFormats     []string
	journalDelimiter   string
	journalDryRun      bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Generate a work journal from annotated Toggl time entries",
	Long: `Load time entries for a date range, keep the entries following the journal
notation, and render them grouped by project and day.

Projects without any annotated entry are skipped with a warning. If no project
qualifies, nothing is written and the command still succeeds.

The journal is written to <out>/<author> - <project> - <since> - <until>.<ext>.
--until accepts TODAY. --project accepts ALL or one project name.`,
	Example: `
  # All projects of March from the Toggl API
  toggljournal journal --token $TOKEN --since 2024-03-01 --until 2024-03-31 --project ALL

  # One project up to today as HTML and Excel into ./journals, without PDF
  toggljournal journal --since 2024-03-01 --until TODAY --project "Client X" --format html,xlsx --out ./journals

  # Fetch from the API and keep a local cache
  toggljournal journal --since 2024-03-01 --until TODAY --project ALL --db ./toggljournal.db

  # Rebuild offline from the cache
  toggljournal journal --offline --author "Jane Doe" --since 2024-03-01 --until 2024-03-31 --project ALL

  # Print the journal as text without writing files
  toggljournal journal --since 2024-03-01 --until TODAY --project ALL --dry-run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		run, err := resolveJournalRun(*cfg, cmd.Flags().Changed("format"))
		if err != nil {
			return err
		}

		source, closeSource, err := openSource(*cfg, run.source)
		if err != nil {
			return err
		}
		defer closeSource()

		gen, err := newGenerator(*cfg, source, journalDelimiter)
		if err != nil {
			return err
		}

		result, err := gen.Generate(cmd.Context(), run.request)
		if err != nil {
			return err
		}
		if result.Document == nil {
			color.New(color.FgYellow).Println("No project qualifies for the journal. Nothing to export.")
			return nil
		}

		if journalDryRun {
			fmt.Print(result.Document.Text())
			return nil
		}

		return exportJournal(cmd.Context(), *cfg, run, result)
	},
}

// journalRun is the validated input of one journal command.
type journalRun struct {
	request generator.Request
	source  sourceOptions
	outDir  string
	formats []string
}

// resolveJournalRun merges flags with config and validates everything that
// can be checked without I/O.
func resolveJournalRun(cfg config.Config, formatFlagSet bool) (journalRun, error) {
	var run journalRun

	if strings.TrimSpace(journalSince) == "" {
		return run, fmt.Errorf("--since is required (YYYY-MM-DD)")
	}
	if strings.TrimSpace(journalUntil) == "" {
		return run, fmt.Errorf("--until is required (YYYY-MM-DD or %s)", journal.TodaySentinel)
	}

	run.request = generator.Request{
		Since:           journalSince,
		Until:           journalUntil,
		Project:         journalProject,
		PersonalJournal: firstNonEmpty(journalPersonal, cfg.Journal.PersonalJournal),
		Author:          firstNonEmpty(journalAuthor, cfg.Journal.Author),
	}
	if _, err := (generator.Generator{}).Prepare(run.request); err != nil {
		return run, err
	}

	kind := journalSource
	if journalOffline {
		if strings.TrimSpace(kind) != "" && kind != sourceDB && kind != sourceAPI {
			return run, fmt.Errorf("--offline cannot be combined with --source %s", kind)
		}
		kind = sourceDB
	}
	run.source = sourceOptions{
		Kind:        kind,
		Token:       firstNonEmpty(journalToken, cfg.Toggl.APIToken),
		Inputs:      journalInputs,
		InputFormat: journalInputFormat,
		DBPath:      journalDBPath,
		Author:      run.request.Author,
	}.normalized()
	if err := run.source.validate(); err != nil {
		return run, err
	}
	if err := run.source.validateAuthor(); err != nil {
		return run, err
	}

	formats := cfg.Output.Formats
	if formatFlagSet {
		formats = journalFormats
	}
	if cfg.PDF.Enabled && !formatFlagSet {
		formats = append(append([]string(nil), formats...), output.FormatPDF)
	}
	parsed, err := output.ParseFormats(formats)
	if err != nil {
		return run, err
	}
	run.formats = parsed
	run.outDir = firstNonEmpty(journalOutDir, cfg.Output.Dir)

	return run, nil
}

func exportJournal(ctx context.Context, cfg config.Config, run journalRun, result generator.Result) error {
	html, err := result.Document.HTML(cfg.Style)
	if err != nil {
		return err
	}

	exporter := output.Exporter{
		Dir:     run.outDir,
		Formats: run.formats,
		PDF:     output.NewChromePDFConverter(cfg.PDF.Options()),
	}
	exported, err := exporter.Export(ctx, html, result.Document.Blocks(), journal.FileBaseName(result.Context))
	if err != nil {
		return err
	}

	fmt.Printf("Journal generated. Projects: %d, Entries: %d, Author: %s\n", len(result.Document.Sections), result.Entries, result.Context.Author)
	for _, path := range exported.Files {
		color.New(color.FgGreen).Fprintf(os.Stdout, "  wrote %s\n", path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().StringVar(&journalToken, "token", "", "Toggl API token (default: toggl.api_token or TOGGLJOURNAL_TOGGL_API_TOKEN)")
	journalCmd.Flags().StringVar(&journalSince, "since", "", "First day of the journal, YYYY-MM-DD")
	journalCmd.Flags().StringVar(&journalUntil, "until", "", "Last day of the journal, YYYY-MM-DD or TODAY")
	journalCmd.Flags().StringVarP(&journalProject, "project", "p", "", "Project name or ALL")
	journalCmd.Flags().StringVar(&journalPersonal, "personal-journal", "", "Project rendered as personal journal (default: journal.personal_journal)")
	journalCmd.Flags().StringVar(&journalAuthor, "author", "", "Author name (default: Toggl profile name, or journal.author)")
	journalCmd.Flags().StringVar(&journalSource, "source", sourceAPI, "Entry source: api|file|db")
	journalCmd.Flags().StringArrayVarP(&journalInputs, "input", "i", nil, "Toggl CSV/Excel export file (repeatable, --source file)")
	journalCmd.Flags().StringVar(&journalInputFormat, "input-format", "", "Input file format: csv|excel (optional, inferred from extension)")
	journalCmd.Flags().StringVar(&journalDBPath, "db", "", "SQLite cache path; fetched entries are stored there")
	journalCmd.Flags().BoolVar(&journalOffline, "offline", false, "Read entries from the SQLite cache (same as --source db)")
	journalCmd.Flags().StringVarP(&journalOutDir, "out", "o", "", "Output directory (default: output.dir)")
	journalCmd.Flags().StringSliceVarP(&journalFormats, "format", "f", nil, "Output formats: html,pdf,csv,xlsx (default: output.formats, html,pdf)")
	journalCmd.Flags().StringVar(&journalDelimiter, "delimiter", "", "Notation delimiter (default: notation.delimiter)")
	journalCmd.Flags().BoolVar(&journalDryRun, "dry-run", false, "Print the journal as text and write no files")
}
