package cmd

import (
	"fmt"
	"io"
	"strconv"

	"toggljournal/config"
	"toggljournal/generator"
	"toggljournal/journal"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var (
	projectsToken    string
	projectsSince    string
	projectsUntil    string
	projectsSource   string
	projectsInputs   []string
	projectsDBPath   string
	projectsPersonal string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Show which projects qualify for a journal",
	Long: `List every project with time entries in the range together with the number of
entries following the journal notation. Only qualifying projects appear in a
journal.`,
	Example: `
  # Audit this month's projects from the Toggl API
  toggljournal projects --since 2024-03-01 --until TODAY

  # Audit a Toggl CSV export
  toggljournal projects --source file -i TogglTrack_export.csv --since 2024-03-01 --until 2024-03-31
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		options := sourceOptions{
			Kind:   projectsSource,
			Token:  firstNonEmpty(projectsToken, cfg.Toggl.APIToken),
			Inputs: projectsInputs,
			DBPath: projectsDBPath,
		}.normalized()
		if err := options.validate(); err != nil {
			return err
		}
		req := generator.Request{Since: projectsSince, Until: projectsUntil, Project: journal.AllSentinel}
		if _, err := (generator.Generator{}).Prepare(req); err != nil {
			return err
		}

		source, closeSource, err := openSource(*cfg, options)
		if err != nil {
			return err
		}
		defer closeSource()

		gen, err := newGenerator(*cfg, source, "")
		if err != nil {
			return err
		}
		rc, err := gen.Prepare(req)
		if err != nil {
			return err
		}

		batch, err := source.Load(cmd.Context(), rc.Since, rc.Until)
		if err != nil {
			return err
		}

		personal := firstNonEmpty(projectsPersonal, cfg.Journal.PersonalJournal)
		rows := journal.Audit(batch.Entries, gen.Parser, personal)
		printProjectAudit(color.Output, rows)
		return nil
	},
}

func printProjectAudit(w io.Writer, rows []journal.ProjectAudit) {
	bold := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	skip := color.New(color.FgYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Project"), bold.Sprint("Entries"), bold.Sprint("Annotated"), bold.Sprint("Tracked"), bold.Sprint("Journal"))

	qualifying := 0
	for _, row := range rows {
		name := row.Project
		if name == "" {
			name = "(no project)"
		}
		if row.Personal {
			name += " (personal)"
		}
		status := skip.Sprint("skipped")
		if row.Qualifies() {
			status = ok.Sprint("yes")
			qualifying++
		}
		tbl.AddRow(name, strconv.Itoa(row.Entries), strconv.Itoa(row.Annotated), journal.FormatDuration(row.Duration), status)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "Projects: %d, qualifying: %d\n", len(rows), qualifying)
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().StringVar(&projectsToken, "token", "", "Toggl API token (default: toggl.api_token or TOGGLJOURNAL_TOGGL_API_TOKEN)")
	projectsCmd.Flags().StringVar(&projectsSince, "since", "", "First day, YYYY-MM-DD")
	projectsCmd.Flags().StringVar(&projectsUntil, "until", journal.TodaySentinel, "Last day, YYYY-MM-DD or TODAY")
	projectsCmd.Flags().StringVar(&projectsSource, "source", sourceAPI, "Entry source: api|file|db")
	projectsCmd.Flags().StringArrayVarP(&projectsInputs, "input", "i", nil, "Toggl CSV/Excel export file (repeatable, --source file)")
	projectsCmd.Flags().StringVar(&projectsDBPath, "db", "", "SQLite cache path")
	projectsCmd.Flags().StringVar(&projectsPersonal, "personal-journal", "", "Project treated as personal journal")

	_ = projectsCmd.MarkFlagRequired("since")
}
