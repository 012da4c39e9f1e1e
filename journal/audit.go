package journal

import (
	"toggljournal/notation"
	"toggljournal/timeentry"
)

// ProjectAudit summarizes how a project's entries relate to the notation.
type ProjectAudit struct {
	Project   string
	Personal  bool
	Entries   int
	Annotated int
	Duration  int64
}

// Qualifies is true when at least one entry follows the notation.
func (a ProjectAudit) Qualifies() bool {
	return a.Annotated > 0
}

// Audit returns one row per project in first-appearance order.
func Audit(entries []timeentry.Entry, parser notation.Parser, personalJournal string) []ProjectAudit {
	projects := timeentry.Projects(entries)
	rows := make([]ProjectAudit, 0, len(projects))
	for _, project := range projects {
		group := timeentry.FilterByProject(entries, project)
		row := ProjectAudit{
			Project:   project,
			Personal:  personalJournal != "" && project == personalJournal,
			Entries:   len(group),
			Annotated: parser.CountAnnotated(group),
		}
		for _, entry := range group {
			row.Duration += entry.Duration
		}
		rows = append(rows, row)
	}
	return rows
}
