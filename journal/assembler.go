package journal

import (
	"log/slog"
	"time"

	"toggljournal/notation"
	"toggljournal/timeentry"
)

const (
	AttributionName = "toggl-journal"
	AttributionURL  = "https://github.com/akritiko/toggl-journal"
)

type HeaderMode int

const (
	HeaderProject HeaderMode = iota
	HeaderAll
	HeaderPersonal
)

type Header struct {
	Mode   HeaderMode
	Author string
	Scope  string
	Since  time.Time
	Until  time.Time
}

type SectionKind string

const (
	SectionProject  SectionKind = "project"
	SectionPersonal SectionKind = "personal"
)

// ProjectSection is the journal part of one qualifying project.
type ProjectSection struct {
	Name string
	Kind SectionKind
	Days []DaySection
}

type Footer struct {
	GeneratedAt    time.Time
	Attribution    string
	AttributionURL string
}

type Document struct {
	Header   Header
	Sections []ProjectSection
	Footer   Footer
}

type Assembler struct {
	Parser notation.Parser
	Logger *slog.Logger
}

func NewAssembler(parser notation.Parser, logger *slog.Logger) Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return Assembler{Parser: parser, Logger: logger}
}

// Assemble builds the journal for rc from entries. It returns false when no
// project qualifies; that is a valid, empty outcome.
func (a Assembler) Assemble(rc Context, entries []timeentry.Entry) (*Document, bool) {
	logger := a.logger()
	formatter := Formatter{Parser: a.Parser, PersonalJournal: rc.PersonalJournal}

	doc := &Document{Header: buildHeader(rc)}

	appendSection := func(name string, kind SectionKind) {
		group := timeentry.FilterByProject(entries, name)
		if !a.Parser.Qualifies(group) {
			logger.Warn("project skipped: no time entries follow the journal notation",
				"project", name,
				"entries", len(group),
				"delimiter", a.Parser.Delimiter,
			)
			return
		}
		doc.Sections = append(doc.Sections, ProjectSection{
			Name: name,
			Kind: kind,
			Days: formatter.Format(group, rc.PageCount),
		})
	}

	if rc.Scope.IsAll() {
		for _, project := range timeentry.Projects(entries) {
			if rc.IsPersonal(project) {
				continue
			}
			appendSection(project, SectionProject)
		}
		if rc.PersonalJournal != "" {
			appendSection(rc.PersonalJournal, SectionPersonal)
		}
	} else {
		project := rc.Scope.Project()
		if rc.IsPersonal(project) {
			appendSection(project, SectionPersonal)
		} else {
			appendSection(project, SectionProject)
		}
	}

	if len(doc.Sections) == 0 {
		logger.Info("no project qualifies for the journal; nothing to export",
			"scope", rc.Scope.String(),
			"entries", len(entries),
		)
		return nil, false
	}

	generatedAt := rc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	doc.Footer = Footer{
		GeneratedAt:    generatedAt,
		Attribution:    AttributionName,
		AttributionURL: AttributionURL,
	}
	return doc, true
}

func (a Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func buildHeader(rc Context) Header {
	header := Header{
		Mode:   HeaderProject,
		Author: rc.Author,
		Scope:  rc.Scope.String(),
		Since:  rc.Since,
		Until:  rc.Until,
	}
	switch {
	case !rc.Scope.IsAll() && rc.IsPersonal(rc.Scope.Project()):
		header.Mode = HeaderPersonal
	case rc.Scope.IsAll():
		header.Mode = HeaderAll
	}
	return header
}

// Blocks flattens the document into rows for tabular exports.
func (d *Document) Blocks() []BlockRow {
	rows := make([]BlockRow, 0)
	for _, section := range d.Sections {
		for _, day := range section.Days {
			for _, block := range day.Blocks {
				rows = append(rows, BlockRow{
					Project: section.Name,
					Day:     day.Day,
					Block:   block,
				})
			}
		}
	}
	return rows
}

// BlockRow is a block with its project and day.
type BlockRow struct {
	Project string
	Day     time.Time
	Block   Block
}
