package journal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"toggljournal/internal/timeutil"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	footerTimeLayout = "02 Jan 2006, 15:04:05 -0700"
	noProjectLabel   = "(no project)"
)

type documentView struct {
	Doc   *Document
	Style Style
}

var documentTemplate = template.Must(template.New("journal.html").Funcs(template.FuncMap{
	"dayLabel":    timeutil.DayLabel,
	"projectName": projectName,
	"footerTime": func(doc *Document) string {
		return doc.Footer.GeneratedAt.Format(footerTimeLayout)
	},
	"isAll":      func(h Header) bool { return h.Mode == HeaderAll },
	"isPersonal": func(h Header) bool { return h.Mode == HeaderPersonal },
}).ParseFS(templateFS, "templates/journal.html"))

// HTML renders the document with style.
func (d *Document) HTML(style Style) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.ExecuteTemplate(&buf, "journal.html", documentView{Doc: d, Style: style.WithDefaults()}); err != nil {
		return "", fmt.Errorf("render journal html: %w", err)
	}
	return buf.String(), nil
}

// Text renders the document for a terminal.
func (d *Document) Text() string {
	var b strings.Builder

	switch d.Header.Mode {
	case HeaderAll:
		fmt.Fprintf(&b, "Toggl Journal Report for all projects by %s\n", d.Header.Author)
	case HeaderPersonal:
		fmt.Fprintf(&b, "Personal Journal %s by %s\n", d.Header.Scope, d.Header.Author)
	default:
		fmt.Fprintf(&b, "Toggl Journal Report for %s by %s\n", d.Header.Scope, d.Header.Author)
	}
	fmt.Fprintf(&b, "From: %s to %s\n", timeutil.DayLabel(d.Header.Since), timeutil.DayLabel(d.Header.Until))

	for _, section := range d.Sections {
		label := "Project"
		if section.Kind == SectionPersonal {
			label = "Journal"
		}
		fmt.Fprintf(&b, "\n== %s: %s ==\n", label, projectName(section.Name))
		for _, day := range section.Days {
			fmt.Fprintf(&b, "\nDate: %s\n", day.Label)
			for _, block := range day.Blocks {
				if block.HasDuration() {
					fmt.Fprintf(&b, "  Action: %s (%s) [%s]\n", block.Title, block.HumanDuration(), block.TagList())
				} else {
					fmt.Fprintf(&b, "  Entry: %s [%s]\n", block.Title, block.TagList())
				}
				for _, note := range block.Notes {
					fmt.Fprintf(&b, "    - %s\n", note)
				}
			}
		}
	}

	fmt.Fprintf(&b, "\nReport generated on: %s by %s\n", d.Footer.GeneratedAt.Format(footerTimeLayout), d.Footer.Attribution)
	return b.String()
}

func projectName(name string) string {
	if strings.TrimSpace(name) == "" {
		return noProjectLabel
	}
	return name
}
