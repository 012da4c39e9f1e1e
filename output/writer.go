package output

import (
	"fmt"
	"strings"

	"toggljournal/journal"
)

const (
	FormatHTML  = "html"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

// notesSeparator joins the notes of one block inside a single cell.
const notesSeparator = " | "

var blockHeaders = []string{"Project", "Date", "Kind", "Title", "Notes", "Duration", "Tags"}

// Writer stores the flattened blocks of a journal in a tabular file.
type Writer interface {
	Write(path string, rows []journal.BlockRow) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case FormatCSV:
		return &CSVWriter{}, nil
	case "excel", FormatExcel:
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ParseFormats normalizes a list of formats. Comma separated values are
// split and duplicates dropped. An empty list means html only.
func ParseFormats(values []string) ([]string, error) {
	formats := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			format := normalizeFormat(part)
			if format == "" {
				continue
			}
			if format == "excel" {
				format = FormatExcel
			}
			switch format {
			case FormatHTML, FormatPDF, FormatCSV, FormatExcel:
			default:
				return nil, fmt.Errorf("unsupported output format: %s", part)
			}
			if _, ok := seen[format]; ok {
				continue
			}
			seen[format] = struct{}{}
			formats = append(formats, format)
		}
	}
	if len(formats) == 0 {
		formats = append(formats, FormatHTML)
	}
	return formats, nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func blockValues(row journal.BlockRow) []string {
	duration := ""
	if row.Block.HasDuration() {
		duration = row.Block.HumanDuration()
	}
	return []string{
		row.Project,
		row.Day.Format("2006-01-02"),
		string(row.Block.Kind),
		row.Block.Title,
		strings.Join(row.Block.Notes, notesSeparator),
		duration,
		row.Block.TagList(),
	}
}
