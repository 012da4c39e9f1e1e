package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"toggljournal/timeentry"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Entries        []timeentry.Entry
}

// Run reads every export file and returns the mapped entries sorted by start.
func Run(paths []string, format string, loc *time.Location) (*Result, error) {
	result := &Result{Entries: make([]timeentry.Entry, 0, 256)}
	mapper := &TogglMapper{Location: loc}

	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			entry, ok, mapErr := mapper.Map(record, sourceFormat)
			if mapErr != nil {
				return nil, fmt.Errorf("%s: %w", path, mapErr)
			}
			if !ok || entry == nil {
				result.RowsSkipped++
				continue
			}

			result.RowsMapped++
			result.Entries = append(result.Entries, *entry)
		}
	}

	timeentry.SortByStart(result.Entries)
	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}

// FilterRange keeps entries whose start day lies in [since, until].
func FilterRange(entries []timeentry.Entry, since, until time.Time) []timeentry.Entry {
	end := until.AddDate(0, 0, 1)
	out := make([]timeentry.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Start.Before(since) || !entry.Start.Before(end) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
