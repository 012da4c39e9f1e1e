package importer

import (
	"fmt"
	"strings"
	"time"

	"toggljournal/timeentry"
)

// TogglMapper maps rows of a Toggl "Detailed report" export.
type TogglMapper struct {
	Location *time.Location
}

func (m *TogglMapper) Name() string {
	return "toggl"
}

// Map returns false for rows without a start date (summary or padding rows).
func (m *TogglMapper) Map(record Record, sourceFormat string) (*timeentry.Entry, bool, error) {
	startDate := record.Get("start date", "startdate", "date")
	if startDate == "" {
		return nil, false, nil
	}

	start, err := parseDateAndTime(startDate, record.Get("start time", "starttime", "time"), m.Location)
	if err != nil {
		return nil, false, fmt.Errorf("row %d: parse start: %w", record.RowNumber, err)
	}

	duration, err := parseClockDuration(record.Get("duration"))
	if err != nil {
		return nil, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	entry := &timeentry.Entry{
		Project:     strings.TrimSpace(record.Get("project")),
		Description: record.Get("description"),
		Start:       start,
		Duration:    duration,
		Tags:        splitTags(record.Get("tags")),
		Source:      sourceFormat,
	}
	return entry, true, nil
}
