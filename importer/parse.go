package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseClockDuration parses Toggl durations like "01:30:00", "1:30" or "95:05:10"
// into milliseconds.
func parseClockDuration(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, nil
	}

	parts := strings.Split(cleaned, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("parse duration %q: expected HH:MM[:SS]", raw)
	}

	values := make([]int64, 3)
	for i, part := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", raw, err)
		}
		if value < 0 {
			return 0, fmt.Errorf("duration must not be negative")
		}
		values[i] = value
	}

	total := time.Duration(values[0])*time.Hour + time.Duration(values[1])*time.Minute + time.Duration(values[2])*time.Second
	return total.Milliseconds(), nil
}

func parseDateAndTime(dateValue, timeValue string, loc *time.Location) (time.Time, error) {
	dateValue = strings.TrimSpace(dateValue)
	timeValue = strings.TrimSpace(timeValue)
	if dateValue == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	if timeValue == "" {
		timeValue = "00:00:00"
	}
	if loc == nil {
		loc = time.Local
	}

	datetime := dateValue + " " + timeValue
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"01/02/2006 15:04:05",
		"01/02/2006 03:04:05 PM",
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, datetime, loc); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date/time format: %q", datetime)
}

func splitTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
