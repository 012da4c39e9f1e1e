package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	// DayLabelLayout is the display key of a journal day section, e.g. "07 Mar 2024".
	DayLabelLayout = "02 Jan 2006"
)

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func DayLabel(value time.Time) string {
	return value.Format(DayLabelLayout)
}

// ParseISODate parses YYYY-MM-DD in loc.
func ParseISODate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	parsed, err := time.ParseInLocation(ISODateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return parsed, nil
}
