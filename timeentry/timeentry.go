package timeentry

import (
	"sort"
	"time"
)

// Entry is the normalized time entry used across sources, the journal pipeline and outputs.
type Entry struct {
	ID          int64
	Project     string
	Description string
	Start       time.Time
	// Duration in milliseconds, never negative.
	Duration int64
	Tags     []string
	Source   string
}

// Projects returns the distinct project names in order of first appearance.
func Projects(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0)
	for _, entry := range entries {
		if _, ok := seen[entry.Project]; ok {
			continue
		}
		seen[entry.Project] = struct{}{}
		out = append(out, entry.Project)
	}
	return out
}

// FilterByProject returns a new slice holding the entries of one project in their original order.
func FilterByProject(entries []Entry, project string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Project == project {
			out = append(out, entry)
		}
	}
	return out
}

// SortByStart orders entries by start instant, keeping the original order for equal starts.
func SortByStart(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
}

// ClampDuration converts a duration in seconds to milliseconds. Negative values
// (running timers) become zero.
func ClampDuration(seconds int64) int64 {
	if seconds < 0 {
		return 0
	}
	return seconds * 1000
}
