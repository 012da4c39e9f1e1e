package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"toggljournal/internal/timeutil"
)

const (
	// AllSentinel selects every project on the command line.
	AllSentinel = "ALL"
	// TodaySentinel stands for the current date as end of range.
	TodaySentinel = "TODAY"
)

var (
	ErrEmptyScope   = errors.New("project scope is required (ALL or a project name)")
	ErrInvalidRange = errors.New("invalid date range")
)

// Scope selects the projects of a journal run.
type Scope struct {
	all     bool
	project string
}

func AllProjects() Scope {
	return Scope{all: true}
}

func SingleProject(name string) Scope {
	return Scope{project: name}
}

// ParseScope maps the ALL literal to AllProjects and anything else to a single project.
func ParseScope(raw string) (Scope, error) {
	if strings.TrimSpace(raw) == "" {
		return Scope{}, ErrEmptyScope
	}
	if raw == AllSentinel {
		return AllProjects(), nil
	}
	return SingleProject(raw), nil
}

func (s Scope) IsAll() bool {
	return s.all
}

func (s Scope) Project() string {
	return s.project
}

func (s Scope) String() string {
	if s.all {
		return AllSentinel
	}
	return s.project
}

// Context is the immutable input of one journal run.
type Context struct {
	Author          string
	Scope           Scope
	PersonalJournal string
	Since           time.Time
	Until           time.Time
	PageCount       int
	GeneratedAt     time.Time
}

// IsPersonal reports whether project is the configured personal journal.
func (c Context) IsPersonal(project string) bool {
	return c.PersonalJournal != "" && project == c.PersonalJournal
}

// ResolveRange parses since/until as ISO dates in loc. until accepts the TODAY
// sentinel, replaced by the date of now.
func ResolveRange(since, until string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := timeutil.ParseISODate(since, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: since: %w", ErrInvalidRange, err)
	}

	var end time.Time
	if strings.EqualFold(strings.TrimSpace(until), TodaySentinel) {
		end = timeutil.StartOfDay(now.In(loc))
	} else {
		end, err = timeutil.ParseISODate(until, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: until: %w", ErrInvalidRange, err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: since %s is after until %s", ErrInvalidRange, start.Format(timeutil.ISODateLayout), end.Format(timeutil.ISODateLayout))
	}
	return start, end, nil
}

// FileBaseName is the export name "{author} - {scope} - {since} - {until}".
func FileBaseName(rc Context) string {
	parts := []string{
		rc.Author,
		rc.Scope.String(),
		rc.Since.Format(timeutil.ISODateLayout),
		rc.Until.Format(timeutil.ISODateLayout),
	}
	for i, part := range parts {
		parts[i] = sanitizeFilePart(part)
	}
	return strings.Join(parts, " - ")
}

func sanitizeFilePart(value string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "_"
	}
	return value
}
