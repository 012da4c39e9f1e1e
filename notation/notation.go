// Package notation recognizes the journal notation inside time entry
// descriptions: "Title[N]-first note-second note".
package notation

import (
	"strings"

	"toggljournal/timeentry"
)

// DefaultDelimiter separates the title from the notes.
const DefaultDelimiter = "[N]"

// noteSeparator splits the text after the delimiter into notes.
const noteSeparator = "-"

// Note is the parsed form of an annotated description.
type Note struct {
	Title string
	Notes []string
}

type Parser struct {
	Delimiter string
}

// NewParser returns a parser for delimiter, falling back to DefaultDelimiter when it is blank.
func NewParser(delimiter string) Parser {
	if strings.TrimSpace(delimiter) == "" {
		delimiter = DefaultDelimiter
	}
	return Parser{Delimiter: delimiter}
}

// Parse splits description at the first delimiter. The fragment between the
// delimiter and the first dash is never a note and is dropped.
func (p Parser) Parse(description string) (Note, bool) {
	if p.Delimiter == "" {
		return Note{}, false
	}
	title, rest, found := strings.Cut(description, p.Delimiter)
	if !found {
		return Note{}, false
	}

	fragments := strings.Split(rest, noteSeparator)
	notes := make([]string, 0, len(fragments)-1)
	notes = append(notes, fragments[1:]...)

	return Note{Title: title, Notes: notes}, true
}

func (p Parser) IsAnnotated(description string) bool {
	return p.Delimiter != "" && strings.Contains(description, p.Delimiter)
}

// Qualifies reports whether at least one entry is annotated. Unannotated
// entries of a qualifying group are dropped later, one by one.
func (p Parser) Qualifies(entries []timeentry.Entry) bool {
	for _, entry := range entries {
		if p.IsAnnotated(entry.Description) {
			return true
		}
	}
	return false
}

// CountAnnotated returns how many entries carry the notation.
func (p Parser) CountAnnotated(entries []timeentry.Entry) int {
	count := 0
	for _, entry := range entries {
		if p.IsAnnotated(entry.Description) {
			count++
		}
	}
	return count
}
