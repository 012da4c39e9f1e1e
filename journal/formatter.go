package journal

import (
	"fmt"
	"strings"
	"time"

	"toggljournal/internal/timeutil"
	"toggljournal/notation"
	"toggljournal/timeentry"
)

type BlockKind string

const (
	// BlockAction is a work entry: title, duration and tags.
	BlockAction BlockKind = "action"
	// BlockJournal is a personal journal entry: title and tags only.
	BlockJournal BlockKind = "journal"
)

// Block is one rendered annotated entry.
type Block struct {
	Kind     BlockKind
	Title    string
	Notes    []string
	Start    time.Time
	Duration int64
	Tags     []string
}

// HasDuration is false for journal blocks.
func (b Block) HasDuration() bool {
	return b.Kind == BlockAction
}

func (b Block) HumanDuration() string {
	return FormatDuration(b.Duration)
}

func (b Block) TagList() string {
	return FormatTags(b.Tags)
}

// DaySection groups the blocks of one calendar day.
type DaySection struct {
	Day    time.Time
	Label  string
	Blocks []Block
}

type Formatter struct {
	Parser          notation.Parser
	PersonalJournal string
}

// Format walks entries in their given order and emits one section per run of
// entries sharing a calendar day. The collection is processed as pageCount
// consecutive slices, each exactly once, so paging never repeats output.
func (f Formatter) Format(entries []timeentry.Entry, pageCount int) []DaySection {
	sections := make([]DaySection, 0)
	current := -1

	for _, page := range splitPages(entries, pageCount) {
		for _, entry := range page {
			note, ok := f.Parser.Parse(entry.Description)
			if !ok {
				continue
			}

			if current < 0 || !timeutil.SameDay(sections[current].Day, entry.Start) {
				sections = append(sections, DaySection{
					Day:   timeutil.StartOfDay(entry.Start),
					Label: timeutil.DayLabel(entry.Start),
				})
				current = len(sections) - 1
			}

			sections[current].Blocks = append(sections[current].Blocks, f.block(entry, note))
		}
	}

	return sections
}

func (f Formatter) block(entry timeentry.Entry, note notation.Note) Block {
	block := Block{
		Kind:  BlockAction,
		Title: note.Title,
		Notes: note.Notes,
		Start: entry.Start,
		Tags:  append([]string(nil), entry.Tags...),
	}
	if f.PersonalJournal != "" && entry.Project == f.PersonalJournal {
		block.Kind = BlockJournal
		return block
	}
	block.Duration = entry.Duration
	return block
}

func splitPages(entries []timeentry.Entry, pageCount int) [][]timeentry.Entry {
	if pageCount < 1 {
		pageCount = 1
	}
	if len(entries) == 0 {
		return nil
	}
	size := (len(entries) + pageCount - 1) / pageCount

	pages := make([][]timeentry.Entry, 0, pageCount)
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		pages = append(pages, entries[start:end])
	}
	return pages
}

// FormatDuration renders milliseconds as whole hours and minutes, dropping seconds.
func FormatDuration(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	totalMinutes := millis / int64(time.Minute/time.Millisecond)
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}

// FormatTags joins tags for display; an empty set renders as "-".
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
