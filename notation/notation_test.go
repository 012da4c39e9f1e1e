package notation

import (
	"reflect"
	"testing"

	"toggljournal/timeentry"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		delimiter   string
		description string
		wantOK      bool
		wantTitle   string
		wantNotes   []string
	}{
		{
			name:        "no delimiter",
			delimiter:   DefaultDelimiter,
			description: "Unrelated call",
		},
		{
			name:        "drops fragment before first dash",
			delimiter:   "[D]",
			description: "T[D]a-b-c",
			wantOK:      true,
			wantTitle:   "T",
			wantNotes:   []string{"b", "c"},
		},
		{
			name:        "legacy notation",
			delimiter:   DefaultDelimiter,
			description: "Wrote spec[N]-drafted sections-reviewed with team",
			wantOK:      true,
			wantTitle:   "Wrote spec",
			wantNotes:   []string{"drafted sections", "reviewed with team"},
		},
		{
			name:        "no dash after delimiter",
			delimiter:   DefaultDelimiter,
			description: "Standup[N]nothing to add",
			wantOK:      true,
			wantTitle:   "Standup",
			wantNotes:   []string{},
		},
		{
			name:        "delimiter at end",
			delimiter:   DefaultDelimiter,
			description: "Standup[N]",
			wantOK:      true,
			wantTitle:   "Standup",
			wantNotes:   []string{},
		},
		{
			name:        "second delimiter stays in notes",
			delimiter:   DefaultDelimiter,
			description: "A[N]-one[N]-two",
			wantOK:      true,
			wantTitle:   "A",
			wantNotes:   []string{"one[N]", "two"},
		},
		{
			name:        "title keeps surrounding whitespace",
			delimiter:   DefaultDelimiter,
			description: " Review [N]- item ",
			wantOK:      true,
			wantTitle:   " Review ",
			wantNotes:   []string{" item "},
		},
		{
			name:        "empty notes are preserved",
			delimiter:   DefaultDelimiter,
			description: "X[N]--y",
			wantOK:      true,
			wantTitle:   "X",
			wantNotes:   []string{"", "y"},
		},
		{
			name:        "custom delimiter",
			delimiter:   "::",
			description: "Deploy::-prod-staging",
			wantOK:      true,
			wantTitle:   "Deploy",
			wantNotes:   []string{"prod", "staging"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := Parser{Delimiter: tt.delimiter}
			got, ok := parser.Parse(tt.description)
			if ok != tt.wantOK {
				t.Fatalf("unexpected ok: expected %v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if got.Title != tt.wantTitle {
				t.Fatalf("unexpected title: expected %q, got %q", tt.wantTitle, got.Title)
			}
			if !reflect.DeepEqual(got.Notes, tt.wantNotes) {
				t.Fatalf("unexpected notes: expected %q, got %q", tt.wantNotes, got.Notes)
			}
		})
	}
}

func TestParse_EmptyDelimiterNeverMatches(t *testing.T) {
	t.Parallel()

	parser := Parser{}
	if _, ok := parser.Parse("anything[N]-x"); ok {
		t.Fatalf("expected empty delimiter to never match")
	}
	if parser.IsAnnotated("anything") {
		t.Fatalf("expected empty delimiter to never annotate")
	}
}

func TestNewParser_DefaultsDelimiter(t *testing.T) {
	t.Parallel()

	if got := NewParser("  ").Delimiter; got != DefaultDelimiter {
		t.Fatalf("expected default delimiter, got %q", got)
	}
	if got := NewParser("##").Delimiter; got != "##" {
		t.Fatalf("expected custom delimiter, got %q", got)
	}
}

func TestQualifies(t *testing.T) {
	t.Parallel()

	parser := NewParser("")

	none := []timeentry.Entry{
		{Description: "call"},
		{Description: "email"},
	}
	if parser.Qualifies(none) {
		t.Fatalf("expected project without annotated entries to be rejected")
	}

	one := []timeentry.Entry{
		{Description: "call"},
		{Description: "email"},
		{Description: "Wrote spec[N]-drafted"},
	}
	if !parser.Qualifies(one) {
		t.Fatalf("expected one annotated entry to qualify the project")
	}
	if got := parser.CountAnnotated(one); got != 1 {
		t.Fatalf("expected 1 annotated entry, got %d", got)
	}

	if parser.Qualifies(nil) {
		t.Fatalf("expected empty collection to be rejected")
	}
}
