package cmd

import (
	"bytes"
	"strings"
	"testing"

	"toggljournal/journal"

	"github.com/fatih/color"
)

func TestPrintProjectAudit(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	var out bytes.Buffer
	printProjectAudit(&out, []journal.ProjectAudit{
		{Project: "Alpha", Entries: 3, Annotated: 2, Duration: 5_400_000},
		{Project: "", Entries: 1},
		{Project: "Diary", Personal: true, Entries: 1, Annotated: 1},
	})

	text := out.String()
	for _, want := range []string{"Project", "Alpha", "1h 30m", "(no project)", "Diary (personal)", "skipped", "Projects: 3, qualifying: 2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestMaskToken(t *testing.T) {
	tests := map[string]string{
		"":             "(not set)",
		"abc":          "****",
		"abcdef123456": "********3456",
	}
	for in, want := range tests {
		if got := maskToken(in); got != want {
			t.Fatalf("maskToken(%q) = %q, want %q", in, got, want)
		}
	}
}
