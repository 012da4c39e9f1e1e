package generator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"toggljournal/journal"
	"toggljournal/notation"
	"toggljournal/storage"
	"toggljournal/timeentry"
)

type fakeSource struct {
	batch Batch
	err   error
	calls int
	since time.Time
	until time.Time
}

func (f *fakeSource) Load(_ context.Context, since, until time.Time) (Batch, error) {
	f.calls++
	f.since = since
	f.until = until
	return f.batch, f.err
}

func TestGenerate_AssemblesQualifyingProjects(t *testing.T) {
	t.Parallel()

	source := &fakeSource{batch: Batch{
		Author:    "Jane Doe",
		PageCount: 1,
		Entries: []timeentry.Entry{
			{Project: "Alpha", Description: "Spec[N]-draft", Start: at(2024, 3, 7, 9), Duration: 3_600_000},
			{Project: "Beta", Description: "plain", Start: at(2024, 3, 7, 10), Duration: 600_000},
		},
	}}
	gen, logs := newTestGenerator(source)

	result, err := gen.Generate(context.Background(), Request{Since: "2024-03-01", Until: "TODAY", Project: "ALL"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one source call, got %d", source.calls)
	}
	if !source.until.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected TODAY to resolve to 2024-03-10, got %v", source.until)
	}
	if result.Document == nil {
		t.Fatal("expected a document")
	}
	if len(result.Document.Sections) != 1 || result.Document.Sections[0].Name != "Alpha" {
		t.Fatalf("unexpected sections: %+v", result.Document.Sections)
	}
	if result.Context.Author != "Jane Doe" {
		t.Fatalf("expected author from source, got %q", result.Context.Author)
	}
	if got := journal.FileBaseName(result.Context); got != "Jane Doe - ALL - 2024-03-01 - 2024-03-10" {
		t.Fatalf("unexpected base name %q", got)
	}
	if !strings.Contains(logs.String(), "project=Beta") {
		t.Fatalf("expected warning for Beta, got logs:\n%s", logs.String())
	}
}

func TestGenerate_NoQualifyingProjectIsNotAnError(t *testing.T) {
	t.Parallel()

	source := &fakeSource{batch: Batch{
		Author:  "Jane Doe",
		Entries: []timeentry.Entry{{Project: "Alpha", Description: "plain", Start: at(2024, 3, 7, 9)}},
	}}
	gen, _ := newTestGenerator(source)

	result, err := gen.Generate(context.Background(), Request{Since: "2024-03-01", Until: "2024-03-09", Project: "Alpha"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Document != nil {
		t.Fatalf("expected no document, got %+v", result.Document)
	}
	if result.Entries != 1 {
		t.Fatalf("expected entry count 1, got %d", result.Entries)
	}
}

func TestGenerate_InvalidRequestSkipsSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "empty project", req: Request{Since: "2024-03-01", Until: "2024-03-02"}, wantErr: journal.ErrEmptyScope},
		{name: "bad since", req: Request{Since: "03/01/2024", Until: "2024-03-02", Project: "ALL"}, wantErr: journal.ErrInvalidRange},
		{name: "reversed", req: Request{Since: "2024-03-05", Until: "2024-03-02", Project: "ALL"}, wantErr: journal.ErrInvalidRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := &fakeSource{}
			gen, _ := newTestGenerator(source)
			_, err := gen.Generate(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if source.calls != 0 {
				t.Fatalf("expected source to stay untouched, got %d calls", source.calls)
			}
		})
	}
}

func TestGenerate_RequiresAuthor(t *testing.T) {
	t.Parallel()

	source := &fakeSource{batch: Batch{Entries: []timeentry.Entry{}}}
	gen, _ := newTestGenerator(source)

	_, err := gen.Generate(context.Background(), Request{Since: "2024-03-01", Until: "2024-03-02", Project: "ALL"})
	if !errors.Is(err, ErrMissingAuthor) {
		t.Fatalf("expected ErrMissingAuthor, got %v", err)
	}
}

func TestCacheSource_ReplaysStoredEntries(t *testing.T) {
	t.Parallel()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.UpsertEntries([]timeentry.Entry{
		{ID: 2, Project: "Alpha", Description: "Second[N]-b", Start: at(2024, 3, 8, 9), Duration: 60_000},
		{ID: 1, Project: "Alpha", Description: "First[N]-a", Start: at(2024, 3, 7, 9), Duration: 60_000},
	}); err != nil {
		t.Fatalf("upsert entries: %v", err)
	}

	gen, _ := newTestGenerator(CacheSource{Cache: store, Location: time.UTC, Author: "Jane Doe", PageSize: 50})
	result, err := gen.Generate(context.Background(), Request{Since: "2024-03-01", Until: "2024-03-31", Project: "Alpha"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Document == nil {
		t.Fatal("expected a document")
	}
	days := result.Document.Sections[0].Days
	if len(days) != 2 || days[0].Blocks[0].Title != "First" || days[1].Blocks[0].Title != "Second" {
		t.Fatalf("unexpected days: %+v", days)
	}
	if result.Context.PageCount != 1 {
		t.Fatalf("expected page count 1, got %d", result.Context.PageCount)
	}
}

func newTestGenerator(source Source) (Generator, *bytes.Buffer) {
	var buf bytes.Buffer
	return Generator{
		Source:   source,
		Parser:   notation.NewParser(""),
		Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
		Location: time.UTC,
		Now: func() time.Time {
			return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
		},
	}, &buf
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
