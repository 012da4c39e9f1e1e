package generator

import (
	"context"
	"fmt"
	"time"

	"toggljournal/importer"
	"toggljournal/storage"
	"toggljournal/timeentry"
	"toggljournal/toggl"
)

// Batch is the raw material of one journal run.
type Batch struct {
	Author    string
	Entries   []timeentry.Entry
	PageCount int
}

// Source loads the entries whose start day lies in [since, until].
type Source interface {
	Load(ctx context.Context, since, until time.Time) (Batch, error)
}

// EntryCache stores fetched entries for later offline runs.
type EntryCache interface {
	UpsertEntries(entries []timeentry.Entry) (int, error)
	ListEntries(since, until time.Time) ([]timeentry.Entry, error)
}

var _ EntryCache = (*storage.SQLiteStore)(nil)

// APISource reads from the Toggl API and optionally refreshes a cache.
type APISource struct {
	Client   toggl.Client
	PageSize int
	Location *time.Location
	Cache    EntryCache
}

func (s APISource) Load(ctx context.Context, since, until time.Time) (Batch, error) {
	result, err := toggl.FetchEntries(ctx, s.Client, toggl.FetchOptions{
		Since:    since,
		Until:    until,
		PageSize: s.PageSize,
		Location: s.Location,
	})
	if err != nil {
		return Batch{}, err
	}
	if s.Cache != nil {
		if _, err := s.Cache.UpsertEntries(result.Entries); err != nil {
			return Batch{}, fmt.Errorf("cache time entries: %w", err)
		}
	}
	return Batch{
		Author:    result.Author,
		Entries:   result.Entries,
		PageCount: result.PageCount,
	}, nil
}

// FileSource reads Toggl CSV or Excel exports.
type FileSource struct {
	Paths    []string
	Format   string
	Location *time.Location
	Author   string
	PageSize int
	Cache    EntryCache
}

func (s FileSource) Load(_ context.Context, since, until time.Time) (Batch, error) {
	if len(s.Paths) == 0 {
		return Batch{}, fmt.Errorf("no input files given")
	}
	result, err := importer.Run(s.Paths, s.Format, s.Location)
	if err != nil {
		return Batch{}, err
	}
	entries := importer.FilterRange(result.Entries, since, until)
	if s.Cache != nil {
		if _, err := s.Cache.UpsertEntries(entries); err != nil {
			return Batch{}, fmt.Errorf("cache time entries: %w", err)
		}
	}
	return Batch{
		Author:    s.Author,
		Entries:   entries,
		PageCount: toggl.PageCount(len(entries), s.PageSize),
	}, nil
}

// CacheSource replays entries stored by an earlier run.
type CacheSource struct {
	Cache    EntryCache
	Location *time.Location
	Author   string
	PageSize int
}

func (s CacheSource) Load(_ context.Context, since, until time.Time) (Batch, error) {
	entries, err := s.Cache.ListEntries(since, until)
	if err != nil {
		return Batch{}, err
	}
	if s.Location != nil {
		for i := range entries {
			entries[i].Start = entries[i].Start.In(s.Location)
		}
	}
	timeentry.SortByStart(entries)
	return Batch{
		Author:    s.Author,
		Entries:   entries,
		PageCount: toggl.PageCount(len(entries), s.PageSize),
	}, nil
}
