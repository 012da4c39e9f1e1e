package toggl

import (
	"context"
	"fmt"
	"time"

	"toggljournal/timeentry"
)

// DefaultPageSize is the page size of the legacy detailed report endpoint.
const DefaultPageSize = 50

type FetchOptions struct {
	// Since and Until are calendar days; Until is inclusive.
	Since    time.Time
	Until    time.Time
	PageSize int
	Location *time.Location
}

type FetchResult struct {
	Author      string
	WorkspaceID int64
	Entries     []timeentry.Entry
	PageCount   int
}

// FetchEntries loads the account owner and every time entry in the range,
// resolves project names and returns the entries sorted by start.
func FetchEntries(ctx context.Context, client Client, options FetchOptions) (*FetchResult, error) {
	me, err := client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load toggl profile: %w", err)
	}

	projectNames := make(map[int64]string)
	if me.DefaultWorkspaceID > 0 {
		projects, err := client.ListProjects(ctx, me.DefaultWorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("load toggl projects: %w", err)
		}
		for _, project := range projects {
			projectNames[project.ID] = project.Name
		}
	}

	raw, err := client.ListTimeEntries(ctx, options.Since, options.Until.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load toggl time entries: %w", err)
	}

	loc := options.Location
	if loc == nil {
		loc = time.Local
	}

	entries := make([]timeentry.Entry, 0, len(raw))
	for _, item := range raw {
		if me.DefaultWorkspaceID > 0 && item.WorkspaceID != 0 && item.WorkspaceID != me.DefaultWorkspaceID {
			continue
		}
		project := ""
		if item.ProjectID != nil {
			project = projectNames[*item.ProjectID]
		}
		entries = append(entries, timeentry.Entry{
			ID:          item.ID,
			Project:     project,
			Description: item.Description,
			Start:       item.Start.In(loc),
			Duration:    timeentry.ClampDuration(item.Duration),
			Tags:        append([]string(nil), item.Tags...),
			Source:      "toggl",
		})
	}
	timeentry.SortByStart(entries)

	return &FetchResult{
		Author:      me.FullName,
		WorkspaceID: me.DefaultWorkspaceID,
		Entries:     entries,
		PageCount:   PageCount(len(entries), options.PageSize),
	}, nil
}

// PageCount is the number of pages of pageSize needed for total entries, at least 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
