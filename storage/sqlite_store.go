package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"toggljournal/timeentry"

	_ "modernc.org/sqlite"
)

// SQLiteStore caches fetched time entries so journals can be rebuilt offline.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// start_unix keeps range queries independent of the stored zone offset.
	// Toggl ids identify an entry across edits; id-less export rows fall back
	// to their content.
	const schema = `
CREATE TABLE IF NOT EXISTS time_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	toggl_id INTEGER NOT NULL DEFAULT 0,
	project TEXT NOT NULL,
	description TEXT NOT NULL,
	start_datetime TEXT NOT NULL,
	start_unix INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL CHECK(duration_ms >= 0),
	tags TEXT NOT NULL DEFAULT '[]',
	source TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_unix);
DELETE FROM time_entries
WHERE toggl_id > 0 AND id NOT IN (
	SELECT MAX(id) FROM time_entries WHERE toggl_id > 0 GROUP BY toggl_id
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_toggl_id
	ON time_entries(toggl_id) WHERE toggl_id > 0;
CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_content
	ON time_entries(start_datetime, description, project) WHERE toggl_id = 0;
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertEntries stores entries. Rows with a Toggl id replace the cached row of
// that id; id-less rows only update duration and tags of an identical row.
// It returns the number of rows written.
func (s *SQLiteStore) UpsertEntries(entries []timeentry.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertColumns = `
INSERT INTO time_entries (
	toggl_id,
	project,
	description,
	start_datetime,
	start_unix,
	duration_ms,
	tags,
	source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	const upsertByID = insertColumns + `
ON CONFLICT(toggl_id) WHERE toggl_id > 0 DO UPDATE SET
	project = excluded.project,
	description = excluded.description,
	start_datetime = excluded.start_datetime,
	start_unix = excluded.start_unix,
	duration_ms = excluded.duration_ms,
	tags = excluded.tags,
	source = excluded.source;`

	const upsertByContent = insertColumns + `
ON CONFLICT(start_datetime, description, project) WHERE toggl_id = 0 DO UPDATE SET
	duration_ms = excluded.duration_ms,
	tags = excluded.tags,
	source = excluded.source;`

	byID, err := tx.Prepare(upsertByID)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer byID.Close()

	byContent, err := tx.Prepare(upsertByContent)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer byContent.Close()

	written := 0
	for _, entry := range entries {
		tags, err := encodeTags(entry.Tags)
		if err != nil {
			_ = tx.Rollback()
			return written, err
		}
		stmt, togglID := byContent, int64(0)
		if entry.ID > 0 {
			stmt, togglID = byID, entry.ID
		}
		res, err := stmt.Exec(
			togglID,
			entry.Project,
			entry.Description,
			entry.Start.Format(time.RFC3339),
			entry.Start.Unix(),
			max(entry.Duration, 0),
			tags,
			entry.Source,
		)
		if err != nil {
			_ = tx.Rollback()
			return written, fmt.Errorf("upsert time entry: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("commit transaction: %w", err)
	}

	return written, nil
}

// ListEntries returns cached entries whose start day lies in [since, until],
// ordered by start.
func (s *SQLiteStore) ListEntries(since, until time.Time) ([]timeentry.Entry, error) {
	const query = `
SELECT
	toggl_id,
	project,
	description,
	start_datetime,
	duration_ms,
	tags
FROM time_entries
WHERE start_unix >= ? AND start_unix < ?
ORDER BY start_unix, id;
`

	rows, err := s.db.Query(query, since.Unix(), until.AddDate(0, 0, 1).Unix())
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timeentry.Entry, 0, 256)
	for rows.Next() {
		var (
			startRaw string
			tagsRaw  string
			entry    timeentry.Entry
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.Project,
			&entry.Description,
			&startRaw,
			&entry.Duration,
			&tagsRaw,
		); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}

		entry.Start, err = time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return nil, fmt.Errorf("parse start datetime %q: %w", startRaw, err)
		}
		entry.Tags, err = decodeTags(tagsRaw)
		if err != nil {
			return nil, err
		}
		entry.Source = "sqlite"

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}

	return entries, nil
}

func (s *SQLiteStore) DeleteAllEntries() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM time_entries;`)
	if err != nil {
		return 0, fmt.Errorf("delete time entries: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	payload, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(payload), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags %q: %w", raw, err)
	}
	return tags, nil
}
