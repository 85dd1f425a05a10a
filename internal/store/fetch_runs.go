package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// FetchRun is one feed load outcome, kept for diagnostics only.
type FetchRun struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	OK         bool      `json:"ok"`
	StatusCode int       `json:"statusCode"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
}

func RecordFetch(ctx context.Context, db *sql.DB, r FetchRun) (int64, error) {
	ok := 0
	if r.OK {
		ok = 1
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO fetch_runs(url, started_at, finished_at, ok, status_code, count, error)
VALUES(?,?,?,?,?,?,?);`,
		r.URL,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.FinishedAt.UTC().Format(time.RFC3339Nano),
		ok,
		r.StatusCode,
		r.Count,
		r.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("record fetch: %w", err)
	}
	return res.LastInsertId()
}

// RecentFetches returns the newest runs first.
func RecentFetches(ctx context.Context, db *sql.DB, limit int) ([]FetchRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, url, started_at, finished_at, ok, status_code, count, error
FROM fetch_runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FetchRun{}
	for rows.Next() {
		var r FetchRun
		var started, finished string
		var ok int
		if err := rows.Scan(&r.ID, &r.URL, &started, &finished, &ok, &r.StatusCode, &r.Count, &r.Error); err != nil {
			return nil, err
		}
		r.OK = ok == 1
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Recorder adapts a database handle to the feed loader's diagnostic sink.
type Recorder struct {
	DB *sql.DB
}

func (r Recorder) RecordFetch(ctx context.Context, run FetchRun) error {
	_, err := RecordFetch(ctx, r.DB, run)
	return err
}
