package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PruneResult counts the rows removed by Prune.
type PruneResult struct {
	Runs  int64 `json:"runs"`
	Logos int64 `json:"logos"`
}

// Prune keeps the newest keepRuns fetch rows and drops logos fetched before
// now-logoMaxAge. A non-positive argument disables that half.
func Prune(ctx context.Context, db *sql.DB, keepRuns int, logoMaxAge time.Duration) (PruneResult, error) {
	var res PruneResult

	if keepRuns > 0 {
		r, err := db.ExecContext(ctx, `
DELETE FROM fetch_runs
WHERE id NOT IN (SELECT id FROM fetch_runs ORDER BY id DESC LIMIT ?);`, keepRuns)
		if err != nil {
			return res, fmt.Errorf("prune fetch_runs: %w", err)
		}
		res.Runs, _ = r.RowsAffected()
	}

	if logoMaxAge > 0 {
		cutoff := time.Now().Add(-logoMaxAge).UTC().Format(time.RFC3339)
		r, err := db.ExecContext(ctx, `DELETE FROM logos WHERE fetched_at < ?;`, cutoff)
		if err != nil {
			return res, fmt.Errorf("prune logos: %w", err)
		}
		res.Logos, _ = r.RowsAffected()
	}

	return res, nil
}
