package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListRuns returns recorded runs, newest first. A limit of zero or less
// returns all runs. Returns an empty slice, not nil, when there are none.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, input_path, output_path, layers, rules,
		       width_checks, spacing_checks, enclosure_checks, boolean_ops, diagnostics
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []Run{}
	}

	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var started string
	err := rows.Scan(
		&run.ID,
		&started,
		&run.InputPath,
		&run.OutputPath,
		&run.Stats.Layers,
		&run.Stats.Rules,
		&run.Stats.Width,
		&run.Stats.Spacing,
		&run.Stats.Enclosure,
		&run.Stats.BooleanOps,
		&run.Diagnostics,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse run timestamp: %w", err)
	}

	return run, nil
}
