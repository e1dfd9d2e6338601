package history

import (
	"context"
	"fmt"
	"time"
)

// RecordRun inserts a run record. Duplicate run IDs are silently ignored,
// so recording the same run twice is idempotent.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, input_path, output_path, layers, rules,
		 width_checks, spacing_checks, enclosure_checks, boolean_ops, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.InputPath,
		run.OutputPath,
		run.Stats.Layers,
		run.Stats.Rules,
		run.Stats.Width,
		run.Stats.Spacing,
		run.Stats.Enclosure,
		run.Stats.BooleanOps,
		run.Diagnostics,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}
