package credstore

import (
	"fmt"
	"time"
)

// Run records the outcome of one sweep invocation.
type Run struct {
	RunID        int64
	Source       string
	EntryCount   int
	BrandCount   int
	RemovedCount int
	DryRun       bool
	Duration     time.Duration
	CreatedAt    time.Time
}

// RecordRun inserts a completed run and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	res, err := s.Exec(`
		INSERT INTO runs (source, entry_count, brand_count, removed_count, dry_run, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.Source, r.EntryCount, r.BrandCount, r.RemovedCount, r.DryRun, r.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first. limit <= 0 means
// a default of 20.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.Query(`
		SELECT run_id, source, entry_count, brand_count, removed_count, dry_run, duration_ms, created_at
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.RunID, &r.Source, &r.EntryCount, &r.BrandCount, &r.RemovedCount, &r.DryRun, &durationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
