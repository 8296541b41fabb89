// Package models defines data structures shared across the sweep pipeline.
package models

import "time"

// SweepConfig holds runtime configuration for a sweep run.
// All values come from CLI flags, not external config files.
type SweepConfig struct {
	Source     string // URL or local HTML file path
	OutputPath string // where the pruned document is written; empty = stdout
	Model      string
	Criteria   string
	DryRun     bool
	CacheDir   string
	MaxAge     time.Duration
	ForceFetch bool
}
