package sweep

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagetools/brandsweep/pkg/credstore"
)

func TestRecordRunEmptySweep(t *testing.T) {
	store, err := credstore.OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	// A sweep that extracted nothing still gets a history row.
	recordRun(logger, store, credstore.Run{
		Source:   "empty.html",
		Duration: 5 * time.Millisecond,
	})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, want 1", len(runs))
	}

	r := runs[0]
	if r.Source != "empty.html" {
		t.Errorf("recorded source = %q, want empty.html", r.Source)
	}
	if r.EntryCount != 0 || r.BrandCount != 0 || r.RemovedCount != 0 {
		t.Errorf("recorded counts = %d/%d/%d, want all zero", r.EntryCount, r.BrandCount, r.RemovedCount)
	}
}
