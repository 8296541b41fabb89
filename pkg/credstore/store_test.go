package credstore

import (
	"testing"
	"time"
)

// setupTestStore creates an in-memory SQLite store for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store := &Store{path: ":memory:"}
	var err error
	store.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return store
}

func TestGetAbsentKey(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	value, found, err := store.Get(APIKeyName)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for never-set key")
	}
	if value != "" {
		t.Errorf("Get() value = %q, want empty", value)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	stored, err := store.Set(APIKeyName, "k1")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if stored != "k1" {
		t.Errorf("Set() returned %q, want %q", stored, "k1")
	}

	value, found, err := store.Get(APIKeyName)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "k1" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", value, found, "k1")
	}
}

func TestSetUpserts(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	if _, err := store.Set(APIKeyName, "old"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.Set(APIKeyName, "new"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, _, err := store.Get(APIKeyName)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "new" {
		t.Errorf("Get() after upsert = %q, want %q", value, "new")
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	runs := []Run{
		{Source: "https://example.com/a", EntryCount: 3, BrandCount: 2, RemovedCount: 2, Duration: 1200 * time.Millisecond},
		{Source: "page.html", EntryCount: 1, BrandCount: 1, RemovedCount: 0, DryRun: true, Duration: 80 * time.Millisecond},
	}
	for _, r := range runs {
		id, err := store.RecordRun(r)
		if err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
		if id == 0 {
			t.Error("RecordRun() returned 0 ID")
		}
	}

	got, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, want 2", len(got))
	}

	// Newest first.
	if got[0].Source != "page.html" || !got[0].DryRun {
		t.Errorf("RecentRuns()[0] = %+v, want the dry run", got[0])
	}
	if got[1].RemovedCount != 2 || got[1].Duration != 1200*time.Millisecond {
		t.Errorf("RecentRuns()[1] = %+v, want removed=2 duration=1.2s", got[1])
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun(Run{Source: "s"}); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	got, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("RecentRuns(3) returned %d runs, want 3", len(got))
	}
}
