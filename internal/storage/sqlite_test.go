package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, s *Store, f Flight) {
	t.Helper()
	if _, err := s.SaveFlight(f); err != nil {
		t.Fatalf("SaveFlight() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsFlights(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Flight{RunID: "run-1", LevelID: "a", Outcome: OutcomeSuccess, Ticks: 90})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	flights, err := store.RecentFlights(10)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 1 {
		t.Errorf("Expected 1 flight after reopen, got %d", len(flights))
	}
}

func TestSaveFlightValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		f    Flight
	}{
		{"unknown outcome", Flight{RunID: "r", LevelID: "a", Outcome: "exploded"}},
		{"empty outcome", Flight{RunID: "r", LevelID: "a"}},
		{"missing run id", Flight{LevelID: "a", Outcome: OutcomeCrash}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveFlight(tc.f); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRecentFlights(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", LevelIndex: 0, Outcome: OutcomeCrash, Ticks: 40})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", LevelIndex: 0, Outcome: OutcomeSuccess, Ticks: 120})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "b", LevelIndex: 1, Outcome: OutcomeSkipped, Ticks: 5})

	flights, err := store.RecentFlights(2)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 2 {
		t.Fatalf("Expected 2 flights, got %d", len(flights))
	}

	// Newest first
	if flights[0].Outcome != OutcomeSkipped || flights[0].LevelIndex != 1 {
		t.Errorf("flights[0] = %+v, expected the skip of b", flights[0])
	}
	if flights[1].Outcome != OutcomeSuccess || flights[1].Ticks != 120 {
		t.Errorf("flights[1] = %+v, expected the landing on a", flights[1])
	}
	if flights[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestRunFlights(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeCrash})
	mustSave(t, store, Flight{RunID: "r2", LevelID: "a", Outcome: OutcomeSuccess})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeSuccess})

	flights, err := store.RunFlights("r1")
	if err != nil {
		t.Fatalf("RunFlights() failed: %v", err)
	}
	if len(flights) != 2 {
		t.Fatalf("Expected 2 flights for r1, got %d", len(flights))
	}
	// Flown order
	if flights[0].Outcome != OutcomeCrash || flights[1].Outcome != OutcomeSuccess {
		t.Errorf("unexpected order: %s, %s", flights[0].Outcome, flights[1].Outcome)
	}

	none, err := store.RunFlights("missing")
	if err != nil {
		t.Fatalf("RunFlights() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no flights, got %d", len(none))
	}
}

func TestAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Flight{RunID: "r1", LevelID: "b", Outcome: OutcomeCrash, Ticks: 30})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeSuccess, Ticks: 200})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeSuccess, Ticks: 150})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeCrash, Ticks: 10})
	mustSave(t, store, Flight{RunID: "r1", LevelID: "a", Outcome: OutcomeSkipped, Ticks: 1})

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}

	a := stats[0]
	if a.LevelID != "a" {
		t.Fatalf("Expected levels sorted by ID, got %q first", a.LevelID)
	}
	if a.Attempts != 3 || a.Successes != 2 || a.Crashes != 1 || a.Skips != 1 {
		t.Errorf("stats for a = %+v", a)
	}
	if a.BestTicks != 150 {
		t.Errorf("BestTicks = %d, expected 150", a.BestTicks)
	}
	if rate := a.SuccessRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("SuccessRate() = %v, expected 2/3", rate)
	}

	b := stats[1]
	if b.BestTicks != 0 {
		t.Errorf("BestTicks = %d for a level never landed, expected 0", b.BestTicks)
	}
	if b.SuccessRate() != 0 {
		t.Errorf("SuccessRate() = %v, expected 0", b.SuccessRate())
	}
}

func TestGetLevelStatsUnknown(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetLevelStats("never-flown")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 0 || stats.LevelID != "never-flown" {
		t.Errorf("stats = %+v, expected zero counts", stats)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Flight{RunID: "old", LevelID: "a", Outcome: OutcomeSuccess})
	mustSave(t, store, Flight{RunID: "new", LevelID: "a", Outcome: OutcomeCrash})
	mustSave(t, store, Flight{RunID: "new", LevelID: "a", Outcome: OutcomeSuccess})
	mustSave(t, store, Flight{RunID: "new", LevelID: "b", Outcome: OutcomeSkipped})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "new" {
		t.Errorf("Expected newest run first, got %q", runs[0].RunID)
	}
	if runs[0].Landings != 1 || runs[0].Crashes != 1 || runs[0].Flights != 3 {
		t.Errorf("run summary = %+v", runs[0])
	}
}

func TestClearFlights(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Flight{RunID: "r", LevelID: "a", Outcome: OutcomeCrash})
	if err := store.ClearFlights(); err != nil {
		t.Fatalf("ClearFlights() failed: %v", err)
	}

	flights, err := store.RecentFlights(10)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("Expected empty log, got %d flights", len(flights))
	}
}
