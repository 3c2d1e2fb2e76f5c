package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// LevelStats aggregates the flight log for one level.
type LevelStats struct {
	LevelID   string
	Attempts  int // Successes plus crashes; skips are not attempts
	Successes int
	Crashes   int
	Skips     int
	BestTicks int // Fastest landing, 0 if never landed
	LastFlown time.Time
}

// SuccessRate returns the share of attempts that landed, in [0, 1].
func (s LevelStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Attempts)
}

// RunSummary aggregates the flights of one run.
type RunSummary struct {
	RunID     string
	Landings  int
	Crashes   int
	Flights   int
	StartedAt time.Time
}

// AllLevelStats retrieves statistics for every level in the log, sorted by level ID.
func (s *Store) AllLevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MIN(CASE WHEN outcome = ? THEN ticks END),
		        MAX(created_at)
		 FROM flights
		 GROUP BY level_id
		 ORDER BY level_id`,
		OutcomeSuccess, OutcomeCrash, OutcomeSkipped, OutcomeSuccess,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var ls LevelStats
		var best sql.NullInt64
		var lastFlown any
		if err := rows.Scan(&ls.LevelID, &ls.Successes, &ls.Crashes, &ls.Skips, &best, &lastFlown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.Attempts = ls.Successes + ls.Crashes
		if best.Valid {
			ls.BestTicks = int(best.Int64)
		}
		ls.LastFlown = parseTime(lastFlown)
		stats = append(stats, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// GetLevelStats retrieves statistics for one level.
// A level that was never flown returns zero counts.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	all, err := s.AllLevelStats()
	if err != nil {
		return nil, err
	}
	for _, ls := range all {
		if ls.LevelID == levelID {
			return &ls, nil
		}
	}
	return &LevelStats{LevelID: levelID}, nil
}

// RecentRuns summarises the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id,
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COUNT(*),
		        MIN(created_at)
		 FROM flights
		 GROUP BY run_id
		 ORDER BY MAX(id) DESC
		 LIMIT ?`,
		OutcomeSuccess, OutcomeCrash, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started any
		if err := rows.Scan(&r.RunID, &r.Landings, &r.Crashes, &r.Flights, &started); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.StartedAt = parseTime(started)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
