// Package storage provides SQLite-based persistence for the flight log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Flight outcomes as recorded in the log.
const (
	OutcomeSuccess = "success"
	OutcomeCrash   = "crash"
	OutcomeSkipped = "skipped"
)

// Store manages the SQLite database connection for the flight log.
type Store struct {
	db *sql.DB
}

// Flight is one resolved attempt at a level.
type Flight struct {
	ID         int64
	RunID      string // Groups the flights of one play session
	LevelID    string
	LevelIndex int
	Outcome    string
	Ticks      int // Simulation ticks from level load to the outcome
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flights_level ON flights(level_id);
		CREATE INDEX IF NOT EXISTS idx_flights_run ON flights(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFlight records a resolved flight.
// Returns the ID of the inserted record.
func (s *Store) SaveFlight(f Flight) (int64, error) {
	switch f.Outcome {
	case OutcomeSuccess, OutcomeCrash, OutcomeSkipped:
	default:
		return 0, fmt.Errorf("storage: unknown outcome %q", f.Outcome)
	}
	if f.RunID == "" {
		return 0, fmt.Errorf("storage: flight without run id")
	}

	result, err := s.db.Exec(
		`INSERT INTO flights (run_id, level_id, level_index, outcome, ticks)
		 VALUES (?, ?, ?, ?, ?)`,
		f.RunID, f.LevelID, f.LevelIndex, f.Outcome, f.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save flight: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentFlights retrieves the latest flights across all runs, newest first.
func (s *Store) RecentFlights(limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, level_index, outcome, ticks, created_at
		 FROM flights
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	return scanFlights(rows)
}

// RunFlights retrieves every flight of one run in the order they were flown.
func (s *Store) RunFlights(runID string) ([]Flight, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, level_index, outcome, ticks, created_at
		 FROM flights
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run flights: %w", err)
	}
	return scanFlights(rows)
}

func scanFlights(rows *sql.Rows) ([]Flight, error) {
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var f Flight
		var createdAt any
		if err := rows.Scan(&f.ID, &f.RunID, &f.LevelID, &f.LevelIndex, &f.Outcome, &f.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return flights, nil
}

// ClearFlights deletes the whole flight log.
func (s *Store) ClearFlights() error {
	if _, err := s.db.Exec("DELETE FROM flights"); err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// parseTime handles both driver-native times and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
