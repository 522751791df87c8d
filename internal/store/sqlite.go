// Package store persists sweep results: a raw JSON dump per sweep and a
// SQLite history of per-benchmark means for cross-sweep comparison.
package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"mrbench/internal/stats"
)

// BenchmarkMean is the per-benchmark digest kept in the history database.
type BenchmarkMean struct {
	Benchmark      string  `json:"benchmark"`
	MeanThroughput float64 `json:"mean_throughput"`
	MeanDurationMs float64 `json:"mean_duration_ms"`
	RunCount       int     `json:"run_count"`
}

// Sweep is one recorded pipeline invocation.
type Sweep struct {
	ID            int64           `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	RunsRequested int             `json:"runs_requested"`
	Results       []BenchmarkMean `json:"results"`
}

// History stores sweeps in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens (and migrates) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sweeps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		runs_requested INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS sweep_results (
		sweep_id INTEGER NOT NULL REFERENCES sweeps(id),
		benchmark TEXT NOT NULL,
		mean_throughput REAL NOT NULL,
		mean_duration_ms REAL NOT NULL,
		run_count INTEGER NOT NULL
	);
	`
	_, err := h.db.Exec(query)
	return err
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveSweep records one sweep and its per-benchmark means.
func (h *History) SaveSweep(runsRequested int, summaries map[string]map[string]stats.Summary, at time.Time) (int64, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO sweeps (created_at, runs_requested) VALUES (?, ?)",
		at.UTC(), runsRequested)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sweep: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		throughput := summaries[name]["messages_per_second"]
		duration := summaries[name]["duration_ms"]
		_, err := tx.Exec(
			"INSERT INTO sweep_results (sweep_id, benchmark, mean_throughput, mean_duration_ms, run_count) VALUES (?, ?, ?, ?, ?)",
			id, name, throughput.Mean, duration.Mean, throughput.Count)
		if err != nil {
			return 0, fmt.Errorf("failed to insert result for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSweeps returns up to limit sweeps, most recent first, with results.
func (h *History) ListSweeps(limit int) ([]Sweep, error) {
	rows, err := h.db.Query(
		"SELECT id, created_at, runs_requested FROM sweeps ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweeps: %w", err)
	}
	defer rows.Close()

	var sweeps []Sweep
	for rows.Next() {
		var s Sweep
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.RunsRequested); err != nil {
			return nil, err
		}
		sweeps = append(sweeps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sweeps {
		results, err := h.sweepResults(sweeps[i].ID)
		if err != nil {
			return nil, err
		}
		sweeps[i].Results = results
	}
	return sweeps, nil
}

func (h *History) sweepResults(sweepID int64) ([]BenchmarkMean, error) {
	rows, err := h.db.Query(
		"SELECT benchmark, mean_throughput, mean_duration_ms, run_count FROM sweep_results WHERE sweep_id = ? ORDER BY benchmark",
		sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep results: %w", err)
	}
	defer rows.Close()

	var results []BenchmarkMean
	for rows.Next() {
		var r BenchmarkMean
		if err := rows.Scan(&r.Benchmark, &r.MeanThroughput, &r.MeanDurationMs, &r.RunCount); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LatestTwo returns the previous and the most recent sweep, or nil for
// whichever does not exist yet.
func (h *History) LatestTwo() (prev, curr *Sweep, err error) {
	sweeps, err := h.ListSweeps(2)
	if err != nil {
		return nil, nil, err
	}
	if len(sweeps) >= 1 {
		curr = &sweeps[0]
	}
	if len(sweeps) >= 2 {
		prev = &sweeps[1]
	}
	return prev, curr, nil
}
