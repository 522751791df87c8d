package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoResultFile is returned when a run produced no JSON record in the
// results directory.
var ErrNoResultFile = errors.New("no result file found")

// Collector locates, parses and relocates the result record a run produced.
//
// Selection is by most recent modification time, which is only unambiguous
// because the orchestrator executes runs strictly sequentially. Concurrent
// writers to the results directory would make this selection racy.
type Collector struct {
	ResultsDir string
}

// NewCollector returns a collector reading from dir.
func NewCollector(dir string) *Collector {
	return &Collector{ResultsDir: dir}
}

// Collect picks up the record written by the run described in meta, parses
// and validates it, and renames the consumed file to a run-qualified name so
// a later run cannot pick it up again.
func (c *Collector) Collect(meta RunMetadata) (*Enriched, error) {
	path, err := c.latestResultFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}

	consumed := filepath.Join(c.ResultsDir, fmt.Sprintf("%s_run%d_%s.json",
		meta.Benchmark, meta.RunIndex, meta.Timestamp.Format("20060102_150405")))
	if err := os.Rename(path, consumed); err != nil {
		return nil, fmt.Errorf("failed to relocate consumed result file: %w", err)
	}

	return &Enriched{Measurement: *m, Meta: meta}, nil
}

// latestResultFile returns the most recently modified unconsumed *.json file.
func (c *Collector) latestResultFile() (string, error) {
	entries, err := os.ReadDir(c.ResultsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read results directory %s: %w", c.ResultsDir, err)
	}

	var best string
	var bestMod int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		// Run-qualified names were already consumed by an earlier run.
		if strings.Contains(e.Name(), "_run") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().UnixNano() > bestMod {
			best = filepath.Join(c.ResultsDir, e.Name())
			bestMod = info.ModTime().UnixNano()
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w in %s", ErrNoResultFile, c.ResultsDir)
	}
	return best, nil
}

// LoadDir parses every individual record file in dir, for re-analysis of a
// finished sweep. Unparsable files are skipped with a warning; raw sweep
// dumps (all_results_*.json) are not individual records and are ignored.
func LoadDir(dir string) ([]Enriched, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory %s: %w", dir, err)
	}

	var records []Enriched
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "all_results_") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("could not read result file", "path", path, "error", err)
			continue
		}
		m, err := Parse(data)
		if err != nil {
			slog.Warn("could not parse result file", "path", path, "error", err)
			continue
		}
		records = append(records, Enriched{Measurement: *m})
	}
	return records, nil
}

// Parse decodes a measurement record and validates its required fields.
func Parse(data []byte) (*Measurement, error) {
	var raw struct {
		BenchmarkName     *string  `json:"benchmark_name"`
		EndToEndTimeMs    *float64 `json:"end_to_end_time_ms"`
		MessagesPerSecond *float64 `json:"end_to_end_messages_per_second"`
		QueueTimeMs       *float64 `json:"queue_time_ms"`
		Threads           int      `json:"threads"`
		MessagesLogged    int64    `json:"messages_logged"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	var missing []string
	if raw.BenchmarkName == nil || *raw.BenchmarkName == "" {
		missing = append(missing, "benchmark_name")
	}
	if raw.EndToEndTimeMs == nil {
		missing = append(missing, "end_to_end_time_ms")
	}
	if raw.MessagesPerSecond == nil {
		missing = append(missing, "end_to_end_messages_per_second")
	}
	if raw.QueueTimeMs == nil {
		missing = append(missing, "queue_time_ms")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required field(s) missing: %s", strings.Join(missing, ", "))
	}

	return &Measurement{
		BenchmarkName:     *raw.BenchmarkName,
		EndToEndTimeMs:    *raw.EndToEndTimeMs,
		MessagesPerSecond: *raw.MessagesPerSecond,
		QueueTimeMs:       *raw.QueueTimeMs,
		Threads:           raw.Threads,
		MessagesLogged:    raw.MessagesLogged,
	}, nil
}
