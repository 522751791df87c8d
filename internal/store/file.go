package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mrbench/internal/record"
)

// SaveRaw dumps the sweep's surviving records as one timestamped JSON file
// in dir, for offline re-analysis. Returns the written path.
func SaveRaw(dir string, records []record.Enriched, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("all_results_%s.json", now.Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write raw results: %w", err)
	}
	return path, nil
}

// LoadRaw reads a raw results dump written by SaveRaw.
func LoadRaw(path string) ([]record.Enriched, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []record.Enriched
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw results %s: %w", path, err)
	}
	return records, nil
}
