package record

import "time"

// Measurement is the structured result one benchmark execution writes to the
// results directory. Field names follow the JSON emitted by the benchmark
// executables.
type Measurement struct {
	BenchmarkName     string  `json:"benchmark_name"`
	EndToEndTimeMs    float64 `json:"end_to_end_time_ms"`
	MessagesPerSecond float64 `json:"end_to_end_messages_per_second"`
	QueueTimeMs       float64 `json:"queue_time_ms"`

	// Optional context written by some benchmarks.
	Threads        int   `json:"threads,omitempty"`
	MessagesLogged int64 `json:"messages_logged,omitempty"`
}

// RunMetadata describes one orchestrated run. Created by the run executor,
// never mutated after creation.
type RunMetadata struct {
	RunIndex  int           `json:"run_index"`
	WallTime  time.Duration `json:"wall_time"`
	Timestamp time.Time     `json:"timestamp"`
	Benchmark string        `json:"benchmark"`
}

// Enriched pairs a parsed measurement with its run metadata.
type Enriched struct {
	Measurement
	Meta RunMetadata `json:"run_metadata"`
}

// Metric identifies one tracked numeric series across measurements.
type Metric struct {
	Key            string
	Label          string
	Unit           string
	HigherIsBetter bool
}

// Metrics lists the series tracked by the statistics engine and the report
// generator. Values are already unit-normalized by the benchmarks; no
// conversion happens downstream.
var Metrics = []Metric{
	{Key: "duration_ms", Label: "Duration", Unit: "Duration (ms)", HigherIsBetter: false},
	{Key: "messages_per_second", Label: "Throughput", Unit: "Messages per Second", HigherIsBetter: true},
	{Key: "queue_time_ms", Label: "Queue Time", Unit: "Queue Time (ms)", HigherIsBetter: false},
}

// Value returns the measurement's value for the given metric key.
func (m Measurement) Value(key string) float64 {
	switch key {
	case "duration_ms":
		return m.EndToEndTimeMs
	case "messages_per_second":
		return m.MessagesPerSecond
	case "queue_time_ms":
		return m.QueueTimeMs
	}
	return 0
}
