package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mrbench/internal/classify"
	"mrbench/internal/record"
	"mrbench/internal/stats"
)

// writeTextReport mirrors the numeric summary and the speedup/efficiency
// figures into benchmark_report.txt next to the charts.
func (g *Generator) writeTextReport(c classify.Classified, speedups []Speedup, runsRequested int) error {
	path := filepath.Join(g.PlotsDir, "benchmark_report.txt")
	body := RenderText(c, speedups, runsRequested, time.Now())
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	slog.Info("report saved", "path", path)
	return nil
}

// RenderText builds the textual report body.
func RenderText(c classify.Classified, speedups []Speedup, runsRequested int, now time.Time) string {
	var b strings.Builder

	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	b.WriteString("Benchmark Report\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Number of runs per benchmark: %d\n\n", runsRequested)

	b.WriteString("Summary Statistics:\n")
	b.WriteString(thin + "\n")
	writeCategory(&b, "Single-Threaded", c.SingleThreaded)
	writeCategory(&b, "Multi-Threaded", c.MultiThreaded)

	b.WriteString("Multi-threading Efficiency:\n")
	b.WriteString(thin + "\n")
	if len(speedups) == 0 {
		b.WriteString("No matched single-/multi-threaded pairs.\n")
		return b.String()
	}
	for _, s := range speedups {
		single := c.SingleThreaded[s.Pair.Single]["messages_per_second"].Mean
		multi := c.MultiThreaded[s.Pair.Multi]["messages_per_second"].Mean
		fmt.Fprintf(&b, "%s:\n", s.Pair.Single)
		fmt.Fprintf(&b, "  Single-threaded: %.2e msg/s\n", single)
		fmt.Fprintf(&b, "  Multi-threaded (%d threads): %.2e msg/s\n", s.Threads, multi)
		fmt.Fprintf(&b, "  Speedup: %.2fx\n", s.Factor)
		fmt.Fprintf(&b, "  Efficiency: %.1f%%\n\n", s.Efficiency)
	}

	return b.String()
}

func writeCategory(b *strings.Builder, category string, summaries map[string]map[string]stats.Summary) {
	if len(summaries) == 0 {
		return
	}
	fmt.Fprintf(b, "\n[%s]\n", category)
	for _, name := range sortedKeys(summaries) {
		perMetric := summaries[name]
		count := perMetric["messages_per_second"].Count
		fmt.Fprintf(b, "\n%s (%d runs):\n", name, count)
		for _, metric := range record.Metrics {
			s := perMetric[metric.Key]
			fmt.Fprintf(b, "  %s: min=%.2f, max=%.2f, mean=%.2f, median=%.2f",
				metric.Label, s.Min, s.Max, s.Mean, s.Median)
			if s.Count > 1 {
				fmt.Fprintf(b, ", stdev=%.2f", s.Stdev)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}
