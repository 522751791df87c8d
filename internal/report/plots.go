// Package report renders comparison artifacts from classified statistics:
// grouped-bar charts, distribution box plots, a speedup chart, a textual
// report file and a styled terminal summary.
package report

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"mrbench/internal/classify"
	"mrbench/internal/record"
	"mrbench/internal/stats"
)

var (
	singleThreadColor = color.RGBA{R: 173, G: 216, B: 230, A: 255} // light blue
	multiThreadColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}     // dark blue
)

// plotKind maps a metric key to the file-name prefix of its charts.
func plotKind(metricKey string) string {
	switch metricKey {
	case "messages_per_second":
		return "performance"
	case "queue_time_ms":
		return "queue_time"
	default:
		return "duration"
	}
}

func preferenceNote(m record.Metric) string {
	if m.HigherIsBetter {
		return "More is Better"
	}
	return "Less is Better"
}

// Generator writes chart images and the textual report into PlotsDir.
type Generator struct {
	PlotsDir       string
	Marker         string
	NominalThreads int
}

// Generate renders every chart and the textual report. Empty categories and
// missing pairs degrade gracefully: the corresponding chart is skipped with
// a logged notice.
func (g *Generator) Generate(c classify.Classified, groups map[string]stats.Group, runsRequested int) error {
	if err := os.MkdirAll(g.PlotsDir, 0755); err != nil {
		return fmt.Errorf("failed to create plots directory %s: %w", g.PlotsDir, err)
	}

	categories := []struct {
		name      string
		summaries map[string]map[string]stats.Summary
	}{
		{"Single-Threaded", c.SingleThreaded},
		{"Multi-Threaded", c.MultiThreaded},
	}

	for _, metric := range record.Metrics {
		for _, cat := range categories {
			if err := g.groupedBarChart(cat.summaries, metric, cat.name); err != nil {
				return err
			}
		}
		if err := g.boxPlot(groups, metric); err != nil {
			return err
		}
	}

	pairs, unmatched := classify.Pairs(c, g.Marker)
	for _, name := range unmatched {
		slog.Warn("multi-threaded benchmark has no single-threaded counterpart", "benchmark", name)
	}
	speedups := ComputeSpeedups(c, pairs, groups, g.NominalThreads)
	if err := g.speedupChart(speedups); err != nil {
		return err
	}

	return g.writeTextReport(c, speedups, runsRequested)
}

// groupedBarChart renders one bar cluster per benchmark identity with one
// bar per statistic (min, max, mean, median).
func (g *Generator) groupedBarChart(summaries map[string]map[string]stats.Summary, metric record.Metric, category string) error {
	if len(summaries) == 0 {
		slog.Info("no benchmarks in category, skipping chart", "category", category, "metric", metric.Key)
		return nil
	}

	names := sortedKeys(summaries)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Benchmark %s Statistics (%s)", category, metric.Label, preferenceNote(metric))
	p.X.Label.Text = "Benchmark Type"
	p.Y.Label.Text = metric.Unit
	p.Legend.Top = true

	statistics := []struct {
		label string
		value func(stats.Summary) float64
	}{
		{"Min", func(s stats.Summary) float64 { return s.Min }},
		{"Max", func(s stats.Summary) float64 { return s.Max }},
		{"Mean", func(s stats.Summary) float64 { return s.Mean }},
		{"Median", func(s stats.Summary) float64 { return s.Median }},
	}

	width := vg.Points(15)
	for i, st := range statistics {
		values := make(plotter.Values, len(names))
		for j, name := range names {
			values[j] = st.value(summaries[name][metric.Key])
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("failed to build %s bars: %w", st.label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-1.5) * width

		p.Add(bars)
		p.Legend.Add(st.label, bars)
	}
	p.NominalX(names...)

	path := filepath.Join(g.PlotsDir, fmt.Sprintf("%s_%s.png", plotKind(metric.Key), categorySlug(category)))
	if err := p.Save(14*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	slog.Info("chart saved", "path", path)
	return nil
}

// boxPlot renders the per-run distribution of one metric, one box per
// benchmark identity, colored by execution-model category.
func (g *Generator) boxPlot(groups map[string]stats.Group, metric record.Metric) error {
	series := stats.Series(groups, metric.Key)
	if len(series) == 0 {
		slog.Info("no raw run data, skipping distribution chart", "metric", metric.Key)
		return nil
	}

	names := sortedKeys(series)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Distribution Across Runs", metric.Label)
	p.X.Label.Text = "Benchmark Type"
	p.Y.Label.Text = metric.Unit

	for i, name := range names {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(series[name]))
		if err != nil {
			return fmt.Errorf("failed to build box for %s: %w", name, err)
		}
		if classify.IsMultiThreaded(name, g.Marker) {
			box.FillColor = multiThreadColor
		} else {
			box.FillColor = singleThreadColor
		}
		p.Add(box)
	}
	p.NominalX(names...)

	path := filepath.Join(g.PlotsDir, fmt.Sprintf("%s_distribution.png", plotKind(metric.Key)))
	if err := p.Save(14*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save distribution chart %s: %w", path, err)
	}
	slog.Info("chart saved", "path", path)
	return nil
}

// speedupChart renders the multi- vs single-threaded throughput ratio per
// matched pair, with a dashed reference line at the nominal thread count.
func (g *Generator) speedupChart(speedups []Speedup) error {
	if len(speedups) == 0 {
		slog.Info("no matched benchmark pairs, skipping speedup chart")
		return nil
	}

	names := make([]string, len(speedups))
	values := make(plotter.Values, len(speedups))
	threads := g.NominalThreads
	for i, s := range speedups {
		names[i] = s.Pair.Single
		values[i] = s.Factor
		if s.Threads > 0 {
			threads = s.Threads
		}
	}

	p := plot.New()
	p.Title.Text = "Multi-threaded Speedup vs Single-threaded"
	p.X.Label.Text = "Configuration"
	p.Y.Label.Text = "Speedup Factor"
	p.Legend.Top = true

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("failed to build speedup bars: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	p.Add(bars)

	ideal, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: float64(threads)},
		{X: float64(len(speedups)) - 0.5, Y: float64(threads)},
	})
	if err != nil {
		return fmt.Errorf("failed to build reference line: %w", err)
	}
	ideal.LineStyle.Color = color.RGBA{R: 255, A: 255}
	ideal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(ideal)
	p.Legend.Add(fmt.Sprintf("Ideal speedup (%dx)", threads), ideal)
	p.NominalX(names...)

	path := filepath.Join(g.PlotsDir, "speedup_comparison.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save speedup chart %s: %w", path, err)
	}
	slog.Info("chart saved", "path", path)
	return nil
}

func categorySlug(category string) string {
	return strings.ToLower(strings.ReplaceAll(category, "-", "_"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
