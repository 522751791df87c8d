package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mrbench/internal/classify"
	"mrbench/internal/record"
	"mrbench/internal/stats"
)

// This file centralizes the lipgloss styles used by the terminal summary.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")).
			Bold(true).
			Padding(0, 1)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	benchmarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	speedupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)
)

// RenderTerminal builds the styled summary printed at the end of a sweep.
func RenderTerminal(c classify.Classified, speedups []Speedup) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Benchmark Summary"))
	b.WriteString("\n")

	renderTerminalCategory(&b, "Single-Threaded", c.SingleThreaded)
	renderTerminalCategory(&b, "Multi-Threaded", c.MultiThreaded)

	if len(speedups) > 0 {
		b.WriteString("\n" + categoryStyle.Render("Speedup") + "\n")
		for _, s := range speedups {
			b.WriteString(speedupStyle.Render(
				fmt.Sprintf("%s: %.2fx (%d threads, %.1f%% efficiency)",
					s.Pair.Single, s.Factor, s.Threads, s.Efficiency)) + "\n")
		}
	}

	return b.String()
}

func renderTerminalCategory(b *strings.Builder, title string, summaries map[string]map[string]stats.Summary) {
	if len(summaries) == 0 {
		return
	}
	b.WriteString("\n" + categoryStyle.Render(title) + "\n")
	for _, name := range sortedKeys(summaries) {
		perMetric := summaries[name]
		count := perMetric["messages_per_second"].Count
		b.WriteString(benchmarkStyle.Render(fmt.Sprintf("%s (%d runs)", name, count)) + "\n")
		for _, metric := range record.Metrics {
			s := perMetric[metric.Key]
			b.WriteString(metricStyle.Render(
				fmt.Sprintf("%-12s min=%.2f max=%.2f mean=%.2f median=%.2f",
					metric.Label, s.Min, s.Max, s.Mean, s.Median)) + "\n")
		}
	}
}
