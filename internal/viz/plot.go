package viz

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/record"
	"github.com/san-kum/rotsim/internal/sim"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow}

// Plot charts one or more named sample series (see record.SeriesNames) on a
// shared axis.
func Plot(samples []dynamo.Sample, names []string, height, width int) (string, error) {
	if len(samples) < 2 {
		return "", fmt.Errorf("need at least two samples to plot, got %d", len(samples))
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no series to plot")
	}
	data := make([][]float64, 0, len(names))
	for _, name := range names {
		s, err := record.Series(samples, name)
		if err != nil {
			return "", err
		}
		data = append(data, s)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(strings.Join(names, ", ") + " vs time"),
	}
	if len(data) > 1 {
		n := min(len(data), len(seriesColors))
		opts = append(opts,
			asciigraph.SeriesColors(seriesColors[:n]...),
			asciigraph.SeriesLegends(names[:n]...),
		)
	}
	return asciigraph.PlotMany(data, opts...), nil
}

// Summary renders the start and end state of a run with its metrics.
func Summary(title string, res *sim.Result) string {
	if res == nil {
		return ""
	}
	val := valueStyle()
	row := func(label, format string, args ...any) string {
		return labelStyle.Render(label) + val.Render(fmt.Sprintf(format, args...)) + "\n"
	}
	vec := func(v [3]float64) string { return fmt.Sprintf("%+.5f %+.5f %+.5f", v[0], v[1], v[2]) }

	var b strings.Builder
	b.WriteString(titleStyle().Render(title) + "\n")
	b.WriteString(row("ticks", "%d", res.Ticks))
	b.WriteString(row("time", "%.4fs", res.Time))
	b.WriteString(row("ω start", "%s", vec(res.Initial.Omega)))
	b.WriteString(row("ω end", "%s", vec(res.Final.Omega)))
	b.WriteString(row("H end", "%s", vec(res.Final.HInertial)))
	b.WriteString(row("energy", "%.6f → %.6f", res.Initial.Total(), res.Final.Total()))
	for _, name := range slices.Sorted(maps.Keys(res.Metrics)) {
		b.WriteString(row(name, "%.6g", res.Metrics[name]))
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(CurrentTheme.Muted).Padding(0, 1).Render(b.String())
}
