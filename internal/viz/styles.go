package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(46)

	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).MarginBottom(1)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func statusStyle(running bool) lipgloss.Style {
	if running {
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Warning)
}

func graphStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
}

// SparklineChart renders values as a one-line bar strip of the given width.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var out strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		out.WriteRune(chars[idx])
	}
	return out.String()
}
