package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	probe  lipgloss.Style
	grid   lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	high   lipgloss.Style
	mid    lipgloss.Style
	low    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		probe:  lipgloss.NewStyle().Foreground(t.Probe),
		grid:   lipgloss.NewStyle().Foreground(t.Grid),
		stats:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(45),
		header: lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Label).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Value),
		graph:  lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		high:   lipgloss.NewStyle().Foreground(t.High),
		mid:    lipgloss.NewStyle().Foreground(t.Mid),
		low:    lipgloss.NewStyle().Foreground(t.Low),
	}
}

// progressBar renders a fraction in [0,1] as a width-cell bar.
func (s styles) progressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case frac > 0.8:
		return s.high.Render(bar)
	case frac > 0.4:
		return s.mid.Render(bar)
	}
	return s.low.Render(bar)
}

func (s styles) separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.help.Render(left + " ◆ " + right)
}
