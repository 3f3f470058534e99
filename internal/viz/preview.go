package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gwave/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Preview plays a composer back in the terminal. It is a plain playback
// view: the only key it handles is quit.
type Preview struct {
	composer *sim.Composer
	total    int
	fps      int
	loop     bool
	title    string
	theme    Theme
	styles   styles

	frame int
	pass  int
	last  sim.FrameOutput
	ready bool

	probes *Canvas
	grid   *Canvas
	// history is the displacement magnitude of the reference point.
	history []float64
}

// NewPreview builds a preview that advances c once per tick over total
// frames at fps ticks per second.
func NewPreview(c *sim.Composer, total, fps int, view Viewport) Preview {
	if fps <= 0 {
		fps = 20
	}
	if total <= 0 {
		total = c.Length()
	}
	return Preview{
		composer: c,
		total:    total,
		fps:      fps,
		title:    "gwave",
		theme:    ThemeClassic,
		styles:   newStyles(ThemeClassic),
		probes:   NewCanvas(canvasWidth, canvasHeight, view),
		grid:     NewCanvas(canvasWidth, canvasHeight, view),
		history:  make([]float64, 0, historyCapacity),
	}
}

// WithLoop restarts playback from frame zero after the last frame.
func (m Preview) WithLoop(loop bool) Preview {
	m.loop = loop
	return m
}

func (m Preview) WithTitle(title string) Preview {
	m.title = title
	return m
}

func (m Preview) WithTheme(t Theme) Preview {
	m.theme = t
	m.styles = newStyles(t)
	return m
}

// Frame is the index of the next frame to be composed.
func (m Preview) Frame() int { return m.frame }

func (m Preview) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Preview) Init() tea.Cmd {
	return m.tick()
}

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		if m.frame >= m.total {
			if !m.loop {
				return m, tea.Quit
			}
			m.composer.Reset()
			m.frame = 0
			m.pass++
			m.history = m.history[:0]
		}
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Preview) step() {
	out := m.composer.Advance(m.frame)
	m.frame++
	m.last = out
	m.ready = true

	if len(out.Probes) > 0 {
		p := out.Probes[0]
		ref := 0
		if len(p.Highlights) > 0 {
			ref = p.Highlights[0]
		}
		if ref < len(p.Points) && ref < len(p.Rest) {
			d := r2.Norm(r2.Sub(p.Points[ref], p.Rest[ref]))
			m.history = append(m.history, d)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
	}
	m.draw()
}

func (m *Preview) draw() {
	m.grid.Clear()
	m.probes.Clear()
	for _, line := range m.last.Grid {
		m.grid.Polyline(line)
	}
	for _, p := range m.last.Probes {
		for _, t := range p.Trail {
			m.grid.Polyline(t)
		}
		m.grid.Polyline(p.Trace)
		if p.Edges != nil {
			m.probes.Polyline(p.Edges)
		} else {
			for _, pt := range p.Points {
				m.probes.Plot(pt)
			}
		}
		for _, i := range p.Highlights {
			if i < len(p.Points) {
				m.probes.Marker(p.Points[i])
			}
		}
	}
}

// compose merges the grid layer under the probe layer. Cells touched by a
// probe take the probe color.
func (m Preview) compose() string {
	var b strings.Builder
	for row := range m.probes.Grid {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		onProbe := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if onProbe {
				b.WriteString(m.styles.probe.Render(string(run)))
			} else {
				b.WriteString(m.styles.grid.Render(string(run)))
			}
			run = run[:0]
		}
		for col, pr := range m.probes.Grid[row] {
			gr := m.grid.Grid[row][col]
			probe := pr != brailleBlank
			if probe != onProbe {
				flush()
				onProbe = probe
			}
			run = append(run, pr|gr)
		}
		flush()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Preview) View() string {
	if !m.ready {
		return m.styles.header.Render(strings.ToUpper(m.title)) + "\n" + m.styles.help.Render("waiting for first frame")
	}
	cfg := m.composer.Config()

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	status := "PLAYING"
	if m.loop {
		status = fmt.Sprintf("LOOPING (pass %d)", m.pass+1)
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Displacement"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d/%d", m.last.Frame+1, m.total))
	row("Phase", fmt.Sprintf("%.3f rad", m.last.Phase))
	row("Amplitude", fmt.Sprintf("%.3f", cfg.Polarization.Amplitude))
	row("Ellipticity", fmt.Sprintf("%.3f", cfg.Polarization.Ellipticity))
	row("Theta", fmt.Sprintf("%.1f°", cfg.Polarization.Theta*180/math.Pi))
	s.WriteString(m.styles.label.Render("Progress") + m.styles.progressBar(float64(m.frame)/float64(m.total), 20) + "\n")

	metrics := m.composer.Metrics()
	if len(metrics) > 0 {
		s.WriteString("\n" + m.styles.separator(30) + "\n")
		names := make([]string, 0, len(metrics))
		for k := range metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			row(k, fmt.Sprintf("%.4f", metrics[k]))
		}
	}
	s.WriteString(m.styles.help.Render("\nQ:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.compose(), m.styles.stats.Render(s.String()))
}
