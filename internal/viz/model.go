package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/grid"
)

const (
	barHeight = 14
	speedStep = 5
	tickRate  = time.Second / 10
)

type TickMsg time.Time

// Model holds the UI state around one engine. The engine owns run state;
// the model keeps only the latest frame and view toggles.
type Model struct {
	eng      *engine.Engine
	reg      *algo.Registry
	keys     []string
	frame    engine.Frame
	showHelp bool
	err      error
}

func NewModel(eng *engine.Engine, reg *algo.Registry) Model {
	return Model{
		eng:   eng,
		reg:   reg,
		keys:  reg.Keys(),
		frame: eng.Preview(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles keys and incoming frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", "s":
			m.err = nil
			if err := m.eng.Toggle(context.Background()); err != nil && !errors.Is(err, engine.ErrNotIdle) {
				m.err = err
			}
		case " ", "space", "p":
			switch m.eng.State() {
			case engine.Running:
				m.eng.Pause()
			case engine.Paused:
				m.eng.Resume()
			}
		case "r":
			m.eng.Reset()
			m.frame = m.eng.Preview()
		case "tab":
			m.selectOffset(1)
		case "shift+tab":
			m.selectOffset(-1)
		case "+", "=":
			m.eng.SetSpeed(m.eng.Speed() + speedStep)
		case "-", "_":
			m.eng.SetSpeed(m.eng.Speed() - speedStep)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case FrameMsg:
		if msg.RunID == m.eng.RunID() {
			m.frame = engine.Frame(msg)
		}
	case TickMsg:
		if err := m.eng.Err(); err != nil {
			m.err = err
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) selectOffset(d int) {
	cur := m.eng.Algorithm()
	idx := 0
	for i, k := range m.keys {
		if k == cur {
			idx = i
			break
		}
	}
	next := m.keys[(idx+d+len(m.keys))%len(m.keys)]
	m.eng.Select(next)
	m.frame = m.eng.Preview()
}

func (m Model) View() string {
	info := m.reg.Info(m.frame.Algorithm)

	var canvas string
	if m.frame.IsGrid() {
		canvas = renderGrid(m.frame.Graph.Grid)
	} else {
		canvas = renderBars(m.frame)
	}

	var left strings.Builder
	left.WriteString(headerStyle().Render(info.Name) + "\n")
	left.WriteString(lipgloss.NewStyle().Width(60).Foreground(CurrentTheme.Muted).Render(info.Description) + "\n\n")
	left.WriteString(canvas + "\n\n")
	left.WriteString(fg(CurrentTheme.Text).Render(m.frame.Status))
	if m.err != nil {
		left.WriteString("\n" + fg(CurrentTheme.Warning).Render("error: "+m.err.Error()))
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(left.String()), statsStyle.Render(m.stats()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) stats() string {
	var s strings.Builder
	s.WriteString(stateBadge(m.eng.State()) + "\n\n")

	speed := m.eng.Speed()
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d", speed)) + "\n")
	s.WriteString(labelStyle.Render("Delay") + valueStyle.Render(engine.DelayFor(speed).String()) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.frame.Seq)) + "\n")

	metrics := m.eng.Metrics()
	var series []float64
	caption := ""
	if m.frame.IsGrid() {
		s.WriteString(labelStyle.Render("Visited") + valueStyle.Render(fmt.Sprintf("%d", m.frame.Graph.Grid.VisitedCount())) + "\n")
		s.WriteString(labelStyle.Render("Path") + valueStyle.Render(fmt.Sprintf("%.0f", metrics["path_length"])) + "\n")
		total := len(m.frame.Graph.Grid.Nodes)
		if total > 0 {
			s.WriteString(labelStyle.Render("Explored") + ProgressBar(float64(m.frame.Graph.Grid.VisitedCount())/float64(total), 16) + "\n")
		}
		series, caption = m.eng.Series("visited"), "Visited"
	} else {
		s.WriteString(labelStyle.Render("Inversions") + valueStyle.Render(fmt.Sprintf("%.0f", metrics["inversions"])) + "\n")
		n := len(m.frame.Sort.Values)
		if n > 0 {
			s.WriteString(labelStyle.Render("Sorted") + ProgressBar(float64(len(m.frame.Sort.Sorted))/float64(n), 16) + "\n")
		}
		series, caption = m.eng.Series("inversions"), "Inversions"
	}

	if m.frame.RunID == m.eng.RunID() && len(series) > 1 {
		chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nEnter:Start SP:Pause R:Reset\nTab:Algo +/-:Speed T:Theme\n?:Help Q:Quit"))
	return s.String()
}

func stateBadge(s engine.State) string {
	switch s {
	case engine.Running:
		return StatusRunning.Render("RUNNING")
	case engine.Paused:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusIdle.Render("IDLE")
	}
}

func renderBars(f engine.Frame) string {
	values := f.Sort.Values
	if len(values) == 0 {
		return subtle().Render("(empty sequence)")
	}

	maxVal := 1
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	gap := ""
	if len(values) <= 40 {
		gap = " "
	}

	bar, active, sorted := fg(CurrentTheme.Primary), fg(CurrentTheme.Warning), fg(CurrentTheme.Success)
	var b strings.Builder
	for row := 0; row < barHeight; row++ {
		level := barHeight - row
		for i, v := range values {
			if max(1, v*barHeight/maxVal) < level {
				b.WriteString(" " + gap)
				continue
			}
			style := bar
			switch {
			case f.Sort.IsActive(i):
				style = active
			case f.Sort.IsSorted(i):
				style = sorted
			}
			b.WriteString(style.Render("█") + gap)
		}
		if row < barHeight-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderGrid(s grid.Snapshot) string {
	var b strings.Builder
	for r := 0; r < s.Rows; r++ {
		for _, n := range s.Row(r) {
			b.WriteString(cell(n) + " ")
		}
		if r < s.Rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func cell(n grid.Node) string {
	switch {
	case n.IsStart:
		return fg(CurrentTheme.Success).Render("S")
	case n.IsEnd:
		return fg(CurrentTheme.Error).Render("E")
	case n.Wall:
		return fg(CurrentTheme.Muted).Render("▓")
	case n.IsPath:
		return fg(CurrentTheme.Accent).Render("●")
	case n.Visited:
		return fg(CurrentTheme.Secondary).Render("■")
	default:
		return fg(CurrentTheme.Muted).Render("·")
	}
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Enter/S   - Start or resume         ║
║  Space/P   - Pause/Resume            ║
║  R         - Reset with new input    ║
║  Tab       - Next algorithm          ║
║  Shift+Tab - Previous algorithm      ║
║  +/-       - Speed up/slow down      ║
║  T         - Cycle themes            ║
║  ?         - Toggle this help        ║
║  Q         - Quit                    ║
╚══════════════════════════════════════╝`
