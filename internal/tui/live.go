// Package tui is the interactive terminal front end: a top-down orbit view on
// a braille canvas next to a live diagnostics sidebar.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	canvasWidth  = 80
	canvasHeight = 26

	trailCapacity   = 500
	historyCapacity = 600
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives the live view. The simulation is stepped from Update on tick
// messages, so everything stays on the bubbletea goroutine.
type Model struct {
	sim      *sim.Simulation
	scenario string

	canvas *Canvas
	scale  float64 // AU from the view center to the canvas edge
	trails [][]vec.Vec3

	driftHistory []float64
	err          error
	showHelp     bool
}

func NewModel(s *sim.Simulation, scenario string) Model {
	snap := s.Snapshot()

	// Fit the widest orbit with some margin.
	maxR := 1.0
	for _, b := range snap.Bodies {
		if r := b.Position.Norm(); r > maxR {
			maxR = r
		}
	}

	return Model{
		sim:      s,
		scenario: scenario,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		scale:    maxR * 1.3,
		trails:   make([][]vec.Vec3, len(snap.Bodies)),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.TogglePause()
		case "+", "=":
			m.sim.SetTimeScale(m.sim.TimeScale() * 2)
		case "-", "_":
			m.sim.SetTimeScale(m.sim.TimeScale() / 2)
		case "r":
			m.sim.SetRelativity(!m.sim.Config().Relativity)
		case "[":
			m.scale *= 1.25
		case "]":
			m.scale /= 1.25
		case "tab":
			n := len(m.sim.Snapshot().Bodies)
			_ = m.sim.SelectBody((m.sim.Selected() + 1) % n)
		case "?":
			m.showHelp = !m.showHelp
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				// Ignore out-of-range digits.
				_ = m.sim.SelectBody(int(key[0] - '1'))
			}
		}
	case TickMsg:
		if m.err != nil {
			return m, nil
		}
		if err := m.sim.Advance(); err != nil {
			m.err = err
			return m, nil
		}
		m.record()
		return m, tick()
	}
	return m, nil
}

// record appends the current positions to the trails and the energy drift to
// the chart history.
func (m *Model) record() {
	snap := m.sim.Snapshot()
	for i, b := range snap.Bodies {
		m.trails[i] = append(m.trails[i], b.Position)
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
	m.driftHistory = append(m.driftHistory, m.sim.Conservation().Energy)
	if len(m.driftHistory) > historyCapacity {
		m.driftHistory = m.driftHistory[1:]
	}
}

// project maps a position in AU to braille dot coordinates, top-down onto the
// xy plane with y up.
func (m *Model) project(p vec.Vec3) (int, int) {
	cw, ch := float64(m.canvas.Width*2), float64(m.canvas.Height*4)
	x := cw/2 + p.X/m.scale*cw/2
	y := ch/2 - p.Y/m.scale*ch/2
	return int(math.Round(x)), int(math.Round(y))
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for _, p := range trail {
			x, y := m.project(p)
			m.canvas.Set(x, y)
		}
	}
	snap := m.sim.Snapshot()
	for i, b := range snap.Bodies {
		x, y := m.project(b.Position)
		marker := '●'
		if i == m.sim.Selected() {
			marker = '◉'
		}
		m.canvas.SetCell(x/2, y/4, marker)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.sim.Paused():
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	}

	if len(m.driftHistory) > 1 {
		chart := asciigraph.Plot(m.driftHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("|ΔE/E|"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f yr", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%gx", m.sim.TimeScale())) + "\n")
	rel := "off"
	if m.sim.Config().Relativity {
		rel = "1PN on"
	}
	s.WriteString(labelStyle.Render("Relativity") + valueStyle.Render(rel) + "\n")
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(fmt.Sprintf("±%.2f AU", m.scale)) + "\n")

	s.WriteString("\nBODIES\n")
	snap := m.sim.Snapshot()
	for i, b := range snap.Bodies {
		line := fmt.Sprintf("%d %-10s", i+1, b.Name)
		if el, err := m.sim.ElementsOf(i); err == nil {
			line += fmt.Sprintf(" a=%.3f e=%.3f", el.SemiMajorAxis, el.Eccentricity)
		}
		if i == m.sim.Selected() {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause +/-:Speed R:Relativity\n[ ]:Zoom 1-9:Select ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  + / -    - Double/halve sim speed   ║
║  R        - Toggle 1PN correction    ║
║  [ / ]    - Zoom out / in            ║
║  1-9      - Select body              ║
║  Tab      - Cycle selection          ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulation, scenario string) error {
	p := tea.NewProgram(NewModel(s, scenario), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
