package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
	"go.uber.org/zap"
)

const (
	width           = 48
	height          = 22
	historyCapacity = 240
)

type TickMsg time.Time

// Model is the interactive frontend. It is both the input source and the
// renderer of its loop: key presses queue events which the next frame tick
// hands to the controller.
type Model struct {
	ctrl     *sim.Controller
	loop     *sim.Loop
	keys     Keymap
	pending  []dynamo.Event
	frame    sim.Frame
	canvas   *Canvas
	angles   []float64
	energies []float64
	samples  int
	interval time.Duration
	lastErr  string
	showHelp bool
}

func NewModel(ctrl *sim.Controller, logger *zap.Logger) *Model {
	m := &Model{
		ctrl:     ctrl,
		canvas:   NewCanvas(width, height),
		angles:   make([]float64, 0, historyCapacity),
		energies: make([]float64, 0, historyCapacity),
		interval: time.Duration(ctrl.Dt() * float64(time.Second)),
	}
	m.loop = sim.NewLoop(ctrl, m, m, logger)
	m.Render(ctrl.Frame())
	return m
}

// Poll implements sim.InputSource.
func (m *Model) Poll() []dynamo.Event {
	events := m.pending
	m.pending = nil
	return events
}

// Render implements sim.Renderer.
func (m *Model) Render(f sim.Frame) {
	m.frame = f
	m.keys.Sync(f.Mode)

	if f.Samples < m.samples {
		m.angles = m.angles[:0]
		m.energies = m.energies[:0]
		m.samples = 0
	}
	if f.Samples > m.samples {
		m.angles = pushCapped(m.angles, f.Angle()*180/math.Pi)
		m.energies = pushCapped(m.energies, f.Energy)
	}
	m.samples = f.Samples

	m.draw()
}

func pushCapped(xs []float64, x float64) []float64 {
	if len(xs) == historyCapacity {
		copy(xs, xs[1:])
		xs = xs[:len(xs)-1]
	}
	return append(xs, x)
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update queues key presses and steps the loop on every frame tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "?" {
			m.showHelp = !m.showHelp
			return m, nil
		}
		m.pending = append(m.pending, m.keys.Map(msg.String())...)
	case TickMsg:
		if err := m.loop.Step(); err != nil {
			m.lastErr = err.Error()
		}
		if m.ctrl.Terminated() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// project maps metres relative to the pivot onto canvas pixels. The scale
// fits the longest allowed bar.
func (m *Model) project(p physics.Point) (float64, float64) {
	cw, ch := m.canvas.PixelSize()
	scale := float64(min(cw, ch)/2-2) / params.SpecOf(params.Length).Max
	return float64(cw/2) + p.X*scale, float64(ch/2) + p.Y*scale
}

func (m *Model) draw() {
	m.canvas.Clear()

	bar := physics.Bar(m.frame.Angle(), m.frame.Params)
	var xs, ys [4]float64
	for i, c := range bar.Corners {
		xs[i], ys[i] = m.project(c)
	}
	m.canvas.FillPolygon(xs[:], ys[:])

	px, py := m.project(physics.Point{})
	cx, cy := round(px), round(py)
	m.canvas.DrawLine(cx-5, cy-8, cx+5, cy-8)
	m.canvas.DrawLine(cx, cy, cx-4, cy-8)
	m.canvas.DrawLine(cx, cy, cx+4, cy-8)
}

func (m *Model) View() string {
	f := m.frame
	var s strings.Builder

	s.WriteString(headerStyle.Render("PENDULUM") + "\n")
	s.WriteString(statusStyle(f.Mode).Render(strings.ToUpper(f.Mode.String())) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", f.Time))
	row("Angle", fmt.Sprintf("%.1f°", f.Angle()*180/math.Pi))
	row("Energy", fmt.Sprintf("%.3f mJ", f.Energy*1000))
	row("Samples", fmt.Sprintf("%d", f.Samples))
	row("", SparklineChart(m.energies, 30))

	if len(m.angles) > 1 {
		chart := asciigraph.Plot(m.angles, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("angle (deg)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for _, id := range params.IDs() {
		spec := params.SpecOf(id)
		frac := (f.Params.Get(id) - spec.Min) / (spec.Max - spec.Min)
		line := ProgressBar(frac, 10) + " " + params.Format(id, f.Params)
		if f.Mode == dynamo.Configuring && id == f.Selected {
			mark := ""
			switch {
			case f.Held > 0:
				mark = " ▲"
			case f.Held < 0:
				mark = " ▼"
			}
			s.WriteString(activeParamStyle.Render("> "+line+mark) + "\n")
		} else {
			s.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}

	if m.lastErr != "" {
		s.WriteString("\n" + errorStyle.Render(m.lastErr) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(helpText))
	} else {
		s.WriteString(helpStyle.Render("SP:Run/Pause R:Reset P:Plot Esc:Config Q:Quit ?:Help"))
	}

	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
}

const helpText = `Space   run / pause
R       reset to the initial amplitude
P       export the run and pause
Esc, C  enter configure (Esc or Enter leaves)
Up/Down select parameter
Right   start or stop increasing
Left    start or stop decreasing
Q       quit`

// Run starts the interactive program and blocks until the user quits.
func Run(ctrl *sim.Controller, logger *zap.Logger) error {
	_, err := tea.NewProgram(NewModel(ctrl, logger), tea.WithAltScreen()).Run()
	return err
}
