package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rotsim/internal/drift"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/sim"
)

const (
	canvasWidth     = 40
	canvasHeight    = 20
	historyCapacity = 600
	frameInterval   = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an engine from the terminal frame loop. Each frame hands the
// elapsed wall-clock time to the engine clock.
type Model struct {
	engine *sim.Engine
	name   string

	attitude mgl64.Quat
	omega    mgl64.Vec3
	step     float64

	canvas *Canvas
	camera *Camera

	running    bool
	showHelp   bool
	last       time.Time
	frameTicks int

	energy []float64
	rate   []float64
}

// NewModel snapshots the engine's current attitude and rate as the reset
// point.
func NewModel(engine *sim.Engine, name string) Model {
	b := engine.Body()
	return Model{
		engine:   engine,
		name:     name,
		attitude: b.Quaternion(),
		omega:    b.AngularVelocity(),
		step:     engine.Step(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   NewCamera(),
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
		rate:     make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Engine() *sim.Engine { return m.engine }
func (m Model) Running() bool       { return m.running }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		now := time.Time(msg)
		m.frameTicks = 0
		if m.running && !m.last.IsZero() {
			m.frameTicks = m.engine.Simulate(now.Sub(m.last).Seconds())
			if m.frameTicks > 0 {
				m.record()
			}
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "c":
		m.engine.SetCorrection(!m.engine.Corrector().Enabled)
	case "p":
		m.togglePreview()
	case "[":
		m.setStep(m.engine.Step() / 2)
	case "]":
		m.setStep(m.engine.Step() * 2)
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	return m, nil
}

func (m *Model) record() {
	s := m.engine.Sample()
	m.energy = appendCapped(m.energy, s.Total())
	m.rate = appendCapped(m.rate, s.Omega.Len())
}

func appendCapped(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		h = append(h[:0], h[1:]...)
	}
	return append(h, v)
}

// reset restores the starting attitude and rate.
func (m *Model) reset() {
	m.engine.SetOrientationQuat(m.attitude.W, m.attitude.V[0], m.attitude.V[1], m.attitude.V[2])
	m.engine.SetAngularVelocity(m.omega.Len(), m.omega)
	m.energy = m.energy[:0]
	m.rate = m.rate[:0]
}

// togglePreview switches between a frozen attitude (h = 0) and the last
// running step.
func (m *Model) togglePreview() {
	if m.engine.Step() == 0 {
		m.setStep(m.step)
		return
	}
	m.setStep(0)
}

func (m *Model) setStep(h float64) {
	if err := m.engine.SetStep(h); err != nil {
		log.Printf("live: %v", err)
		return
	}
	if h > 0 {
		m.step = h
	}
	log.Printf("live: step %g", h)
}

func (m Model) View() string {
	m.canvas.Clear()
	Render3D(m.canvas, BodyWireframe(m.engine.Body()), m.camera)
	canvasView := canvasStyle.Render(m.canvas.String())

	e := m.engine
	b := e.Body()
	s := e.Sample()
	val := valueStyle()
	row := func(label, format string, args ...any) string {
		return labelStyle.Render(label) + val.Render(fmt.Sprintf(format, args...)) + "\n"
	}

	var out strings.Builder
	title := m.name
	if title == "" {
		title = "rigid body"
	}
	out.WriteString(titleStyle().Render(strings.ToUpper(title)) + "\n")

	status := "RUNNING"
	switch {
	case !m.running:
		status = "PAUSED"
	case e.Step() == 0:
		status = "PREVIEW"
	}
	out.WriteString(statusStyle(m.running).Render(status) + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy"))
		out.WriteString(graphStyle().Render(chart) + "\n\n")
	}

	q := s.QuatWXYZ()
	a1, a2, a3 := b.EulerAngles(rigid.ZYX)
	out.WriteString(row("time", "%.2fs  (%d ticks, %d/frame)", s.Time, s.Tick, m.frameTicks))
	out.WriteString(row("step", "%gs", e.Step()))
	out.WriteString(row("quat", "%+.3f %+.3f %+.3f %+.3f", q[0], q[1], q[2], q[3]))
	out.WriteString(row("ypr", "%+.1f° %+.1f° %+.1f°", a1, a2, a3))
	out.WriteString(row("ω", "%+.3f %+.3f %+.3f", s.Omega[0], s.Omega[1], s.Omega[2]))
	out.WriteString(row("|ω|", "%s", SparklineChart(m.rate, 24)))
	out.WriteString(row("H (inert)", "%+.3f %+.3f %+.3f", s.HInertial[0], s.HInertial[1], s.HInertial[2]))
	out.WriteString(row("torque", "%+.3f %+.3f %+.3f", s.Torque[0], s.Torque[1], s.Torque[2]))
	out.WriteString(row("T / V", "%.5f / %.5f", s.Kinetic, s.Potential))
	out.WriteString(row("drift", "%.2e", drift.Relative(s.Total(), e.Corrector().Baseline().Total)))

	corr := "off"
	if e.Corrector().Enabled {
		corr = s.Correction
	}
	out.WriteString(row("mode", "%s", e.Mode().Kind()))
	out.WriteString(row("correction", "%s", corr))
	out.WriteString(helpStyle.Render("SP:pause R:reset C:correct P:preview\n[ ]:step T:theme ?:help Q:quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(out.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  space     pause / resume
  r         restore the starting attitude and rate
  c         toggle energy drift correction
  p         preview: freeze the attitude (step 0)
  [ ]       halve / double the step
  x y z     rotate the camera (shift reverses)
  + -       zoom
  t         cycle themes
  q         quit
`
