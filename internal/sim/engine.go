package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/drift"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/integrators"
	"github.com/san-kum/rotsim/internal/physics"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/torque"
)

// inPlace is implemented by integrators that can write into a caller buffer.
type inPlace interface {
	StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64)
}

// Engine advances one rigid body. Each tick evaluates the torque, steps ω
// with the integrator, steps the attitude with the trapezoid rule and then
// lets the corrector pull energy back to its baseline.
//
// Engine is not safe for concurrent use; separate engines share nothing.
type Engine struct {
	body       *rigid.Body
	mode       torque.Mode
	corrector  *drift.Corrector
	clock      *Clock
	dyn        *physics.RigidBody
	integrator dynamo.Integrator

	x dynamo.State
	u dynamo.Control

	tick int
	time float64
	last drift.Outcome

	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

// New wraps body with the given torque mode (nil means torque-free) using
// RK4 and the default step.
func New(body *rigid.Body, mode torque.Mode) *Engine {
	if mode == nil {
		mode = torque.None{}
	}
	e := &Engine{
		body:       body,
		mode:       mode,
		corrector:  drift.NewCorrector(),
		clock:      NewClock(dynamo.DefaultStep),
		dyn:        physics.NewRigidBody(body.InertiaMatrix()),
		integrator: integrators.NewRK4(),
		x:          make(dynamo.State, 3),
		u:          make(dynamo.Control, 3),
		last:       drift.NotApplicable,
	}
	e.restart()
	return e
}

func (e *Engine) AddMetric(m dynamo.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Body() *rigid.Body             { return e.body }
func (e *Engine) Mode() torque.Mode             { return e.mode }
func (e *Engine) Clock() *Clock                 { return e.clock }
func (e *Engine) Corrector() *drift.Corrector   { return e.corrector }
func (e *Engine) Step() float64                 { return e.clock.Step }
func (e *Engine) Ticks() int                    { return e.tick }
func (e *Engine) Time() float64                 { return e.time }
func (e *Engine) LastCorrection() drift.Outcome { return e.last }

// SetIntegrator swaps the ω integrator. Attitude always uses the trapezoid.
func (e *Engine) SetIntegrator(i dynamo.Integrator) {
	if i != nil {
		e.integrator = i
	}
}

// SetCorrection toggles drift correction without touching the baseline.
func (e *Engine) SetCorrection(on bool) { e.corrector.Enabled = on }

// restart recaptures the energy baseline, refreshes the displayed torque and
// zeroes the clock. Every explicit edit goes through here.
func (e *Engine) restart() {
	e.body.SetTorque(e.mode.Torque(e.body))
	e.corrector.Capture(e.body, e.mode)
	e.clock.Reset()
	e.tick = 0
	e.time = 0
}

func (e *Engine) Reset() { e.restart() }

func (e *Engine) SetInertia(in rigid.Inertia) error {
	if err := e.body.SetInertia(in); err != nil {
		return err
	}
	e.dyn.SetInertia(e.body.InertiaMatrix())
	e.restart()
	return nil
}

func (e *Engine) SetBox(mass, length, width, height float64) error {
	if err := e.body.SetBox(mass, length, width, height); err != nil {
		return err
	}
	e.dyn.SetInertia(e.body.InertiaMatrix())
	e.restart()
	return nil
}

func (e *Engine) SetOrientationEuler(a1, a2, a3 float64, seq rigid.Sequence) {
	e.body.SetOrientationEuler(a1, a2, a3, seq)
	e.restart()
}

func (e *Engine) SetOrientationQuat(w, x, y, z float64) {
	e.body.SetOrientationQuat(w, x, y, z)
	e.restart()
}

func (e *Engine) SetAngularVelocity(magnitude float64, direction mgl64.Vec3) {
	e.body.SetAngularVelocity(magnitude, direction)
	e.restart()
}

func (e *Engine) SetAngularMomentum(magnitude float64, direction mgl64.Vec3) {
	e.body.SetAngularMomentum(magnitude, direction)
	e.restart()
}

func (e *Engine) SetMode(m torque.Mode) {
	if m == nil {
		m = torque.None{}
	}
	e.mode = m
	e.restart()
}

// SetStep changes h. Zero freezes the attitude so direct edits can be
// previewed without simulated time advancing.
func (e *Engine) SetStep(h float64) error {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("step %v: %w", h, dynamo.ErrParameterBounds)
	}
	e.clock.Step = h
	e.restart()
	return nil
}

// Tick runs one torque, integrate, correct cycle.
func (e *Engine) Tick() {
	b := e.body
	h := e.clock.Step

	tau := e.mode.Torque(b)
	b.SetTorque(tau)

	w0 := b.AngularVelocity()
	copy(e.x, w0[:])
	copy(e.u, tau[:])
	if ip, ok := e.integrator.(inPlace); ok {
		ip.StepInto(e.x, e.dyn, e.x, e.u, e.time, h)
	} else {
		copy(e.x, e.integrator.Step(e.dyn, e.x, e.u, e.time, h))
	}
	w1 := e.x.Vec3()

	b.Advance(integrators.StepAttitude(b.Quaternion(), w0, w1, h), w1)
	e.last = e.corrector.Correct(b, e.mode)

	e.tick++
	e.time += h
	e.emit()
}

// Simulate is called once per frame with the elapsed wall-clock time.
func (e *Engine) Simulate(dt float64) int {
	return e.clock.Simulate(dt, e.Tick)
}

// Sample snapshots the externally visible state.
func (e *Engine) Sample() dynamo.Sample {
	b := e.body
	return dynamo.Sample{
		Tick:       e.tick,
		Time:       e.time,
		Quat:       b.Quaternion(),
		Omega:      b.AngularVelocity(),
		H:          b.AngularMomentum(),
		HInertial:  b.AngularMomentumInertial(),
		Torque:     b.Torque(),
		Kinetic:    b.KineticEnergy(),
		Potential:  torque.Potential(e.mode, b),
		Correction: e.last.String(),
	}
}

func (e *Engine) emit() {
	if len(e.metrics) == 0 && len(e.observers) == 0 {
		return
	}
	s := e.Sample()
	for _, m := range e.metrics {
		m.Observe(s)
	}
	for _, o := range e.observers {
		o.OnTick(s)
	}
}

// Result summarises a batch run.
type Result struct {
	Ticks   int
	Time    float64
	Initial dynamo.Sample
	Final   dynamo.Sample
	Metrics map[string]float64
}

// Run advances whole ticks until duration of simulated time has elapsed,
// bypassing the frame clock. It stops early on cancellation or when the
// state stops being finite.
func (e *Engine) Run(ctx context.Context, duration float64) (*Result, error) {
	h := e.clock.Step
	if h <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v: %w", h, dynamo.ErrParameterBounds)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v: %w", duration, dynamo.ErrParameterBounds)
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	steps := int(math.Round(duration / h))
	result := &Result{
		Initial: e.Sample(),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Observe(result.Initial)
	}

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		e.Tick()
		if !e.valid() {
			runErr = &dynamo.SimulationError{
				Tick:    e.tick,
				Time:    e.time,
				State:   dynamo.FromVec3(e.body.AngularVelocity()),
				Wrapped: dynamo.ErrInvalidState,
			}
			break
		}
	}

	result.Ticks = e.tick
	result.Time = e.time
	result.Final = e.Sample()
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

func (e *Engine) valid() bool {
	q := e.body.Quaternion()
	return dynamo.FromVec3(e.body.AngularVelocity()).IsValid() &&
		dynamo.State{q.W, q.V[0], q.V[1], q.V[2]}.IsValid()
}
