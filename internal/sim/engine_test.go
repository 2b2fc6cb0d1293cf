package sim_test

import (
	"context"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rotsim/internal/drift"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/integrators"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/sim"
	"github.com/san-kum/rotsim/internal/torque"
)

type observerFunc func(dynamo.Sample)

func (f observerFunc) OnTick(s dynamo.Sample) { f(s) }

func newEngine(ixx, iyy, izz float64, mode torque.Mode) *sim.Engine {
	b, err := rigid.NewBody(1, rigid.Principal(ixx, iyy, izz))
	Expect(err).NotTo(HaveOccurred())
	return sim.New(b, mode)
}

func ticks(e *sim.Engine, n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

func tumble() mgl64.Vec3 { return mgl64.Vec3{0.5, 0.8, 1.0} }

var _ = Describe("Engine", func() {
	It("keeps the attitude quaternion at unit length", func() {
		e := newEngine(1, 2, 3, nil)
		e.SetAngularVelocity(2, mgl64.Vec3{1, 1, 1})
		worst := 0.0
		e.AddObserver(observerFunc(func(s dynamo.Sample) {
			worst = math.Max(worst, math.Abs(s.Quat.Len()-1))
		}))
		ticks(e, 2000)
		Expect(worst).To(BeNumerically("<", 1e-9))
	})

	Describe("torque-free motion", func() {
		It("conserves momentum and energy about a principal axis", func() {
			e := newEngine(1, 2, 3, torque.None{})
			e.SetAngularVelocity(0.5, mgl64.Vec3{1, 0, 0})
			h0 := e.Body().AngularMomentumMagnitude()
			t0 := e.Body().KineticEnergy()

			ticks(e, 400)

			Expect(e.Time()).To(BeNumerically("~", 1.0, 1e-12))
			Expect(drift.Relative(e.Body().AngularMomentumMagnitude(), h0)).To(BeNumerically("<", 1e-6))
			Expect(drift.Relative(e.Body().KineticEnergy(), t0)).To(BeNumerically("<", 1e-6))
		})

		It("conserves momentum and energy while tumbling", func() {
			e := newEngine(1, 2, 3, torque.None{})
			e.SetAngularVelocity(tumble().Len(), tumble())
			h0 := e.Body().AngularMomentumMagnitude()
			t0 := e.Body().KineticEnergy()

			ticks(e, 4000)

			Expect(drift.Relative(e.Body().AngularMomentumMagnitude(), h0)).To(BeNumerically("<", 1e-6))
			Expect(drift.Relative(e.Body().KineticEnergy(), t0)).To(BeNumerically("<", 1e-6))
		})

		It("drifts more without correction", func() {
			worst := func(correct bool) float64 {
				e := newEngine(1, 2, 3, torque.None{})
				Expect(e.SetStep(0.05)).To(Succeed())
				e.SetCorrection(correct)
				e.SetAngularVelocity(2, mgl64.Vec3{1, 1, 1})
				t0 := e.Body().KineticEnergy()
				peak := 0.0
				e.AddObserver(observerFunc(func(s dynamo.Sample) {
					peak = math.Max(peak, drift.Relative(s.Kinetic, t0))
				}))
				ticks(e, 2000)
				return peak
			}
			Expect(worst(false)).To(BeNumerically(">", worst(true)))
		})

		It("leaves a symmetric spin untouched", func() {
			e := newEngine(1, 2, 2, torque.None{})
			e.SetAngularVelocity(3, mgl64.Vec3{1, 0, 0})
			Expect(e.Body().Symmetry()).To(Equal(rigid.SymmetryX))

			ticks(e, 1000)

			w := e.Body().AngularVelocity()
			Expect(w[0]).To(Equal(3.0))
			Expect(w[1]).To(Equal(0.0))
			Expect(w[2]).To(Equal(0.0))
			Expect(e.LastCorrection()).To(Equal(drift.Applied))
		})
	})

	It("spins up under a body-fixed torque", func() {
		e := newEngine(1, 2, 3, torque.NewBodyFrame(1, mgl64.Vec3{0, 0, 1}))
		ticks(e, 400)

		w := e.Body().AngularVelocity()
		Expect(w[2]).To(BeNumerically("~", 1.0/3.0, 1e-9))
		Expect(w[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(w[1]).To(BeNumerically("~", 0, 1e-12))
		Expect(e.Body().Torque()).To(Equal(mgl64.Vec3{0, 0, 1}))
		Expect(e.LastCorrection()).To(Equal(drift.NotApplicable))
	})

	It("matches the analytic spin-up with the Euler integrator", func() {
		e := newEngine(1, 2, 3, torque.NewBodyFrame(1, mgl64.Vec3{0, 0, 1}))
		e.SetIntegrator(integrators.NewEuler())
		ticks(e, 400)
		Expect(e.Body().AngularVelocity()[2]).To(BeNumerically("~", 1.0/3.0, 1e-9))
	})

	It("holds total energy inside the band under gravity gradient", func() {
		g := torque.GravityGradient{K: 1, Axis: rigid.ZDown}
		e := newEngine(1, 2, 3, g)
		e.SetOrientationEuler(20, 30, 40, rigid.XYZ)
		e.SetAngularVelocity(tumble().Len(), tumble())
		e0 := e.Corrector().Baseline().Total

		worst := 0.0
		e.AddObserver(observerFunc(func(s dynamo.Sample) {
			worst = math.Max(worst, drift.Relative(s.Total(), e0))
		}))
		ticks(e, 4000)
		Expect(worst).To(BeNumerically("<", drift.DefaultBand))
	})

	It("damps rates into the ACS deadband", func() {
		const (
			deadband  = 0.01
			magnitude = 0.5
		)
		e := newEngine(1, 2, 3, torque.ACSStabilization{Deadband: deadband, Magnitude: magnitude})
		w := mgl64.Vec3{0.3, -0.2, 0.1}
		e.SetAngularVelocity(w.Len(), w)

		ticks(e, 2000)

		limit := deadband + 2*magnitude*e.Step()
		for i := 0; i < 2000; i++ {
			e.Tick()
			for _, c := range e.Body().AngularVelocity() {
				Expect(math.Abs(c)).To(BeNumerically("<=", limit))
			}
		}
	})

	It("is deterministic for identical frame sequences", func() {
		frames := []float64{0.016, 0.017, 0.03, 0.2, 0.001, 0.016}
		run := func() (*sim.Engine, int) {
			e := newEngine(1, 2, 3, torque.GravityGradient{K: 1, Axis: rigid.ZDown})
			e.SetOrientationEuler(10, 20, 30, rigid.ZYX)
			e.SetAngularVelocity(1, mgl64.Vec3{1, 2, 3})
			n := 0
			for i := 0; i < 300; i++ {
				n += e.Simulate(frames[i%len(frames)])
			}
			return e, n
		}
		a, na := run()
		b, nb := run()
		Expect(na).To(Equal(nb))
		Expect(a.Body().Quaternion()).To(Equal(b.Body().Quaternion()))
		Expect(a.Body().AngularVelocity()).To(Equal(b.Body().AngularVelocity()))
	})

	It("freezes the attitude when the step is zero", func() {
		e := newEngine(1, 2, 3, torque.None{})
		e.SetOrientationEuler(10, 20, 30, rigid.XYZ)
		e.SetAngularVelocity(1, mgl64.Vec3{1, 1, 0})
		Expect(e.SetStep(0)).To(Succeed())
		q := e.Body().Quaternion()
		w := e.Body().AngularVelocity()

		Expect(e.Simulate(0.016)).To(Equal(10))
		Expect(e.Body().Quaternion()).To(Equal(q))
		Expect(e.Body().AngularVelocity()).To(Equal(w))
		Expect(e.Time()).To(BeZero())
	})

	It("rejects a negative step", func() {
		e := newEngine(1, 2, 3, nil)
		Expect(errors.Is(e.SetStep(-1), dynamo.ErrParameterBounds)).To(BeTrue())
		Expect(e.Step()).To(Equal(dynamo.DefaultStep))
	})

	Describe("explicit edits", func() {
		var e *sim.Engine

		BeforeEach(func() {
			e = newEngine(1, 2, 3, torque.None{})
			e.SetAngularVelocity(1, mgl64.Vec3{1, 1, 1})
			e.Simulate(0.021)
			Expect(e.Ticks()).To(Equal(9))
		})

		It("reset the clock and recapture the baseline", func() {
			e.SetAngularVelocity(2, mgl64.Vec3{0, 0, 1})
			Expect(e.Ticks()).To(BeZero())
			Expect(e.Clock().SimulationTime).To(BeZero())
			Expect(e.Clock().RealTime).To(BeZero())
			Expect(e.Corrector().Baseline().Kinetic).To(Equal(e.Body().KineticEnergy()))
		})

		It("refresh the torque when the mode changes", func() {
			e.SetMode(torque.NewBodyFrame(2, mgl64.Vec3{1, 0, 0}))
			Expect(e.Body().Torque()).To(Equal(mgl64.Vec3{2, 0, 0}))
			Expect(e.Mode().Kind()).To(Equal(torque.KindBodyFrame))
		})

		It("keep the old mass properties on a degenerate box", func() {
			before := e.Body().Moments()
			err := e.SetBox(1, 1, 0, 0)
			Expect(errors.Is(err, dynamo.ErrDegenerateGeometry)).To(BeTrue())
			Expect(e.Body().Moments()).To(Equal(before))
			Expect(e.Ticks()).To(Equal(9))
		})

		It("feed new inertia to the integrator", func() {
			Expect(e.SetInertia(rigid.Principal(2, 2, 2))).To(Succeed())
			e.SetAngularVelocity(1, mgl64.Vec3{1, 2, 3})
			w := e.Body().AngularVelocity()
			ticks(e, 100)
			Expect(e.Body().AngularVelocity()).To(Equal(w))
		})
	})

	Describe("Run", func() {
		It("runs whole ticks and reports metrics", func() {
			e := newEngine(1, 2, 3, torque.None{})
			e.SetAngularVelocity(1, mgl64.Vec3{1, 0, 0})
			res, err := e.Run(context.Background(), 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(400))
			Expect(res.Initial.Tick).To(BeZero())
			Expect(res.Final.Tick).To(Equal(400))
		})

		It("validates its arguments", func() {
			e := newEngine(1, 2, 3, nil)
			_, err := e.Run(context.Background(), 0)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())

			Expect(e.SetStep(0)).To(Succeed())
			_, err = e.Run(context.Background(), 1)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("stops on cancellation", func() {
			e := newEngine(1, 2, 3, nil)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err := e.Run(ctx, 1)
			Expect(errors.Is(err, dynamo.ErrContextCanceled)).To(BeTrue())
			Expect(res.Ticks).To(BeZero())
		})

		It("reports a non-finite state", func() {
			e := newEngine(1, 2, 3, torque.BodyFrameConstant{Vector: mgl64.Vec3{math.NaN(), 0, 0}})
			_, err := e.Run(context.Background(), 1)
			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Tick).To(Equal(1))
			Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
		})

		It("runs engines side by side", func() {
			a := newEngine(1, 2, 3, nil)
			a.SetAngularVelocity(1, mgl64.Vec3{1, 1, 1})
			b := newEngine(1, 2, 3, nil)
			b.SetAngularVelocity(1, mgl64.Vec3{1, 1, 1})
			b.SetIntegrator(integrators.NewEuler())

			results, err := sim.RunAll(context.Background(), []*sim.Engine{a, b}, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Ticks).To(Equal(200))
			Expect(results[1].Ticks).To(Equal(200))
		})
	})
})
