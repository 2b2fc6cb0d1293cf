package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rotsim/internal/sim"
)

var _ = Describe("Clock", func() {
	var (
		clock *sim.Clock
		ticks int
		tick  func()
	)

	BeforeEach(func() {
		clock = sim.NewClock(0.0025)
		ticks = 0
		tick = func() { ticks++ }
	})

	It("caps the ticks run per frame", func() {
		Expect(clock.Simulate(1.0, tick)).To(Equal(10))
		Expect(ticks).To(Equal(10))
	})

	It("drops the lag left after a stall", func() {
		clock.Simulate(1.0, tick)
		Expect(clock.RealTime).To(Equal(clock.SimulationTime))

		Expect(clock.Simulate(0.0025, tick)).To(Equal(1))
		Expect(ticks).To(Equal(11))
	})

	It("accumulates frames shorter than a tick", func() {
		Expect(clock.Simulate(0.001, tick)).To(Equal(1))
		Expect(clock.Simulate(0.001, tick)).To(Equal(0))
		Expect(clock.Simulate(0.001, tick)).To(Equal(1))
		Expect(clock.SimulationTime).To(BeNumerically("~", 0.005, 1e-15))
	})

	It("runs one tick per matching frame", func() {
		for i := 0; i < 400; i++ {
			Expect(clock.Simulate(0.0025, tick)).To(Equal(1))
		}
		Expect(ticks).To(Equal(400))
	})

	It("falls back to the default cap", func() {
		clock.MaxTicks = 0
		Expect(clock.Simulate(1.0, tick)).To(Equal(10))
	})

	It("zeroes both accumulators on reset", func() {
		clock.Simulate(0.02, tick)
		clock.Reset()
		Expect(clock.SimulationTime).To(BeZero())
		Expect(clock.RealTime).To(BeZero())
	})
})
