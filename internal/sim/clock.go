package sim

import "github.com/san-kum/rotsim/internal/dynamo"

// Clock turns wall-clock frame intervals into a bounded number of fixed
// integration ticks.
type Clock struct {
	Step     float64
	MaxTicks int

	SimulationTime float64
	RealTime       float64
}

func NewClock(step float64) *Clock {
	return &Clock{Step: step, MaxTicks: dynamo.DefaultMaxTicks}
}

// Simulate adds dt to the real-time accumulator and runs tick until
// simulated time catches up or MaxTicks have run. Lag left over once the
// cap is hit is dropped, so a long stall never triggers a burst of work.
// It returns the number of ticks run.
func (c *Clock) Simulate(dt float64, tick func()) int {
	limit := c.MaxTicks
	if limit <= 0 {
		limit = dynamo.DefaultMaxTicks
	}

	c.RealTime += dt
	n := 0
	for c.SimulationTime < c.RealTime && n < limit {
		tick()
		c.SimulationTime += c.Step
		n++
	}
	if n == limit && c.SimulationTime < c.RealTime {
		c.RealTime = c.SimulationTime
	}
	return n
}

func (c *Clock) Reset() {
	c.SimulationTime = 0
	c.RealTime = 0
}
