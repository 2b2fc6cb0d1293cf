package metrics

import (
	"math"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// MaxRate is the peak |ω| seen. The engine never limits rates itself;
// callers compare this against their own ceiling.
type MaxRate struct {
	name string
	peak float64
}

func NewMaxRate() *MaxRate {
	return &MaxRate{name: "max_rate"}
}

func (m *MaxRate) Name() string {
	return m.name
}

func (m *MaxRate) Observe(s dynamo.Sample) {
	m.peak = math.Max(m.peak, s.Omega.Len())
}

func (m *MaxRate) Value() float64 { return m.peak }

func (m *MaxRate) Reset() { m.peak = 0 }

// Exceeds reports whether the peak rate went above limit.
func (m *MaxRate) Exceeds(limit float64) bool { return m.peak > limit }

// NormError is the worst |‖q‖ − 1| over the run.
type NormError struct {
	name  string
	worst float64
}

func NewNormError() *NormError {
	return &NormError{name: "norm_error"}
}

func (n *NormError) Name() string {
	return n.name
}

func (n *NormError) Observe(s dynamo.Sample) {
	n.worst = math.Max(n.worst, math.Abs(s.Quat.Len()-1))
}

func (n *NormError) Value() float64 { return n.worst }

func (n *NormError) Reset() { n.worst = 0 }

// Standard returns the metric set attached to every CLI run.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewTorqueEffort(),
		NewMaxRate(),
		NewNormError(),
	}
}
