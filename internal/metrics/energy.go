package metrics

import (
	"math"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// drift tracks the largest relative departure of a quantity from the first
// value observed.
type drift struct {
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func (d *drift) observe(v float64) {
	if d.samples == 0 {
		d.initial = v
	}
	d.current = v
	d.samples++

	if d.initial != 0 {
		rel := math.Abs(v-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, rel)
	}
}

func (d *drift) reset() { *d = drift{} }

// EnergyDrift is the peak relative drift of total mechanical energy.
type EnergyDrift struct {
	name string
	drift
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string            { return e.name }
func (e *EnergyDrift) Observe(s dynamo.Sample) { e.observe(s.Total()) }
func (e *EnergyDrift) Value() float64          { return e.maxDrift }
func (e *EnergyDrift) Reset()                  { e.reset() }

// Final is the relative drift at the last observed sample.
func (e *EnergyDrift) Final() float64 {
	if e.initial == 0 {
		return 0
	}
	return math.Abs(e.current-e.initial) / math.Abs(e.initial)
}

// MomentumDrift is the peak relative drift of |H|.
type MomentumDrift struct {
	name string
	drift
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string            { return m.name }
func (m *MomentumDrift) Observe(s dynamo.Sample) { m.observe(s.H.Len()) }
func (m *MomentumDrift) Value() float64          { return m.maxDrift }
func (m *MomentumDrift) Reset()                  { m.reset() }
