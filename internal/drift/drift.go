// Package drift rescales angular velocity after each tick so that energy
// stays at the value captured when the user last edited the state.
//
// Only two torque modes conserve something worth enforcing: torque-free
// motion (kinetic energy) and the gravity gradient (kinetic plus potential).
// Every other mode does work on the body and is left alone.
package drift

import (
	"math"

	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/torque"
)

// DefaultBand is the accepted |ratio−1| for gravity-gradient correction.
// Ratios outside it mean the baseline is stale, not that the step drifted.
const DefaultBand = 0.005

type Outcome int

const (
	Applied Outcome = iota
	Disabled
	NotApplicable
	SkippedZeroBaseline
	SkippedUndefined
	SkippedOutOfBand
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Disabled:
		return "disabled"
	case NotApplicable:
		return "n/a"
	case SkippedZeroBaseline:
		return "skipped: zero baseline"
	case SkippedUndefined:
		return "skipped: undefined ratio"
	case SkippedOutOfBand:
		return "skipped: out of band"
	default:
		return "unknown"
	}
}

// Baseline is the energy captured at the last explicit state change.
type Baseline struct {
	Kinetic float64
	Total   float64
}

type Corrector struct {
	Enabled bool
	Band    float64

	baseline Baseline
}

func NewCorrector() *Corrector {
	return &Corrector{Enabled: true, Band: DefaultBand}
}

// Capture records the reference energies for the body under mode.
func (c *Corrector) Capture(b *rigid.Body, mode torque.Mode) {
	t := b.KineticEnergy()
	c.baseline = Baseline{Kinetic: t, Total: t + torque.Potential(mode, b)}
}

func (c *Corrector) Baseline() Baseline { return c.baseline }

// Correct rescales the body rate in place and reports what it did.
func (c *Corrector) Correct(b *rigid.Body, mode torque.Mode) Outcome {
	if !c.Enabled {
		return Disabled
	}
	switch m := mode.(type) {
	case torque.None:
		return c.free(b)
	case torque.GravityGradient:
		return c.gravity(b, m)
	default:
		return NotApplicable
	}
}

func (c *Corrector) free(b *rigid.Body) Outcome {
	if c.baseline.Kinetic == 0 {
		return SkippedZeroBaseline
	}
	ratio := b.KineticEnergy() / c.baseline.Kinetic
	if !usable(ratio) {
		return SkippedUndefined
	}

	w := b.AngularVelocity()
	keep := b.Symmetry().Index()
	for i := range w {
		if i != keep {
			w[i] /= ratio
		}
	}
	b.SetRate(w)
	return Applied
}

func (c *Corrector) gravity(b *rigid.Body, g torque.GravityGradient) Outcome {
	target := c.baseline.Total - g.Potential(b)
	if target == 0 {
		return SkippedZeroBaseline
	}
	actual := perAxisKinetic(b)
	if actual == 0 {
		return SkippedUndefined
	}
	ratio := actual / target
	if !usable(ratio) {
		return SkippedUndefined
	}
	band := c.Band
	if band <= 0 {
		band = DefaultBand
	}
	if math.Abs(ratio-1) >= band {
		return SkippedOutOfBand
	}
	b.SetRate(b.AngularVelocity().Mul(1 / ratio))
	return Applied
}

// perAxisKinetic is ½ Σ I_i ω_i², the principal-axis kinetic energy.
func perAxisKinetic(b *rigid.Body) float64 {
	w := b.AngularVelocity()
	m := b.Moments()
	sum := 0.0
	for i := range w {
		sum += m[i] * w[i] * w[i]
	}
	return 0.5 * sum
}

func usable(ratio float64) bool {
	return ratio != 0 && !math.IsNaN(ratio) && !math.IsInf(ratio, 0)
}

// Relative returns |now−ref|/|ref|, or |now| when ref is zero.
func Relative(now, ref float64) float64 {
	if ref == 0 {
		return math.Abs(now)
	}
	return math.Abs(now-ref) / math.Abs(ref)
}
