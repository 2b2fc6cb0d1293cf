package analysis

import (
	"math"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the torque
// free system from x0 by following a neighbour displaced by perturbation
// along the first component. The neighbour is pulled back to the initial
// separation after every step and the log growth is averaged over time.
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	ctrl := make(dynamo.Control, dyn.ControlDim())
	steps := int(duration / dt)
	t := 0.0
	sumLog := 0.0

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, ctrl, t, dt)
		xp = integ.Step(dyn, xp, ctrl, t, dt)
		t += dt

		sep := separation(x, xp)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}

func separation(a, b dynamo.State) float64 {
	sum := 0.0
	for i := range a {
		d := b[i] - a[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
