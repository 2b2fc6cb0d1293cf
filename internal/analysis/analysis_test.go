package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/integrators"
	"github.com/san-kum/rotsim/internal/physics"
	"github.com/san-kum/rotsim/internal/rigid"
	"github.com/san-kum/rotsim/internal/sim"
	"github.com/san-kum/rotsim/internal/torque"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

func TestPowerSpectrumPadding(t *testing.T) {
	if got := len(PowerSpectrum(make([]float64, 512))); got != 256 {
		t.Errorf("len = %d, want 256", got)
	}
	if got := len(PowerSpectrum(make([]float64, 500))); got != 256 {
		t.Errorf("padded len = %d, want 256", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"power of two", 1024},
		{"padded", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DominantFrequency(sine(2, 0.01, tt.n), 0.01)
			if math.Abs(f-2) > 0.1 {
				t.Errorf("dominant = %v Hz, want 2", f)
			}
		})
	}
	if DominantFrequency([]float64{1, 2}, 0.01) != 0 {
		t.Error("short signal should report zero")
	}
}

func TestNutationRate(t *testing.T) {
	in := rigid.Principal(2, 1, 1)
	if got := NutationRate(in, mgl64.Vec3{3, 0.1, 0}); got != 3 {
		t.Errorf("rate = %v, want 3", got)
	}
	if got := NutationRate(rigid.Principal(1, 2, 3), mgl64.Vec3{1, 1, 1}); got != 0 {
		t.Errorf("asymmetric body rate = %v, want 0", got)
	}

	want := math.Sqrt(36.16)
	if got := PrecessionRate(in, mgl64.Vec3{3, 0.4, 0}); math.Abs(got-want) > 1e-12 {
		t.Errorf("precession = %v, want %v", got, want)
	}
}

func TestNutationMatchesSimulation(t *testing.T) {
	b, err := rigid.NewBody(1, rigid.Principal(2, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	e := sim.New(b, torque.None{})
	w := mgl64.Vec3{3, 0.3, 0}
	e.SetAngularVelocity(w.Len(), w)

	const n = 4096
	wy := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		e.Tick()
		wy = append(wy, b.AngularVelocity()[1])
	}

	want := Hz(NutationRate(b.Inertia(), b.AngularVelocity()))
	got := DominantFrequency(wy, e.Step())
	if math.Abs(got-want) > 0.1 {
		t.Errorf("simulated nutation %v Hz, analytic %v Hz", got, want)
	}
}

func TestLyapunovIntermediateAxis(t *testing.T) {
	rb := physics.NewRigidBody(rigid.Principal(1, 2, 3).Matrix())

	intermediate := LyapunovExponent(rb, integrators.NewRK4(), dynamo.State{0, 1, 0}, 0.01, 20, 1e-7)
	major := LyapunovExponent(rb, integrators.NewRK4(), dynamo.State{0, 0, 1}, 0.01, 20, 1e-7)

	// linearised growth rate is sqrt(1/3) for unit spin
	if intermediate < 0.4 {
		t.Errorf("intermediate axis exponent = %v, expected near 0.577", intermediate)
	}
	if major > 0.1 {
		t.Errorf("major axis exponent = %v, expected near zero", major)
	}
}

func TestLyapunovGuards(t *testing.T) {
	rb := physics.NewRigidBody(rigid.Principal(1, 2, 3).Matrix())
	if LyapunovExponent(rb, integrators.NewRK4(), dynamo.State{}, 0.01, 1, 1e-7) != 0 {
		t.Error("empty state should give zero")
	}
	if LyapunovExponent(rb, integrators.NewRK4(), dynamo.State{1, 0, 0}, 0, 1, 1e-7) != 0 {
		t.Error("zero step should give zero")
	}
}

func TestPolhode(t *testing.T) {
	samples := []dynamo.Sample{
		{Omega: mgl64.Vec3{1, 0, 0}},
		{Omega: mgl64.Vec3{0, 1, 0}},
		{Omega: mgl64.Vec3{-1, 0, 0}},
		{Omega: mgl64.Vec3{0, -1, 0}},
	}
	p := Polhode(samples, 0, 1)
	if len(p.Points) != 4 || p.Points[1] != (Point{0, 1}) {
		t.Fatalf("points = %v", p.Points)
	}
	if Polhode(samples, 0, 3) != nil {
		t.Error("out of range axis should give nil")
	}

	art := PhasePortraitToASCII(p, 20, 10)
	if got := strings.Count(art, "\n"); got != 10 {
		t.Errorf("rows = %d, want 10", got)
	}
	if !strings.Contains(art, "•") {
		t.Error("expected plotted points")
	}
	if PhasePortraitToASCII(nil, 20, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}
