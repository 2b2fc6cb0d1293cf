package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuatRateComponents(t *testing.T) {
	q := mgl64.Quat{W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}
	p, qq, r := 0.3, -0.2, 0.7
	got := QuatRate(q, mgl64.Vec3{p, qq, r})

	want := mgl64.Quat{
		W: (-p*q.V[0] - qq*q.V[1] - r*q.V[2]) / 2,
		V: mgl64.Vec3{
			(p*q.W + r*q.V[1] - qq*q.V[2]) / 2,
			(qq*q.W - r*q.V[0] + p*q.V[2]) / 2,
			(r*q.W + qq*q.V[0] - p*q.V[1]) / 2,
		},
	}
	if !quatClose(got, want, 1e-15) {
		t.Errorf("QuatRate = %v, want %v", got, want)
	}
}

func TestStepAttitudeZeroStep(t *testing.T) {
	q := Unit(mgl64.Quat{W: 0.9, V: mgl64.Vec3{0.1, 0.2, 0.3}})
	got := StepAttitude(q, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{3, 2, 1}, 0)
	if got != q {
		t.Errorf("zero step changed attitude: %v -> %v", q, got)
	}
}

func TestStepAttitudeConstantSpin(t *testing.T) {
	// a constant rate about +Z for one second rotates by rate radians
	rate := 0.8
	w := mgl64.Vec3{0, 0, rate}
	q := mgl64.QuatIdent()
	h := 0.0025
	for i := 0; i < 400; i++ {
		q = StepAttitude(q, w, w, h)
		if n := q.Len(); math.Abs(n-1) > 1e-12 {
			t.Fatalf("step %d: norm %v", i, n)
		}
	}

	want := mgl64.QuatRotate(rate, mgl64.Vec3{0, 0, 1})
	if !quatClose(q, want, 1e-6) {
		t.Errorf("attitude after 1s = %v, want %v", q, want)
	}
}

func TestUnitZeroFallback(t *testing.T) {
	if got := Unit(mgl64.Quat{}); got != mgl64.QuatIdent() {
		t.Errorf("Unit(0) = %v, want identity", got)
	}
}

func quatClose(a, b mgl64.Quat, tol float64) bool {
	if math.Abs(a.W-b.W) > tol {
		return false
	}
	for i := 0; i < 3; i++ {
		if math.Abs(a.V[i]-b.V[i]) > tol {
			return false
		}
	}
	return true
}
