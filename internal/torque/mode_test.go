package torque

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/rigid"
)

func newBody(t *testing.T, ixx, iyy, izz float64) *rigid.Body {
	t.Helper()
	b, err := rigid.NewBody(1, rigid.Principal(ixx, iyy, izz))
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"none", KindNone},
		{"space", KindSpaceFrame},
		{"BODY", KindBodyFrame},
		{"acs", KindACS},
		{" gravity-gradient ", KindGravityGradient},
		{"top", KindSpinningTop},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseKind("magnet"); !errors.Is(err, dynamo.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestKindsRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("kind %v did not round trip: %v %v", k, got, err)
		}
	}
}

func TestNone(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	b.SetAngularVelocity(1, mgl64.Vec3{1, 1, 1})
	if tau := (None{}).Torque(b); tau != (mgl64.Vec3{}) {
		t.Errorf("None torque = %v", tau)
	}
	if Potential(None{}, b) != 0 {
		t.Error("None should have no potential")
	}
}

func TestSpaceFrameFollowsAttitude(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	m := NewSpaceFrame(2, mgl64.Vec3{3, 0, 0})

	if got := m.Torque(b); !near(got, mgl64.Vec3{2, 0, 0}, 1e-15) {
		t.Errorf("identity attitude: got %v", got)
	}

	b.SetOrientationEuler(90, 0, 0, rigid.ZYX)
	got := m.Torque(b)
	if !near(got, mgl64.Vec3{0, -2, 0}, 1e-12) {
		t.Errorf("yawed 90: got %v, want (0,-2,0)", got)
	}
	if !near(got, b.ToBody(m.Vector), 1e-12) {
		t.Errorf("torque %v disagrees with DCM transform %v", got, b.ToBody(m.Vector))
	}
}

func TestBodyFrameIgnoresAttitude(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	m := NewBodyFrame(2, mgl64.Vec3{0, 0, 5})
	b.SetOrientationEuler(30, 40, 50, rigid.XYZ)
	if got := m.Torque(b); got != (mgl64.Vec3{0, 0, 2}) {
		t.Errorf("got %v", got)
	}
	if z := NewBodyFrame(3, mgl64.Vec3{}); z.Vector != (mgl64.Vec3{}) {
		t.Errorf("zero direction should give zero torque, got %v", z.Vector)
	}
}

func TestACSDeadband(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	b.SetRate(mgl64.Vec3{0.3, -0.2, 0.005})
	m := ACSStabilization{Deadband: 0.01, Magnitude: 0.5}
	if got := m.Torque(b); got != (mgl64.Vec3{-0.5, 0.5, 0}) {
		t.Errorf("got %v", got)
	}

	b.SetRate(mgl64.Vec3{0.01, -0.01, 0})
	if got := m.Torque(b); got != (mgl64.Vec3{}) {
		t.Errorf("rates on the deadband edge should be left alone, got %v", got)
	}
}

func TestGravityGradientAligned(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	g := GravityGradient{K: 1, Axis: rigid.ZDown}
	if got := g.Torque(b); !near(got, mgl64.Vec3{}, 1e-15) {
		t.Errorf("principal axis along down should be an equilibrium, got %v", got)
	}
	// I11 = Izz = 3, tr I = 6
	if v := g.Potential(b); math.Abs(v-0.5) > 1e-15 {
		t.Errorf("potential = %v, want 0.5", v)
	}
}

func TestGravityGradientMatchesPotential(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	g := GravityGradient{K: 1, Axis: rigid.ZDown}

	theta := 30.0
	b.SetOrientationEuler(theta, 0, 0, rigid.XYZ)
	tau := g.Torque(b)

	s, c := math.Sincos(mgl64.DegToRad(theta))
	if math.Abs(tau[0]-s*c) > 1e-12 || math.Abs(tau[1]) > 1e-12 || math.Abs(tau[2]) > 1e-12 {
		t.Fatalf("torque = %v, want (%v,0,0)", tau, s*c)
	}

	// torque about X is -dV/dθ for a roll about X
	const d = 1e-4
	b.SetOrientationEuler(theta+d, 0, 0, rigid.XYZ)
	vp := Potential(g, b)
	b.SetOrientationEuler(theta-d, 0, 0, rigid.XYZ)
	vm := Potential(g, b)
	dV := (vp - vm) / mgl64.DegToRad(2*d)
	if math.Abs(tau[0]+dV) > 1e-6 {
		t.Errorf("torque %v, -dV/dθ %v", tau[0], -dV)
	}
}

func TestGravityGradientAxis(t *testing.T) {
	b := newBody(t, 1, 2, 3)
	b.SetOrientationEuler(30, 0, 0, rigid.XYZ)
	down := GravityGradient{K: 1, Axis: rigid.ZDown}.Torque(b)
	up := GravityGradient{K: 1, Axis: rigid.ZUp}.Torque(b)
	if !near(down, up, 1e-15) {
		t.Errorf("tidal torque should not depend on the sign of down: %v vs %v", down, up)
	}
}

func TestSpinningTop(t *testing.T) {
	b, err := rigid.NewBody(3, rigid.Principal(1, 2, 2))
	if err != nil {
		t.Fatal(err)
	}

	explicit := SpinningTop{Lever: 1, Gravity: 1, Mass: 2, Axis: rigid.ZDown}
	if got := explicit.Torque(b); !near(got, mgl64.Vec3{0, 2, 0}, 1e-15) {
		t.Errorf("explicit mass: got %v", got)
	}

	fallback := SpinningTop{Lever: 1, Gravity: 1, Axis: rigid.ZDown}
	if got := fallback.Torque(b); !near(got, mgl64.Vec3{0, 3, 0}, 1e-15) {
		t.Errorf("body mass: got %v", got)
	}

	// lever along down gives no moment arm
	b.SetOrientationEuler(0, -90, 0, rigid.XYZ)
	if got := explicit.Torque(b); !near(got, mgl64.Vec3{}, 1e-12) {
		t.Errorf("lever along gravity: got %v", got)
	}
}
