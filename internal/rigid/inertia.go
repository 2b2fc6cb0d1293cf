package rigid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
)

// Symmetry classifies a body by which principal moments are equal.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryX
	SymmetryY
	SymmetryZ
)

func (s Symmetry) String() string {
	switch s {
	case SymmetryX:
		return "axisymmetric-x"
	case SymmetryY:
		return "axisymmetric-y"
	case SymmetryZ:
		return "axisymmetric-z"
	default:
		return "none"
	}
}

// Index is the body axis of symmetry, or -1 for SymmetryNone.
func (s Symmetry) Index() int {
	return int(s) - 1
}

// Inertia holds principal moments and products of inertia in kg·m².
type Inertia struct {
	Ixx, Iyy, Izz float64
	Ixy, Ixz, Iyz float64
}

func Principal(ixx, iyy, izz float64) Inertia {
	return Inertia{Ixx: ixx, Iyy: iyy, Izz: izz}
}

// BoxInertia derives the principal moments of a uniform box. One zero
// dimension (a plate) is allowed; two or more is rejected.
func BoxInertia(mass, length, width, height float64) (Inertia, error) {
	zeros := 0
	for _, d := range []float64{length, width, height} {
		if d == 0 {
			zeros++
		}
	}
	if zeros >= 2 {
		return Inertia{}, dynamo.ErrDegenerateGeometry
	}
	return Inertia{
		Ixx: mass * (width*width + height*height) / 12,
		Iyy: mass * (length*length + height*height) / 12,
		Izz: mass * (length*length + width*width) / 12,
	}, nil
}

func (in Inertia) Validate() error {
	if in.Ixx <= 0 || in.Iyy <= 0 || in.Izz <= 0 {
		return fmt.Errorf("%w: (%g, %g, %g)", dynamo.ErrNonPositiveInertia, in.Ixx, in.Iyy, in.Izz)
	}
	return nil
}

// Matrix returns the inertia tensor with products entered as negatives.
func (in Inertia) Matrix() mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{in.Ixx, -in.Ixy, -in.Ixz},
		mgl64.Vec3{-in.Ixy, in.Iyy, -in.Iyz},
		mgl64.Vec3{-in.Ixz, -in.Iyz, in.Izz},
	)
}

func (in Inertia) Moments() mgl64.Vec3 {
	return mgl64.Vec3{in.Ixx, in.Iyy, in.Izz}
}

func (in Inertia) Trace() float64 {
	return in.Ixx + in.Iyy + in.Izz
}

// Symmetry uses exact equality: a sphere-like body (all equal) and a fully
// asymmetric one both report SymmetryNone.
func (in Inertia) Symmetry() Symmetry {
	xy := in.Ixx == in.Iyy
	yz := in.Iyy == in.Izz
	xz := in.Ixx == in.Izz

	switch {
	case (xy && yz && xz) || !(xy || yz || xz):
		return SymmetryNone
	case yz:
		return SymmetryX
	case xz:
		return SymmetryY
	default:
		return SymmetryZ
	}
}
