package rigid

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
)

// Sequence is an intrinsic Tait-Bryan rotation order. The first angle is
// about the first named axis, e.g. ZYX is yaw, pitch, roll.
type Sequence int

const (
	XYZ Sequence = iota
	XZY
	YXZ
	YZX
	ZXY
	ZYX
)

var sequenceAxes = [...][3]int{
	XYZ: {0, 1, 2},
	XZY: {0, 2, 1},
	YXZ: {1, 0, 2},
	YZX: {1, 2, 0},
	ZXY: {2, 0, 1},
	ZYX: {2, 1, 0},
}

var unitAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// gimbalLimit is the |sin| of the middle angle above which the first and
// third axes are treated as aligned.
const gimbalLimit = 0.9999999

func (s Sequence) Axes() [3]int { return sequenceAxes[s] }

func (s Sequence) String() string {
	if s < 0 || int(s) >= len(sequenceAxes) {
		return fmt.Sprintf("Sequence(%d)", int(s))
	}
	a := sequenceAxes[s]
	return string([]byte{"XYZ"[a[0]], "XYZ"[a[1]], "XYZ"[a[2]]})
}

// cyclic reports whether the axes follow X→Y→Z→X order.
func (s Sequence) cyclic() bool {
	a := sequenceAxes[s]
	return (a[1]-a[0]+3)%3 == 1
}

func ParseSequence(name string) (Sequence, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for i := range sequenceAxes {
		if Sequence(i).String() == key {
			return Sequence(i), nil
		}
	}
	return ZYX, fmt.Errorf("%w: %q", dynamo.ErrUnknownSequence, name)
}

// wrapInput folds the first and third angles (degrees) above 180 down by
// 180. The second angle is passed through unchanged.
func wrapInput(a1, a2, a3 float64) (float64, float64, float64) {
	if a1 > 180 {
		a1 -= 180
	}
	if a3 > 180 {
		a3 -= 180
	}
	return a1, a2, a3
}

// QuatFromEuler composes three intrinsic rotations (radians).
func QuatFromEuler(a1, a2, a3 float64, seq Sequence) mgl64.Quat {
	ax := seq.Axes()
	q := mgl64.QuatRotate(a1, unitAxes[ax[0]]).
		Mul(mgl64.QuatRotate(a2, unitAxes[ax[1]])).
		Mul(mgl64.QuatRotate(a3, unitAxes[ax[2]]))
	return unit(q)
}

// EulerFromQuat extracts the three intrinsic angles (radians). At gimbal
// lock the third angle is reported as zero.
func EulerFromQuat(q mgl64.Quat, seq Sequence) (a1, a2, a3 float64) {
	m := DCM(q)
	ax := seq.Axes()
	i, j, k := ax[0], ax[1], ax[2]
	s := 1.0
	if !seq.cyclic() {
		s = -1
	}

	sin2 := mgl64.Clamp(s*m.At(i, k), -1, 1)
	a2 = math.Asin(sin2)
	if math.Abs(sin2) < gimbalLimit {
		a1 = math.Atan2(-s*m.At(j, k), m.At(k, k))
		a3 = math.Atan2(-s*m.At(i, j), m.At(i, i))
	} else {
		a1 = math.Atan2(s*m.At(k, j), m.At(j, j))
	}
	return a1, a2, a3
}

// DCM is the direction cosine matrix of a unit quaternion. It maps body
// vectors to inertial ones: v_inertial = DCM·v_body.
func DCM(q mgl64.Quat) mgl64.Mat3 {
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]
	return mgl64.Mat3FromRows(
		mgl64.Vec3{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		mgl64.Vec3{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		mgl64.Vec3{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	)
}

func unit(q mgl64.Quat) mgl64.Quat {
	n := q.Len()
	if n == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{W: q.W / n, V: q.V.Mul(1 / n)}
}
