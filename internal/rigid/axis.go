package rigid

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
)

// Axis names which inertial axis points up or down. Gravity-dependent torque
// models resolve it once to a constant "down" unit vector.
type Axis int

const (
	ZDown Axis = iota
	ZUp
	YDown
	YUp
	XDown
	XUp
)

var axisNames = [...]string{
	ZDown: "Z Down",
	ZUp:   "Z Up",
	YDown: "Y Down",
	YUp:   "Y Up",
	XDown: "X Down",
	XUp:   "X Up",
}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Index is the inertial axis (0=X, 1=Y, 2=Z) the orientation refers to.
func (a Axis) Index() int {
	switch a {
	case XUp, XDown:
		return 0
	case YUp, YDown:
		return 1
	default:
		return 2
	}
}

// Down is the inertial unit vector pointing toward the planet.
func (a Axis) Down() mgl64.Vec3 {
	var v mgl64.Vec3
	v[a.Index()] = 1
	switch a {
	case XUp, YUp, ZUp:
		v[a.Index()] = -1
	}
	return v
}

// ParseAxis accepts "Z Down", "z-down", "zdown" and similar spellings.
func ParseAxis(name string) (Axis, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))
	for i, n := range axisNames {
		if strings.ToLower(strings.ReplaceAll(n, " ", "")) == key {
			return Axis(i), nil
		}
	}
	return ZDown, fmt.Errorf("%w: %q", dynamo.ErrUnknownAxis, name)
}
