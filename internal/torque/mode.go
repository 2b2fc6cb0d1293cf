package torque

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/rigid"
)

// Kind tags a torque mode.
type Kind int

const (
	KindNone Kind = iota
	KindSpaceFrame
	KindBodyFrame
	KindACS
	KindGravityGradient
	KindSpinningTop
)

var kindNames = [...]string{
	KindNone:            "none",
	KindSpaceFrame:      "space",
	KindBodyFrame:       "body",
	KindACS:             "acs",
	KindGravityGradient: "gravity-gradient",
	KindSpinningTop:     "top",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == key {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", dynamo.ErrUnknownMode, name)
}

// Kinds lists every mode tag in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Mode is a torque model. Implementations live in this package only.
type Mode interface {
	Kind() Kind
	// Torque returns the body-frame torque for the current state.
	Torque(b *rigid.Body) mgl64.Vec3
	mode()
}

// Potential is the attitude-dependent potential energy of the mode, zero for
// every mode but the gravity gradient.
func Potential(m Mode, b *rigid.Body) float64 {
	if gg, ok := m.(GravityGradient); ok {
		return gg.Potential(b)
	}
	return 0
}

func scaled(magnitude float64, direction mgl64.Vec3) mgl64.Vec3 {
	l := direction.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return direction.Mul(magnitude / l)
}
