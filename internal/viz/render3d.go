package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/rigid"
)

// Camera projects inertial coordinates onto the canvas. The default view
// looks along the inertial X axis with +Z pointing down the screen, tilted
// slightly so the body reads as a solid.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, RotX: math.Pi/2 - 0.35, RotZ: 0.6, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) view() mgl64.Mat3 {
	return mgl64.Rotate3DZ(c.RotZ).Mul3(mgl64.Rotate3DY(c.RotY)).Mul3(mgl64.Rotate3DX(c.RotX))
}

// Project maps p to dot coordinates on an sw×sh canvas, returning the depth
// and whether the point lands on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	return c.project(c.view(), p, sw, sh)
}

func (c *Camera) project(view mgl64.Mat3, p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := view.Mul3x1(p).Mul(c.Zoom)
	if rot[2] >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot[2])
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(rot[0]*scale*pScale) + sw/2
	sy := int(-rot[1]*scale*pScale) + sh/2
	return sx, sy, rot[2], sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	view := cam.view()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.project(view, e.Start, cw, ch)
		x2, y2, d2, v2 := cam.project(view, e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// BoxExtents returns the half-extents of the uniform box with the same
// principal moments as in, scaled so the longest is 1. Moment sets no box
// can produce are clamped to a thin plate.
func BoxExtents(in rigid.Inertia) mgl64.Vec3 {
	m := in.Moments()
	var e mgl64.Vec3
	for i := range 3 {
		sq := m[(i+1)%3] + m[(i+2)%3] - m[i]
		e[i] = math.Sqrt(math.Max(sq, 0))
	}
	longest := math.Max(e[0], math.Max(e[1], e[2]))
	if longest == 0 {
		return mgl64.Vec3{1, 1, 1}
	}
	e = e.Mul(1 / longest)
	for i := range e {
		e[i] = math.Max(e[i], 0.05)
	}
	return e
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BodyWireframe draws the body's equivalent box in its current attitude,
// a nose line along body +X and the inertial angular momentum direction.
func BodyWireframe(b *rigid.Body) *Wireframe {
	w := NewWireframe()
	dcm := b.DCM()
	e := BoxExtents(b.Inertia())

	var v [8]mgl64.Vec3
	for i := range v {
		corner := mgl64.Vec3{-e[0], -e[1], -e[2]}
		if i == 1 || i == 2 || i == 5 || i == 6 {
			corner[0] = e[0]
		}
		if i == 2 || i == 3 || i == 6 || i == 7 {
			corner[1] = e[1]
		}
		if i >= 4 {
			corner[2] = e[2]
		}
		v[i] = dcm.Mul3x1(corner)
	}
	for _, edge := range boxEdges {
		w.AddEdge(v[edge[0]], v[edge[1]])
	}

	origin := mgl64.Vec3{}
	w.AddEdge(origin, dcm.Mul3x1(mgl64.Vec3{e[0] + 0.4, 0, 0}))
	if h := b.AngularMomentumInertial(); h.Len() > 0 {
		w.AddEdge(origin, h.Normalize().Mul(1.5))
	}
	return w
}
