package export

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/analysis"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas produced output")
	}
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 4)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Fatalf("got %d dots, want 2", n)
	}
	if !strings.Contains(svg, `cx="2.0" cy="2.0"`) || !strings.Contains(svg, `cx="14.0" cy="14.0"`) {
		t.Errorf("dots misplaced:\n%s", svg)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("wrong size:\n%s", svg)
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]analysis.Point{{X: 1, Y: 1}}, 100, 100, "red") != "" {
		t.Error("single point produced output")
	}
	svg := TrajectoryToSVG([]analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 120, 120, "red")
	if !strings.Contains(svg, `d="M10.0,110.0 L110.0,10.0"`) {
		t.Errorf("unexpected path:\n%s", svg)
	}
	if !strings.Contains(svg, `stroke="red"`) {
		t.Error("stroke colour missing")
	}
}

func TestSeriesToSVG(t *testing.T) {
	samples := []dynamo.Sample{
		{Time: 0, Omega: mgl64.Vec3{0, 0, 0}},
		{Time: 1, Omega: mgl64.Vec3{0, 0, 2}},
		{Time: 2, Omega: mgl64.Vec3{0, 0, 4}},
	}
	svg, err := SeriesToSVG(samples, "wz", 120, 120)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("path should have three vertices:\n%s", svg)
	}
	if _, err := SeriesToSVG(samples, "bogus", 10, 10); err == nil {
		t.Error("unknown series accepted")
	}
	if _, err := SeriesToSVG(samples[:1], "wz", 10, 10); err == nil {
		t.Error("single sample accepted")
	}
}
