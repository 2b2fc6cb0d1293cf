package analysis

import (
	"strings"

	"github.com/san-kum/rotsim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D is a trajectory projected onto two components.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// Polhode projects the body-frame ω of each sample onto axes xIdx, yIdx.
func Polhode(samples []dynamo.Sample, xIdx, yIdx int) *PhasePortrait2D {
	if xIdx < 0 || xIdx > 2 || yIdx < 0 || yIdx > 2 {
		return nil
	}
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(samples)),
	}
	for _, s := range samples {
		portrait.Points = append(portrait.Points, Point{X: s.Omega[xIdx], Y: s.Omega[yIdx]})
	}
	return portrait
}

// PhasePortraitToASCII rasterises the portrait onto a width×height grid.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && minX+rangeX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := range canvas {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && minY+rangeY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := range canvas[row] {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
