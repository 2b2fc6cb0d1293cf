// Package export renders canvases and traces as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rotsim/internal/analysis"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/record"
	"github.com/san-kum/rotsim/internal/viz"
)

const (
	background = "#0a0a0a"
	foreground = "#00ff00"
)

// braille dot bits by [row][column] within a cell
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func header(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

// CanvasToSVG draws every lit braille dot as a circle, scale pixels apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	dw, dh := canvas.Dots()

	var sb strings.Builder
	header(&sb, float64(dw)*scale, float64(dh)*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", foreground)

	radius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := r - 0x2800
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// TrajectoryToSVG draws points as one polyline fitted to the image with a
// 10% margin.
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
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

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}

// SeriesToSVG plots a named sample series (see record.SeriesNames) against
// simulated time.
func SeriesToSVG(samples []dynamo.Sample, name string, width, height int) (string, error) {
	values, err := record.Series(samples, name)
	if err != nil {
		return "", err
	}
	if len(values) < 2 {
		return "", fmt.Errorf("need at least two samples, got %d", len(values))
	}
	points := make([]analysis.Point, len(values))
	for i, v := range values {
		points[i] = analysis.Point{X: samples[i].Time, Y: v}
	}
	return TrajectoryToSVG(points, width, height, foreground), nil
}
