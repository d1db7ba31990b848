package svg

import "math"

// Point is one sampled pen position. PenUp marks the last point of a stroke.
type Point struct {
	X     float64
	Y     float64
	PenUp bool
}

// Line holds the strokes of one wrapped line, one slice per chunk in order.
// A line without chunks is blank and only consumes its baseline.
type Line struct {
	Chunks [][]Point
	// Indent is the number of leading spaces, each one word gap wide.
	Indent int
}

// IsBlank reports whether the line has nothing to draw.
func (l Line) IsBlank() bool {
	for _, c := range l.Chunks {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// Page is one page of lines to render.
type Page struct {
	Number int
	Lines  []Line
}

// Bounds returns the horizontal extent of points.
func Bounds(points []Point) (minX, maxX float64) {
	if len(points) == 0 {
		return 0, 0
	}
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	return minX, maxX
}

// Assemble lays out the line's chunks with AssembleLine and moves them right
// by the indent.
func (l Line) Assemble(gap float64) []Point {
	points := AssembleLine(l.Chunks, gap)
	if l.Indent > 0 {
		offset := float64(l.Indent) * gap
		for i := range points {
			points[i].X += offset
		}
	}
	return points
}

// AssembleLine joins chunk strokes into a single stroke sequence starting
// at x = 0. Each chunk is shifted so its left edge sits gap units after the
// right edge of the previous chunk. The pen is lifted at every chunk end.
func AssembleLine(chunks [][]Point, gap float64) []Point {
	var out []Point
	cursor := 0.0
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		minX, maxX := Bounds(chunk)
		dx := cursor - minX
		for _, p := range chunk {
			out = append(out, Point{X: p.X + dx, Y: p.Y, PenUp: p.PenUp})
		}
		out[len(out)-1].PenUp = true
		cursor = maxX + dx + gap
	}
	return out
}
