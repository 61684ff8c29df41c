package analytics

import (
	"math"
	"strconv"
	"strings"
)

// Smoothing scales how far control points sit from their anchor, as a
// fraction of the distance between the anchor's neighbours.
const Smoothing = 0.2

// ChartExtent is the side of the square viewBox paths are drawn in.
const ChartExtent = 100.0

// Point is a coordinate in the 0-100 chart space (y grows downwards).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CubicSegment is one Bezier hop ending at To.
type CubicSegment struct {
	Control1 Point `json:"control1"`
	Control2 Point `json:"control2"`
	To       Point `json:"to"`
}

// Path is a smoothed line through an ordered point series.
type Path struct {
	Start    *Point         `json:"start,omitempty"`
	Segments []CubicSegment `json:"segments,omitempty"`
}

// ControlPoint places a Bezier control point for current, oriented along the
// line from previous to next. Nil neighbours default to current. With
// reverse the direction is flipped, which is used for the end control of a
// segment.
func ControlPoint(current Point, previous, next *Point, reverse bool) Point {
	p, n := current, current
	if previous != nil {
		p = *previous
	}
	if next != nil {
		n = *next
	}

	dx := n.X - p.X
	dy := n.Y - p.Y
	angle := math.Atan2(dy, dx)
	if reverse {
		angle += math.Pi
	}
	length := math.Sqrt(dx*dx+dy*dy) * Smoothing

	return Point{
		X: current.X + math.Cos(angle)*length,
		Y: current.Y + math.Sin(angle)*length,
	}
}

// SmoothPath builds a cubic Bezier path through points. An empty input gives
// an empty Path; a single point gives a Path with only a start.
func SmoothPath(points []Point) Path {
	if len(points) == 0 {
		return Path{}
	}

	start := points[0]
	path := Path{Start: &start}
	if len(points) == 1 {
		return path
	}

	at := func(i int) *Point {
		if i < 0 || i >= len(points) {
			return nil
		}
		return &points[i]
	}

	path.Segments = make([]CubicSegment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		path.Segments = append(path.Segments, CubicSegment{
			Control1: ControlPoint(points[i-1], at(i-2), at(i), false),
			Control2: ControlPoint(points[i], at(i-1), at(i+1), true),
			To:       points[i],
		})
	}
	return path
}

// IsEmpty reports whether the path has no points at all.
func (p Path) IsEmpty() bool {
	return p.Start == nil
}

// String renders the path as SVG path data: "M x,y C c1 c2 to ...".
func (p Path) String() string {
	if p.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, *p.Start)
	for _, seg := range p.Segments {
		b.WriteString(" C ")
		writePoint(&b, seg.Control1)
		b.WriteByte(' ')
		writePoint(&b, seg.Control2)
		b.WriteByte(' ')
		writePoint(&b, seg.To)
	}
	return b.String()
}

// Area closes the line down to the chart baseline so it can be filled.
func (p Path) Area() string {
	line := p.String()
	if line == "" {
		return ""
	}
	return AreaPath(line)
}

// AreaPath appends the baseline closure to SVG line data.
func AreaPath(line string) string {
	return line + " L 100,100 L 0,100 Z"
}

// NormalizeSeries maps counts into chart space: x spreads evenly over
// 0-100 and y is inverted so the ceiling sits at 0. The ceiling is
// max(values..., floor), never below 1.
func NormalizeSeries(values []int, floor int) []Point {
	if len(values) == 0 {
		return []Point{}
	}

	ceiling := Ceiling(values, floor)
	points := make([]Point, len(values))
	for i, v := range values {
		x := 0.0
		if len(values) > 1 {
			x = float64(i) / float64(len(values)-1) * ChartExtent
		}
		points[i] = Point{
			X: x,
			Y: ChartExtent - float64(v)/float64(ceiling)*ChartExtent,
		}
	}
	return points
}

// Ceiling is the chart's top value for a series.
func Ceiling(values []int, floor int) int {
	ceiling := floor
	for _, v := range values {
		if v > ceiling {
			ceiling = v
		}
	}
	if ceiling < 1 {
		ceiling = 1
	}
	return ceiling
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(formatCoord(pt.X))
	b.WriteByte(',')
	b.WriteString(formatCoord(pt.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
