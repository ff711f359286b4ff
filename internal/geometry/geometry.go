// Package geometry holds the 2D primitives shared by calibration, measurement
// and the interaction layer.
//
// Two coordinate spaces are in play:
//   - image space: pixel coordinates of the original, non-zoomed image
//   - display space: coordinates on the zoomed canvas (image space × zoom)
//
// Both use the image convention: (0,0) is the top-left corner, X grows to
// the right and Y grows downward, so angles measured with Atan2 increase
// clockwise on screen.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D coordinate in image or display space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return fromVec(r2.Add(p.vec(), q.vec()))
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return fromVec(r2.Sub(p.vec(), q.vec()))
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return fromVec(r2.Scale(f, p.vec()))
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b.vec(), a.vec()))
}

// ToImage converts a display-space point to image space.
func ToImage(p Point, zoom float64) Point {
	return p.Scale(1 / zoom)
}

// ToDisplay converts an image-space point to display space.
func ToDisplay(p Point, zoom float64) Point {
	return p.Scale(zoom)
}

// Segment is a straight line between two points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Point {
	return s.A.Add(s.B).Scale(0.5)
}

// AngleDegrees returns the direction from A to B in degrees, in (-180, 180].
// 0 points right and 90 points down.
func (s Segment) AngleDegrees() float64 {
	d := s.B.Sub(s.A)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// Scale multiplies both end points by f.
func (s Segment) Scale(f float64) Segment {
	return Segment{A: s.A.Scale(f), B: s.B.Scale(f)}
}

// Translate moves both end points by d.
func (s Segment) Translate(d Point) Segment {
	return Segment{A: s.A.Add(d), B: s.B.Add(d)}
}

// DistanceTo returns the shortest distance from p to any point on the segment.
func (s Segment) DistanceTo(p Point) float64 {
	ab := r2.Sub(s.B.vec(), s.A.vec())
	lenSq := r2.Dot(ab, ab)
	if lenSq == 0 {
		return Distance(s.A, p)
	}
	t := r2.Dot(r2.Sub(p.vec(), s.A.vec()), ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := r2.Add(s.A.vec(), r2.Scale(t, ab))
	return r2.Norm(r2.Sub(p.vec(), closest))
}

// SnapAngle rotates end around start so that the direction of the line is
// the nearest multiple of step degrees. The distance from start is kept.
// A non-positive step returns end unchanged.
func SnapAngle(start, end Point, step float64) Point {
	if step <= 0 {
		return end
	}
	length := Distance(start, end)
	if length == 0 {
		return end
	}
	angle := Seg(start, end).AngleDegrees()
	snapped := math.Round(angle/step) * step * math.Pi / 180
	return Point{
		X: start.X + length*math.Cos(snapped),
		Y: start.Y + length*math.Sin(snapped),
	}
}
