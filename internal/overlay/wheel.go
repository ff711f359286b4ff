package overlay

import (
	"math"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/threshold"
)

// GrabTolerance is how close, in degrees, a press on the wheel must be to a
// threshold line to pick it up.
const GrabTolerance = 5.0

// Handle names a draggable threshold line on the wheel.
type Handle int

const (
	HandleNone Handle = iota
	HandleLow
	HandleHigh
)

func (h Handle) String() string {
	switch h {
	case HandleLow:
		return "low"
	case HandleHigh:
		return "high"
	default:
		return "none"
	}
}

// Wheel is the geometry of a color wheel image of side 2·Radius. Angles
// are measured clockwise from the positive x axis, as in image coordinates.
type Wheel struct {
	Radius float64
}

// Center returns the wheel centre.
func (w Wheel) Center() geometry.Point {
	return geometry.Pt(w.Radius, w.Radius)
}

// Rim returns the point on the rim at angle degrees.
func (w Wheel) Rim(angle float64) geometry.Point {
	rad := angle * math.Pi / 180
	return w.Center().Add(geometry.Pt(math.Cos(rad), math.Sin(rad)).Scale(w.Radius))
}

// AngleAt returns the angle of p around the centre in [0, 360).
func (w Wheel) AngleAt(p geometry.Point) float64 {
	return math.Mod(geometry.Seg(w.Center(), p).AngleDegrees()+360, 360)
}

// ThresholdLines returns the low and high hue lines from the centre to the
// rim.
func (w Wheel) ThresholdLines(r threshold.Range) [2]Line {
	c := w.Center()
	return [2]Line{
		{Role: RoleThresholdLow, Line: geometry.Seg(c, w.Rim(r.HueLow)), Width: lineWidth, Color: Black},
		{Role: RoleThresholdHigh, Line: geometry.Seg(c, w.Rim(r.HueHigh)), Width: lineWidth, Color: Black},
	}
}

// Sector returns the closed polygon shading the selected hue interval: the
// centre, the low rim point, one rim point per degree of arc, and the high
// rim point. A wrapping interval sweeps through 0°.
func (w Wheel) Sector(r threshold.Range) []geometry.Point {
	start, end := r.HueLow, r.HueHigh
	if start > end {
		end += 360
	}

	n := int(math.Abs(end - start))
	pts := make([]geometry.Point, 0, n+3)
	pts = append(pts, w.Center(), w.Rim(r.HueLow))
	for _, a := range linspace(start, end, n) {
		pts = append(pts, w.Rim(math.Mod(a, 360)))
	}
	return append(pts, w.Rim(r.HueHigh))
}

// Grab returns the threshold line a press at p picks up. The low line wins
// when both are within GrabTolerance.
func (w Wheel) Grab(p geometry.Point, r threshold.Range) Handle {
	a := w.AngleAt(p)
	switch {
	case NearAngle(a, r.HueLow, GrabTolerance):
		return HandleLow
	case NearAngle(a, r.HueHigh, GrabTolerance):
		return HandleHigh
	default:
		return HandleNone
	}
}

// NearAngle reports whether two angles are strictly closer than tol degrees
// around the circle.
func NearAngle(a, b, tol float64) bool {
	d := math.Abs(a - b)
	return math.Min(d, 360-d) < tol
}

// linspace returns n evenly spaced values from start to end inclusive.
func linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

// HueBar is the geometry of a horizontal hue gradient of the given size.
type HueBar struct {
	Width  float64
	Height float64
}

// X maps a hue angle onto the bar. 360° maps to the right edge so the full
// default range spans the whole bar.
func (b HueBar) X(angle float64) float64 {
	if angle >= 360 {
		return b.Width
	}
	return math.Mod(angle, 360) / 360 * b.Width
}

// Selection returns the shaded spans of the hue interval: one rectangle
// normally, two when the interval wraps through 0°.
func (b HueBar) Selection(r threshold.Range) []Rect {
	start, end := b.X(r.HueLow), b.X(r.HueHigh)
	if start > end {
		return []Rect{
			{Min: geometry.Pt(0, 0), Max: geometry.Pt(end, b.Height)},
			{Min: geometry.Pt(start, 0), Max: geometry.Pt(b.Width, b.Height)},
		}
	}
	return []Rect{{Min: geometry.Pt(start, 0), Max: geometry.Pt(end, b.Height)}}
}

// Grab returns the threshold edge a press at x picks up. The low edge wins
// when both are within GrabTolerance degrees.
func (b HueBar) Grab(x float64, r threshold.Range) Handle {
	a := b.AngleAt(x)
	switch {
	case math.Abs(a-r.HueLow) < GrabTolerance:
		return HandleLow
	case math.Abs(a-r.HueHigh) < GrabTolerance:
		return HandleHigh
	default:
		return HandleNone
	}
}

// AngleAt maps an x position on the bar back to a hue angle in [0, 360].
func (b HueBar) AngleAt(x float64) float64 {
	if b.Width <= 0 {
		return 0
	}
	return math.Max(0, math.Min(360, x/b.Width*360))
}
