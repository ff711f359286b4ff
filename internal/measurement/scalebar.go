package measurement

import (
	"fmt"
	"math"

	"github.com/ironsheep/hsv-wizard/internal/calibration"
	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

const (
	// DefaultScaleBarMargin is the display-space offset of the bar's left
	// end from the left edge and from the bottom of the image.
	DefaultScaleBarMargin = 50.0

	// labelCharWidth and labelHeight approximate the label box for hit
	// testing; they match the fixed label face.
	labelCharWidth = 7.0
	labelHeight    = 13.0
	labelGap       = 10.0
)

// ScaleBar is a reference line of known physical length.
type ScaleBar struct {
	Length float64          `json:"length"`
	Units  string           `json:"units"`
	Line   geometry.Segment `json:"line"` // image space
}

// PlaceScaleBar builds a horizontal bar of the desired physical length.
//
// The display length is (desired / lengthPerPixel) · zoom. The bar starts at
// display (margin, imageHeight·zoom − margin) and runs to the right.
//
// Returns:
//   - *ScaleBar: The bar, stored in image space.
//   - float64: The bar length in display pixels.
//   - error: calibration.ErrNotCalibrated, calibration.ErrInvalidLength or
//     ErrInvalidZoom.
func PlaceScaleBar(desired float64, cal *calibration.Calibration, zoom float64, imageHeight int, margin float64) (*ScaleBar, float64, error) {
	if err := cal.Require(); err != nil {
		return nil, 0, err
	}
	if !(desired > 0) || math.IsInf(desired, 0) {
		return nil, 0, fmt.Errorf("scale bar length %v: %w", desired, calibration.ErrInvalidLength)
	}
	if !(zoom > 0) {
		return nil, 0, fmt.Errorf("zoom %v: %w", zoom, ErrInvalidZoom)
	}

	imagePixels, err := cal.ToPixels(desired)
	if err != nil {
		return nil, 0, err
	}
	pixelLength := imagePixels * zoom

	start := geometry.Pt(margin, float64(imageHeight)*zoom-margin)
	end := start.Add(geometry.Pt(pixelLength, 0))

	return &ScaleBar{
		Length: desired,
		Units:  cal.Units(),
		Line:   geometry.Seg(start, end).Scale(1 / zoom),
	}, pixelLength, nil
}

// Translate moves the bar by a display-space delta observed at zoom.
func (b *ScaleBar) Translate(displayDelta geometry.Point, zoom float64) {
	if !(zoom > 0) {
		return
	}
	b.Line = b.Line.Translate(geometry.ToImage(displayDelta, zoom))
}

// Display returns the bar in display coordinates at zoom.
func (b *ScaleBar) Display(zoom float64) geometry.Segment {
	return b.Line.Scale(zoom)
}

// Label is the text drawn above the bar, e.g. "10 µm".
func (b *ScaleBar) Label() string {
	return fmt.Sprintf("%g %s", b.Length, b.Units)
}

// LabelAnchor returns the display-space point the label is centred on,
// 10 pixels above the bar.
func (b *ScaleBar) LabelAnchor(zoom float64) geometry.Point {
	d := b.Display(zoom)
	mid := d.Midpoint()
	return geometry.Pt(mid.X, math.Min(d.A.Y, d.B.Y)-labelGap)
}

// HitTest reports whether a display-space point grabs the bar: within
// tolerance of the line, or inside the label box.
func (b *ScaleBar) HitTest(p geometry.Point, zoom, tolerance float64) bool {
	if b.Display(zoom).DistanceTo(p) <= tolerance {
		return true
	}

	anchor := b.LabelAnchor(zoom)
	halfWidth := float64(len([]rune(b.Label()))) * labelCharWidth / 2
	return p.X >= anchor.X-halfWidth && p.X <= anchor.X+halfWidth &&
		p.Y >= anchor.Y-labelHeight/2 && p.Y <= anchor.Y+labelHeight/2
}
