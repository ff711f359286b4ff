// Package overlay computes the vector geometry drawn on top of the masked
// image and the threshold widgets. Nothing here rasterises; the front end
// draws what these types describe.
package overlay

import (
	"image/color"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/measurement"
)

// Role says what an overlay item represents.
type Role string

const (
	RoleMeasurement     Role = "measurement"
	RoleCalibrationLine Role = "calibration_line"
	RoleScaleBar        Role = "scale_bar"
	RoleThresholdLow    Role = "threshold_low"
	RoleThresholdHigh   Role = "threshold_high"
	RoleThresholdSector Role = "threshold_sector"
	RoleHueBarSelection Role = "hue_bar_selection"
)

var (
	Yellow = color.NRGBA{255, 255, 0, 255}
	Red    = color.NRGBA{255, 0, 0, 255}
	White  = color.NRGBA{255, 255, 255, 255}
	Black  = color.NRGBA{0, 0, 0, 255}
	Gray   = color.NRGBA{128, 128, 128, 128}
)

const (
	lineWidth     = 2.0
	scaleBarWidth = 5.0
	// LabelOffset is how far above its anchor a label sits, in display pixels.
	LabelOffset = 10.0
)

// Line is a stroked segment in display coordinates.
type Line struct {
	Role  Role             `json:"role"`
	Line  geometry.Segment `json:"line"`
	Width float64          `json:"width"`
	Color color.NRGBA      `json:"color"`
}

// Label is text centred on At, in display coordinates.
type Label struct {
	Role  Role           `json:"role"`
	At    geometry.Point `json:"at"`
	Text  string         `json:"text"`
	Color color.NRGBA    `json:"color"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min geometry.Point `json:"min"`
	Max geometry.Point `json:"max"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Measurement returns the line and length label for a recorded measurement
// shown at zoom.
func Measurement(m measurement.Measurement, units string, zoom float64) (Line, Label) {
	d := m.Endpoints.Scale(zoom)
	mid := d.Midpoint()
	return Line{Role: RoleMeasurement, Line: d, Width: lineWidth, Color: Yellow},
		Label{Role: RoleMeasurement, At: geometry.Pt(mid.X, mid.Y-LabelOffset), Text: m.Label(units), Color: Yellow}
}

// Preview returns the line being drawn. Calibration lines are red and
// measurement lines yellow.
func Preview(seg geometry.Segment, calibrating bool) Line {
	if calibrating {
		return Line{Role: RoleCalibrationLine, Line: seg, Width: lineWidth, Color: Red}
	}
	return Line{Role: RoleMeasurement, Line: seg, Width: lineWidth, Color: Yellow}
}

// ScaleBar returns the bar and its label shown at zoom.
func ScaleBar(b *measurement.ScaleBar, zoom float64) (Line, Label) {
	return Line{Role: RoleScaleBar, Line: b.Display(zoom), Width: scaleBarWidth, Color: White},
		Label{Role: RoleScaleBar, At: b.LabelAnchor(zoom), Text: b.Label(), Color: White}
}
