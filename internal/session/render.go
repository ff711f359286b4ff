package session

import (
	"image"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/imaging"
	"github.com/ironsheep/hsv-wizard/internal/interaction"
	"github.com/ironsheep/hsv-wizard/internal/measurement"
	"github.com/ironsheep/hsv-wizard/internal/overlay"
	"github.com/ironsheep/hsv-wizard/internal/threshold"
)

// Frame is everything a front end needs to draw the session.
type Frame struct {
	// Image is the masked image at the current zoom. It is shared with
	// the render cache and must not be modified.
	Image *image.NRGBA
	Zoom  float64

	// Selected is the number of image pixels the threshold keeps.
	Selected int

	// Scroll is the display coordinate at the viewport origin.
	Scroll geometry.Point

	// Lines and Labels overlay the image, in display coordinates.
	Lines  []overlay.Line
	Labels []overlay.Label

	// Wheel overlays, in color wheel coordinates.
	WheelSector []geometry.Point
	WheelLines  [2]overlay.Line

	// HueBarSelection shades the selected span of the hue bar.
	HueBarSelection []overlay.Rect
}

// Render returns the current frame. The masked image is recomputed only
// when the threshold, the zoom or the image changed since the last call.
func (s *Session) Render() (*Frame, error) {
	if s.img == nil {
		return nil, ErrNoImage
	}

	f := &Frame{
		Image:           s.cache.Render(s.img, s.rng, s.zoom),
		Zoom:            s.zoom,
		Scroll:          s.scroll,
		HueBarSelection: s.HueBarSelection(),
	}
	f.Selected = s.cache.Selected()
	f.WheelSector, f.WheelLines = s.WheelOverlays()

	units := s.cal.Units()
	for _, m := range s.measurements.All() {
		line, label := overlay.Measurement(m, units, s.zoom)
		f.Lines = append(f.Lines, line)
		f.Labels = append(f.Labels, label)
	}

	if s.bar != nil {
		line, label := overlay.ScaleBar(s.bar, s.zoom)
		f.Lines = append(f.Lines, line)
		f.Labels = append(f.Labels, label)
	}

	if line, ok := s.fsm.Line(); ok {
		f.Lines = append(f.Lines, overlay.Preview(line.Scale(s.zoom), s.fsm.Mode() == interaction.DrawingCalibrationLine))
	}

	return f, nil
}

// Composite returns the masked image at original scale with the scale bar
// baked in, ready to be saved.
func (s *Session) Composite() (*image.NRGBA, error) {
	if s.img == nil {
		return nil, ErrNoImage
	}

	var bar *imaging.BarOverlay
	if s.bar != nil {
		bar = &imaging.BarOverlay{Line: s.bar.Line, Label: s.bar.Label()}
	}
	return imaging.Composite(imaging.MaskImage(s.img, s.rng), bar, s.zoom), nil
}

// ColorWheel renders the color wheel at the configured radius.
func (s *Session) ColorWheel() *image.NRGBA {
	return imaging.ColorWheel(int(s.wheel.Radius))
}

// HueBar renders the hue gradient bar at the configured size.
func (s *Session) HueBar() *image.NRGBA {
	return imaging.HueBar(int(s.hueBar.Width), int(s.hueBar.Height))
}

// WheelOverlays returns the shaded sector and the two threshold lines drawn
// on the color wheel. They need no image.
func (s *Session) WheelOverlays() ([]geometry.Point, [2]overlay.Line) {
	return s.wheel.Sector(s.rng), s.wheel.ThresholdLines(s.rng)
}

// HueBarSelection returns the spans of the hue bar inside the threshold,
// two when the hue interval wraps.
func (s *Session) HueBarSelection() []overlay.Rect {
	return s.hueBar.Selection(s.rng)
}

// State is a read-only summary of the session.
type State struct {
	HasImage  bool            `json:"has_image"`
	Width     int             `json:"width,omitempty"`
	Height    int             `json:"height,omitempty"`
	Mode      string          `json:"mode"`
	Snap      bool            `json:"snap"`
	Zoom      float64         `json:"zoom"`
	Scroll    geometry.Point  `json:"scroll"`
	Threshold threshold.Range `json:"threshold"`
	RGBLower  threshold.RGB   `json:"rgb_lower"`
	RGBUpper  threshold.RGB   `json:"rgb_upper"`

	Calibrated     bool    `json:"calibrated"`
	LengthPerPixel float64 `json:"length_per_pixel,omitempty"`
	Units          string  `json:"units,omitempty"`
	Calibration    string  `json:"calibration"`

	Measurements    []measurement.Measurement `json:"measurements"`
	MeasurementText string                    `json:"measurement_text,omitempty"`
	ScaleBar        *measurement.ScaleBar     `json:"scale_bar,omitempty"`
	UndoDepth       int                       `json:"undo_depth"`

	// Line is the line being drawn, in image coordinates.
	Line *geometry.Segment `json:"line,omitempty"`
}

// Snapshot returns the current state summary.
func (s *Session) Snapshot() State {
	st := State{
		HasImage:        s.img != nil,
		Mode:            s.fsm.Mode().String(),
		Snap:            s.fsm.Snapping(),
		Zoom:            s.zoom,
		Scroll:          s.scroll,
		Threshold:       s.rng,
		Calibrated:      s.cal.Calibrated(),
		LengthPerPixel:  s.cal.LengthPerPixel(),
		Units:           s.cal.Units(),
		Calibration:     s.cal.String(),
		Measurements:    s.measurements.All(),
		MeasurementText: s.MeasurementText(),
		ScaleBar:        s.ScaleBar(),
		UndoDepth:       s.history.Len(),
	}
	if s.img != nil {
		st.Width = s.img.Bounds().Dx()
		st.Height = s.img.Bounds().Dy()
	}
	st.RGBLower, st.RGBUpper = s.rng.RGBBounds()
	if line, ok := s.fsm.Line(); ok {
		st.Line = &line
	}
	return st
}
