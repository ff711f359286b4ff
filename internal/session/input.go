package session

import (
	"errors"
	"math"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/imaging"
	"github.com/ironsheep/hsv-wizard/internal/interaction"
	"github.com/ironsheep/hsv-wizard/internal/overlay"
)

// Pointer is a primary-button pointer event in viewport coordinates.
//
// Shift, when set, updates the snap modifier before the event is handled.
// A nil Shift leaves the state last reported by SetModifier.
type Pointer struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shift *bool   `json:"shift,omitempty"`
}

func (p Pointer) viewport() geometry.Point {
	return geometry.Pt(p.X, p.Y)
}

func (s *Session) applyModifier(p Pointer) {
	if p.Shift != nil {
		s.fsm.SetSnap(*p.Shift)
	}
}

// display converts a pointer position to display coordinates.
func (s *Session) display(p Pointer) geometry.Point {
	return p.viewport().Add(s.scroll)
}

// toImage converts a pointer position to image coordinates.
func (s *Session) toImage(p Pointer) geometry.Point {
	return geometry.ToImage(s.display(p), s.zoom)
}

// SetModifier reports the state of the snap modifier key.
func (s *Session) SetModifier(shift bool) {
	s.fsm.SetSnap(shift)
}

// PointerPress handles a button press.
//
// In Idle a press on the scale bar starts dragging it and any other press
// starts panning. In ColorPicking the pixel under the pointer sets the
// threshold and the mode ends; presses outside the image are ignored but
// still end the mode. In the drawing modes the press anchors a new line.
func (s *Session) PointerPress(p Pointer) error {
	if s.img == nil {
		return ErrNoImage
	}
	s.applyModifier(p)

	switch s.fsm.Mode() {
	case interaction.Idle:
		d := s.display(p)
		if s.bar != nil && s.bar.HitTest(d, s.zoom, s.barTolerance) {
			return s.fsm.BeginDrag(interaction.DraggingScaleBar, d)
		}
		return s.fsm.BeginDrag(interaction.Panning, p.viewport())

	case interaction.ColorPicking:
		s.pickColor(s.toImage(p))
		s.fsm.Reset()

	case interaction.DrawingCalibrationLine, interaction.DrawingMeasurementLine:
		s.fsm.Begin(s.toImage(p))
	}
	return nil
}

func (s *Session) pickColor(at geometry.Point) {
	x, y := int(math.Floor(at.X)), int(math.Floor(at.Y))
	sample, err := imaging.SampleColor(s.img, x, y)
	if errors.Is(err, imaging.ErrOutOfBounds) {
		s.log.Debug().Int("x", x).Int("y", y).Msg("color pick outside image")
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("color pick failed")
		return
	}

	s.rng.DeriveFromSample(sample.HSV.H, sample.HSV.S, sample.HSV.V)
	s.log.Debug().Str("color", sample.Hex).Msg("color picked")
	s.thresholdChanged()
}

// PointerMove handles pointer motion with the button held.
func (s *Session) PointerMove(p Pointer) error {
	if s.img == nil {
		return ErrNoImage
	}
	s.applyModifier(p)

	switch s.fsm.Mode() {
	case interaction.Panning, interaction.DraggingScaleBar:
		s.dragTo(p)

	case interaction.DrawingCalibrationLine, interaction.DrawingMeasurementLine:
		s.fsm.Update(s.toImage(p))
	}
	return nil
}

// dragTo advances a pan or scale bar drag to p.
func (s *Session) dragTo(p Pointer) {
	switch s.fsm.Mode() {
	case interaction.Panning:
		if d, ok := s.fsm.DragTo(p.viewport()); ok {
			s.ScrollBy(d.Scale(-1))
		}
	case interaction.DraggingScaleBar:
		if d, ok := s.fsm.DragTo(s.display(p)); ok && s.bar != nil {
			s.bar.Translate(d, s.zoom)
		}
	}
}

// PointerRelease handles a button release. Releasing a calibration line
// asks for its physical length; releasing a measurement line records it
// and re-arms for the next one.
func (s *Session) PointerRelease(p Pointer) error {
	if s.img == nil {
		return ErrNoImage
	}
	s.applyModifier(p)

	switch s.fsm.Mode() {
	case interaction.Panning, interaction.DraggingScaleBar:
		s.dragTo(p)
		s.fsm.Reset()

	case interaction.DrawingCalibrationLine:
		if line, ok := s.fsm.End(s.toImage(p)); ok {
			return s.finishCalibrationLine(line)
		}

	case interaction.DrawingMeasurementLine:
		if line, ok := s.fsm.End(s.toImage(p)); ok {
			return s.recordMeasurement(line)
		}
	}
	return nil
}

// WheelPress picks up the threshold line nearest the press on the color
// wheel, if one is within reach.
func (s *Session) WheelPress(x, y float64) overlay.Handle {
	s.wheelHandle = s.wheel.Grab(geometry.Pt(x, y), s.rng)
	return s.wheelHandle
}

// WheelDrag moves the held threshold line to the angle of the pointer.
func (s *Session) WheelDrag(x, y float64) {
	s.moveHueHandle(s.wheel.AngleAt(geometry.Pt(x, y)))
}

// HueBarPress picks up the threshold edge nearest the press on the hue
// bar, if one is within reach. Release with WheelRelease.
func (s *Session) HueBarPress(x float64) overlay.Handle {
	s.wheelHandle = s.hueBar.Grab(x, s.rng)
	return s.wheelHandle
}

// HueBarDrag moves the held threshold edge to the hue under x.
func (s *Session) HueBarDrag(x float64) {
	s.moveHueHandle(s.hueBar.AngleAt(x))
}

func (s *Session) moveHueHandle(angle float64) {
	switch s.wheelHandle {
	case overlay.HandleLow:
		s.SetHue(angle, s.rng.HueHigh)
	case overlay.HandleHigh:
		s.SetHue(s.rng.HueLow, angle)
	}
}

// WheelRelease drops the held threshold line.
func (s *Session) WheelRelease() {
	s.wheelHandle = overlay.HandleNone
}
