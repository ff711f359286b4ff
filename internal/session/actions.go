package session

import (
	"errors"
	"fmt"

	"github.com/ironsheep/hsv-wizard/internal/calibration"
	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/interaction"
	"github.com/ironsheep/hsv-wizard/internal/measurement"
	"github.com/ironsheep/hsv-wizard/internal/undo"
)

const measuringInstructions = "Draw lines on the image to measure lengths. Finish the mode to stop measuring."

// RequestColorPick arms color picking: the next press on the image derives
// the threshold from the pixel under it.
func (s *Session) RequestColorPick() error {
	return s.request(interaction.ColorPicking)
}

// RequestCalibrationLine arms drawing a reference line of known length.
func (s *Session) RequestCalibrationLine() error {
	return s.request(interaction.DrawingCalibrationLine)
}

// RequestMeasuring arms measuring. The mode stays active, recording one
// measurement per drawn line, until FinishMode. The operator is told how
// to measure the first time.
func (s *Session) RequestMeasuring() error {
	if s.img == nil {
		return ErrNoImage
	}
	if err := s.cal.Require(); err != nil {
		s.fsm.Reset()
		s.prompt.Notify(LevelWarning, "Scale Not Calibrated", "Please calibrate the scale first.")
		s.log.Warn().Err(err).Msg("measuring refused")
		return err
	}
	if !s.instructionsShown {
		s.prompt.Notify(LevelInfo, "Measurement", measuringInstructions)
		s.instructionsShown = true
	}
	return s.request(interaction.DrawingMeasurementLine)
}

func (s *Session) request(mode interaction.Mode) error {
	if s.img == nil {
		return ErrNoImage
	}
	return s.fsm.Enter(mode)
}

// FinishMode ends whatever mode is active and returns to Idle.
func (s *Session) FinishMode() {
	s.fsm.Reset()
}

// CalibratePixelSize asks for the physical size of one pixel and applies
// it. Cancelling leaves the calibration as it was.
func (s *Session) CalibratePixelSize() error {
	s.fsm.Reset()

	size, units, ok := s.prompt.AskLengthAndUnits("Pixel Size")
	if !ok {
		s.log.Debug().Msg("pixel size calibration cancelled")
		return nil
	}
	if err := s.cal.FromPixelSize(size, units); err != nil {
		return s.fail("Calibration Error", err)
	}

	s.history.Push(undo.CalibrationLine{Direct: true})
	s.calibrated()
	return nil
}

// finishCalibrationLine completes a drawn reference line.
func (s *Session) finishCalibrationLine(line geometry.Segment) error {
	s.fsm.Reset()

	if _, err := calibration.PixelDistance(line); err != nil {
		return s.fail("Calibration Error", err)
	}

	length, units, ok := s.prompt.AskLengthAndUnits("Calibration")
	if !ok {
		s.log.Debug().Msg("line calibration cancelled")
		return nil
	}
	if err := s.cal.FromReference(line, length, units); err != nil {
		return s.fail("Calibration Error", err)
	}

	s.history.Push(undo.CalibrationLine{Line: line})
	s.calibrated()
	return nil
}

func (s *Session) calibrated() {
	s.prompt.Notify(LevelInfo, "Calibration Complete",
		fmt.Sprintf("Scale calibrated: %.4f %s per pixel.", s.cal.LengthPerPixel(), s.cal.Units()))
	s.log.Info().Float64("length_per_pixel", s.cal.LengthPerPixel()).Str("units", s.cal.Units()).Msg("scale calibrated")
}

// recordMeasurement logs a finished measurement line and re-arms for the
// next one.
func (s *Session) recordMeasurement(line geometry.Segment) error {
	length, err := s.measurements.Record(line.Scale(s.zoom), s.zoom, &s.cal)
	if err != nil {
		s.fsm.Reset()
		return s.fail("Measurement Error", err)
	}

	last, _ := s.measurements.Last()
	s.history.Push(undo.Measurement{Line: last.Endpoints, Length: length})
	s.log.Debug().Float64("length", length).Str("units", s.cal.Units()).Msg("measurement recorded")
	return nil
}

// AddScaleBar asks for a length and places a scale bar of that length near
// the bottom-left corner, replacing any existing bar.
func (s *Session) AddScaleBar() error {
	if s.img == nil {
		return ErrNoImage
	}
	s.fsm.Reset()

	if err := s.cal.Require(); err != nil {
		s.prompt.Notify(LevelWarning, "Scale Not Calibrated", "Please calibrate the scale first.")
		s.log.Warn().Err(err).Msg("scale bar refused")
		return err
	}

	desired, ok := s.prompt.AskScaleBarLength(s.cal.Units())
	if !ok {
		return nil
	}

	bar, pixelLength, err := measurement.PlaceScaleBar(desired, &s.cal, s.zoom, s.img.Bounds().Dy(), s.barMargin)
	if err != nil {
		return s.fail("Error", fmt.Errorf("failed to add scale bar: %w", err))
	}

	s.bar = bar
	s.history.Push(undo.ScaleBar{Line: bar.Line})
	s.log.Debug().Float64("length", desired).Float64("display_pixels", pixelLength).Msg("scale bar placed")
	return nil
}

// Undo reverses the most recent measurement, calibration or scale bar
// placement. An empty history is reported and returns undo.ErrNothingToUndo.
func (s *Session) Undo() error {
	kind, err := s.history.Undo(undoTarget{s})
	if errors.Is(err, undo.ErrNothingToUndo) {
		s.prompt.Notify(LevelInfo, "Undo", "Nothing to undo.")
		return err
	}
	if err != nil {
		s.log.Warn().Err(err).Stringer("kind", kind).Msg("undo incomplete")
		return err
	}
	s.log.Debug().Stringer("kind", kind).Msg("undone")
	return nil
}

// undoTarget applies undo entries to the session.
type undoTarget struct{ s *Session }

func (t undoTarget) RemoveLastMeasurement() error {
	return t.s.measurements.UndoLast()
}

func (t undoTarget) ResetCalibration() {
	t.s.cal.Reset()
}

func (t undoTarget) ClearScaleBar() {
	t.s.bar = nil
	if t.s.fsm.Mode() == interaction.DraggingScaleBar {
		t.s.fsm.Reset()
	}
}

// fail reports err to the operator and returns it.
func (s *Session) fail(title string, err error) error {
	s.prompt.Notify(LevelError, title, errorMessage(err))
	s.log.Warn().Err(err).Str("title", title).Msg("action failed")
	return err
}

// errorMessage phrases known errors the way the operator sees them.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, calibration.ErrZeroLength):
		return "Calibration line length cannot be zero."
	case errors.Is(err, calibration.ErrInvalidUnits):
		return "Please enter the units."
	case errors.Is(err, calibration.ErrInvalidLength):
		return "Please enter a positive length."
	case errors.Is(err, calibration.ErrNotCalibrated):
		return "Please calibrate the scale first."
	default:
		return err.Error()
	}
}
