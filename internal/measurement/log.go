// Package measurement records calibrated point-to-point lengths and places
// the scale bar.
//
// Lines arrive in display space (image space multiplied by the zoom factor)
// and are stored in image space so they stay valid when the zoom changes.
package measurement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/hsv-wizard/internal/calibration"
	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/undo"
)

// ErrInvalidZoom is returned for a non-positive zoom factor.
var ErrInvalidZoom = errors.New("zoom must be positive")

// Measurement is one recorded length.
type Measurement struct {
	// Length is the physical length in the calibration's units.
	Length float64 `json:"length"`
	// Endpoints is the measured line in image space.
	Endpoints geometry.Segment `json:"endpoints"`
}

// Label formats the length for display next to the line, e.g. "20.00 µm".
func (m Measurement) Label(units string) string {
	return fmt.Sprintf("%.2f %s", m.Length, units)
}

// Log is the ordered list of recorded measurements. The zero value is empty.
type Log struct {
	entries []Measurement
}

// Record converts a display-space line into a physical length and appends
// it.
//
// Parameters:
//   - line: The measured line in display coordinates.
//   - zoom: The zoom factor the line was drawn at.
//   - cal: The active calibration.
//
// Returns:
//   - float64: The physical length.
//   - error: calibration.ErrNotCalibrated or ErrInvalidZoom. The log is
//     not modified on error.
func (l *Log) Record(line geometry.Segment, zoom float64, cal *calibration.Calibration) (float64, error) {
	if err := cal.Require(); err != nil {
		return 0, err
	}
	if !(zoom > 0) {
		return 0, fmt.Errorf("zoom %v: %w", zoom, ErrInvalidZoom)
	}

	imageLine := line.Scale(1 / zoom)
	length, err := cal.ToPhysical(imageLine.Length())
	if err != nil {
		return 0, err
	}

	l.entries = append(l.entries, Measurement{Length: length, Endpoints: imageLine})
	return length, nil
}

// UndoLast removes the most recent measurement.
func (l *Log) UndoLast() error {
	if len(l.entries) == 0 {
		return undo.ErrNothingToUndo
	}
	l.entries = l.entries[:len(l.entries)-1]
	return nil
}

// Len returns the number of measurements.
func (l *Log) Len() int {
	return len(l.entries)
}

// All returns a copy of the measurements in recording order.
func (l *Log) All() []Measurement {
	out := make([]Measurement, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent measurement.
func (l *Log) Last() (Measurement, bool) {
	if len(l.entries) == 0 {
		return Measurement{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Clear removes every measurement.
func (l *Log) Clear() {
	l.entries = nil
}

// Format lists the measurements one per line, numbered from 1:
//
//	1: 20.00 µm
//	2: 3.50 µm
func (l *Log) Format(units string) string {
	var b strings.Builder
	for i, m := range l.entries {
		fmt.Fprintf(&b, "%d: %s\n", i+1, m.Label(units))
	}
	return b.String()
}
