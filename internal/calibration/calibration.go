// Package calibration converts pixel distances into physical lengths.
//
// A Calibration is established either from a reference line of known
// physical length drawn on the image, or from a directly entered pixel
// size. Until one of those succeeds the calibration is undefined and every
// conversion fails with ErrNotCalibrated. Failed attempts never modify an
// existing calibration.
package calibration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

var (
	// ErrZeroLength is returned when a reference line has no extent.
	ErrZeroLength = errors.New("calibration line has zero length")

	// ErrInvalidUnits is returned for an empty unit label.
	ErrInvalidUnits = errors.New("units must not be empty")

	// ErrInvalidLength is returned for a non-positive or non-finite length.
	ErrInvalidLength = errors.New("length must be a positive number")

	// ErrNotCalibrated is returned by operations that need a calibration
	// before one has been made.
	ErrNotCalibrated = errors.New("scale is not calibrated")
)

// Calibration holds the physical length of one image pixel.
//
// The zero value is uncalibrated.
type Calibration struct {
	lengthPerPixel float64
	units          string
	calibrated     bool
}

// FromReference calibrates from a line drawn in image space whose physical
// length is known.
//
// Parameters:
//   - line: The reference line in image-space pixels.
//   - length: Physical length of the line, in units.
//   - units: Unit label, e.g. "µm". Surrounding whitespace is trimmed.
//
// Returns:
//   - error: ErrZeroLength, ErrInvalidLength or ErrInvalidUnits. On error
//     the previous calibration (if any) is kept.
func (c *Calibration) FromReference(line geometry.Segment, length float64, units string) error {
	pixels, err := PixelDistance(line)
	if err != nil {
		return err
	}
	return c.FromPixelSize(length/pixels, units)
}

// FromPixelSize calibrates directly from the physical size of one pixel.
func (c *Calibration) FromPixelSize(lengthPerPixel float64, units string) error {
	if !validLength(lengthPerPixel) {
		return fmt.Errorf("length per pixel %v: %w", lengthPerPixel, ErrInvalidLength)
	}
	units = strings.TrimSpace(units)
	if units == "" {
		return ErrInvalidUnits
	}

	c.lengthPerPixel = lengthPerPixel
	c.units = units
	c.calibrated = true
	return nil
}

// Reset returns to the uncalibrated state.
func (c *Calibration) Reset() {
	*c = Calibration{}
}

// Calibrated reports whether a calibration has been made.
func (c Calibration) Calibrated() bool {
	return c.calibrated
}

// LengthPerPixel returns the physical length of one image pixel, or 0 when
// uncalibrated.
func (c Calibration) LengthPerPixel() float64 {
	return c.lengthPerPixel
}

// Units returns the unit label, or "" when uncalibrated.
func (c Calibration) Units() string {
	return c.units
}

// Require returns ErrNotCalibrated when no calibration has been made.
func (c Calibration) Require() error {
	if !c.calibrated {
		return ErrNotCalibrated
	}
	return nil
}

// ToPhysical converts an image-space pixel distance into a physical length.
func (c Calibration) ToPhysical(pixels float64) (float64, error) {
	if err := c.Require(); err != nil {
		return 0, err
	}
	return pixels * c.lengthPerPixel, nil
}

// ToPixels converts a physical length into an image-space pixel distance.
func (c Calibration) ToPixels(length float64) (float64, error) {
	if err := c.Require(); err != nil {
		return 0, err
	}
	return length / c.lengthPerPixel, nil
}

// String describes the calibration, e.g. "0.2000 µm per pixel".
func (c Calibration) String() string {
	if !c.calibrated {
		return "not calibrated"
	}
	return fmt.Sprintf("%.4f %s per pixel", c.lengthPerPixel, c.units)
}

// PixelDistance returns the length of an image-space reference line, or
// ErrZeroLength when its endpoints coincide.
func PixelDistance(line geometry.Segment) (float64, error) {
	d := line.Length()
	if d == 0 {
		return 0, ErrZeroLength
	}
	return d, nil
}

func validLength(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
