package imaging

import (
	"errors"
	"fmt"
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrOutOfBounds is returned when a coordinate falls outside the image.
var ErrOutOfBounds = errors.New("coordinates outside image bounds")

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor represents a color in HSV (Hue, Saturation, Value) color space
// using the operator-facing units.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	V float64 `json:"v"` // Value: 0-100 percent (0=black, 100=full brightness)
}

// HSV8 is an HSV triple in the 8-bit domain used for masking.
//
// The hue circle is scaled from 360 degrees onto 0-255, saturation from 0-1
// onto 0-255, and value is the largest RGB component.
type HSV8 struct {
	H uint8
	S uint8
	V uint8
}

// ColorResult contains a sampled color in the representations the
// threshold controls work with.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSV HSVColor `json:"hsv"` // HSV representation in degrees/percent
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) as hex, RGB and HSV.
//   - error: ErrOutOfBounds if the coordinates are outside the image.
//
// Coordinates are relative to the image origin, so sub-images are sampled
// from their own top-left corner.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("sample (%d,%d) in %dx%d image: %w", x, y, bounds.Dx(), bounds.Dy(), ErrOutOfBounds)
	}

	r, g, b := rgb8At(img, bounds.Min.X+x, bounds.Min.Y+y)

	return &ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSV: ToHSV(r, g, b),
	}, nil
}

// ToHSV converts 8-bit RGB to hue in degrees and saturation/value in percent.
func ToHSV(r, g, b uint8) HSVColor {
	h, s, v := toColorful(r, g, b).Hsv()
	return HSVColor{H: h, S: s * 100, V: v * 100}
}

// ToHSV8 converts 8-bit RGB to the 8-bit HSV domain. Fractional hue and
// saturation are truncated.
func ToHSV8(r, g, b uint8) HSV8 {
	h, s, _ := toColorful(r, g, b).Hsv()

	v := r
	if g > v {
		v = g
	}
	if b > v {
		v = b
	}

	return HSV8{
		H: truncate8(h / 360 * 255),
		S: truncate8(s * 255),
		V: v,
	}
}

// FromHSV converts hue (degrees) and saturation/value (0-1) to 8-bit RGB.
func FromHSV(h, s, v float64) RGBColor {
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGBColor{R: r, G: g, B: b}
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

func truncate8(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// rgb8At reads a pixel as 8-bit RGB, dropping alpha.
func rgb8At(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
