package threshold

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour used to enter threshold bounds as RGB triples.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) hsv() (h, s, v float64) {
	h, s, v = colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return h, s * PercentMax, v * PercentMax
}

func rgbFromHSV(h, s, v float64) RGB {
	r, g, b := colorful.Hsv(math.Mod(h, HueMax), s/PercentMax, v/PercentMax).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// SetFromRGB sets all six bounds from a lower and an upper colour. The hue
// bounds come from each colour as is, so a lower hue above the upper one
// selects a wrapping interval. Saturation and value are reordered.
func (r *Range) SetFromRGB(lower, upper RGB) {
	hl, sl, vl := lower.hsv()
	hh, sh, vh := upper.hsv()
	r.SetHue(hl, hh)
	r.SetSaturation(sl, sh)
	r.SetValue(vl, vh)
}

// RGBBounds returns the colours at the lower and upper corners of the
// range. 360° is rendered as 0°.
func (r Range) RGBBounds() (lower, upper RGB) {
	return rgbFromHSV(r.HueLow, r.SatLow, r.ValLow), rgbFromHSV(r.HueHigh, r.SatHigh, r.ValHigh)
}
