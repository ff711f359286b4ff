// Package threshold models the six HSV bounds that select which pixels of
// an image survive masking.
//
// Hue is expressed in degrees (0-360) and is circular: when HueLow is greater
// than HueHigh the selected interval passes through 0°, i.e. it is
// [HueLow, 360) ∪ [0, HueHigh]. Saturation and value are percentages
// (0-100) and are always kept ordered.
//
// Setters never fail. Out-of-domain input is clamped (saturation/value) or
// wrapped (hue) instead of being rejected.
package threshold

import "math"

const (
	// HueMax is the size of the hue circle in degrees.
	HueMax = 360.0

	// PercentMax is the upper bound of saturation and value.
	PercentMax = 100.0

	// PickHueTolerance is the half-width of the hue window derived from a
	// sampled pixel, in degrees.
	PickHueTolerance = 10.0

	// PickTolerance is the half-width of the saturation and value windows
	// derived from a sampled pixel, in percentage points.
	PickTolerance = 20.0
)

// Range is the HSV selection window.
type Range struct {
	HueLow  float64 `json:"hue_low"`  // degrees, 0-360
	HueHigh float64 `json:"hue_high"` // degrees, 0-360; may be below HueLow (wrap-around)
	SatLow  float64 `json:"sat_low"`  // percent, 0-100
	SatHigh float64 `json:"sat_high"` // percent, 0-100, >= SatLow
	ValLow  float64 `json:"val_low"`  // percent, 0-100
	ValHigh float64 `json:"val_high"` // percent, 0-100, >= ValLow
}

// Default returns the full-range selection (0,360,0,100,0,100) that keeps
// every pixel.
func Default() Range {
	return Range{
		HueLow:  0,
		HueHigh: HueMax,
		SatLow:  0,
		SatHigh: PercentMax,
		ValLow:  0,
		ValHigh: PercentMax,
	}
}

// Reset restores the full-range defaults.
func (r *Range) Reset() {
	*r = Default()
}

// SetHue stores the hue bounds as given. They are not reordered: low > high
// is the wrap-around encoding. Values outside [0,360] are wrapped onto the
// circle.
func (r *Range) SetHue(low, high float64) {
	r.HueLow = normalizeHue(low)
	r.HueHigh = normalizeHue(high)
}

// SetSaturation stores the saturation bounds in ascending order, clamped to
// [0,100]. The argument order does not matter.
func (r *Range) SetSaturation(a, b float64) {
	r.SatLow, r.SatHigh = ordered(a, b)
}

// SetValue stores the value bounds in ascending order, clamped to [0,100].
// The argument order does not matter.
func (r *Range) SetValue(a, b float64) {
	r.ValLow, r.ValHigh = ordered(a, b)
}

// DeriveFromSample centres the selection on a sampled colour: a ±10° hue
// window (wrapping across 0°) and ±20 point saturation and value windows.
// The saturation and value windows are clamped to the domain rather than
// re-centred, so samples near 0 or 100 get asymmetric windows.
//
// h is in degrees, s and v in percent.
func (r *Range) DeriveFromSample(h, s, v float64) {
	r.HueLow = wrapHue(h - PickHueTolerance)
	r.HueHigh = wrapHue(h + PickHueTolerance)
	r.SatLow = clampPercent(s - PickTolerance)
	r.SatHigh = clampPercent(s + PickTolerance)
	r.ValLow = clampPercent(v - PickTolerance)
	r.ValHigh = clampPercent(v + PickTolerance)
}

// Wraps reports whether the hue interval passes through 0°.
func (r Range) Wraps() bool {
	return r.HueLow > r.HueHigh
}

// ContainsHue reports whether the hue h (degrees) falls in the circular
// hue interval.
func (r Range) ContainsHue(h float64) bool {
	if r.Wraps() {
		return h >= r.HueLow || h <= r.HueHigh
	}
	return h >= r.HueLow && h <= r.HueHigh
}

// Bounds8 converts the range into the 0-255 integer domain used when
// masking 8-bit images. The hue circle maps 360° onto 255 units. Fractional
// results are truncated.
func (r Range) Bounds8() Bounds8 {
	return Bounds8{
		HueLow:  to8(r.HueLow, HueMax),
		HueHigh: to8(r.HueHigh, HueMax),
		SatLow:  to8(r.SatLow, PercentMax),
		SatHigh: to8(r.SatHigh, PercentMax),
		ValLow:  to8(r.ValLow, PercentMax),
		ValHigh: to8(r.ValHigh, PercentMax),
	}
}

// Bounds8 is a Range expressed in 8-bit units.
type Bounds8 struct {
	HueLow, HueHigh uint8
	SatLow, SatHigh uint8
	ValLow, ValHigh uint8
}

// Contains tests an 8-bit HSV triple against the bounds. Hue uses the
// circular rule, saturation and value plain inclusive intervals.
func (b Bounds8) Contains(h, s, v uint8) bool {
	var hueIn bool
	if b.HueLow <= b.HueHigh {
		hueIn = h >= b.HueLow && h <= b.HueHigh
	} else {
		hueIn = h >= b.HueLow || h <= b.HueHigh
	}
	return hueIn &&
		s >= b.SatLow && s <= b.SatHigh &&
		v >= b.ValLow && v <= b.ValHigh
}

func to8(x, max float64) uint8 {
	u := int(x / max * 255)
	if u < 0 {
		return 0
	}
	if u > 255 {
		return 255
	}
	return uint8(u)
}

// normalizeHue keeps values already on [0,360] (including 360 itself, so the
// default full range survives) and wraps anything else onto [0,360).
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	if h >= 0 && h <= HueMax {
		return h
	}
	return wrapHue(h)
}

func wrapHue(h float64) float64 {
	m := math.Mod(h, HueMax)
	if m < 0 {
		m += HueMax
	}
	return m
}

func clampPercent(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(PercentMax, x))
}

func ordered(a, b float64) (float64, float64) {
	a, b = clampPercent(a), clampPercent(b)
	return math.Min(a, b), math.Max(a, b)
}
