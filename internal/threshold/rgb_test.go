package threshold

import (
	"math"
	"testing"
)

func TestSetFromRGB(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper RGB
		want         Range
	}{
		{
			"red to yellow",
			RGB{255, 0, 0}, RGB{255, 255, 0},
			Range{HueLow: 0, HueHigh: 60, SatLow: 100, SatHigh: 100, ValLow: 100, ValHigh: 100},
		},
		{
			"wrapping hue",
			RGB{255, 0, 255}, RGB{255, 128, 0},
			Range{HueLow: 300, HueHigh: 30.1176, SatLow: 100, SatHigh: 100, ValLow: 100, ValHigh: 100},
		},
		{
			"saturation and value reordered",
			RGB{255, 255, 255}, RGB{0, 0, 0},
			Range{HueLow: 0, HueHigh: 0, SatLow: 0, SatHigh: 0, ValLow: 0, ValHigh: 100},
		},
		{
			"dull lower, vivid upper",
			RGB{102, 51, 51}, RGB{0, 255, 0},
			Range{HueLow: 0, HueHigh: 120, SatLow: 50, SatHigh: 100, ValLow: 40, ValHigh: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			r.SetFromRGB(tt.lower, tt.upper)
			if !nearRange(r, tt.want, 1e-3) {
				t.Errorf("SetFromRGB(%v, %v): got %+v, want %+v", tt.lower, tt.upper, r, tt.want)
			}
			if r.SatLow > r.SatHigh || r.ValLow > r.ValHigh {
				t.Errorf("bounds out of order: %+v", r)
			}
		})
	}
}

func TestRGBBounds(t *testing.T) {
	tests := []struct {
		name         string
		r            Range
		lower, upper RGB
	}{
		{"default", Default(), RGB{0, 0, 0}, RGB{255, 0, 0}},
		{"green window", Range{HueLow: 120, HueHigh: 120, SatLow: 100, SatHigh: 100, ValLow: 50, ValHigh: 100}, RGB{0, 128, 0}, RGB{0, 255, 0}},
		{"full hue wraps to red", Range{HueLow: 360, HueHigh: 360, SatLow: 100, SatHigh: 100, ValLow: 100, ValHigh: 100}, RGB{255, 0, 0}, RGB{255, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, upper := tt.r.RGBBounds()
			if lower != tt.lower || upper != tt.upper {
				t.Errorf("RGBBounds: got %v, %v; want %v, %v", lower, upper, tt.lower, tt.upper)
			}
		})
	}
}

func nearRange(a, b Range, tol float64) bool {
	near := func(x, y float64) bool { return math.Abs(x-y) <= tol }
	return near(a.HueLow, b.HueLow) && near(a.HueHigh, b.HueHigh) &&
		near(a.SatLow, b.SatLow) && near(a.SatHigh, b.SatHigh) &&
		near(a.ValLow, b.ValLow) && near(a.ValHigh, b.ValHigh)
}
