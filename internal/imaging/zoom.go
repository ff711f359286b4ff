package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ZoomLimits bounds the display zoom factor and sets the multiplicative
// step used by ZoomIn and ZoomOut.
type ZoomLimits struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// DefaultZoomLimits allows 0.1× to 10× in 10% steps.
func DefaultZoomLimits() ZoomLimits {
	return ZoomLimits{Min: 0.1, Max: 10.0, Step: 1.1}
}

// Clamp constrains zoom to [Min, Max]. NaN and non-positive values become
// Min.
func (l ZoomLimits) Clamp(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < l.Min {
		return l.Min
	}
	if zoom > l.Max {
		return l.Max
	}
	return zoom
}

// In returns zoom increased by one step, clamped. At the upper limit the
// zoom is returned unchanged.
func (l ZoomLimits) In(zoom float64) float64 {
	if zoom >= l.Max {
		return l.Clamp(zoom)
	}
	return l.Clamp(zoom * l.Step)
}

// Out returns zoom decreased by one step, clamped. At the lower limit the
// zoom is returned unchanged.
func (l ZoomLimits) Out(zoom float64) float64 {
	if zoom <= l.Min {
		return l.Clamp(zoom)
	}
	return l.Clamp(zoom / l.Step)
}

// ZoomedSize returns the pixel dimensions of a width×height image shown at
// zoom. Sizes are truncated and never drop below one pixel.
func ZoomedSize(width, height int, zoom float64) (int, int) {
	w := int(float64(width) * zoom)
	h := int(float64(height) * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Resample produces a zoomed copy of img using a Lanczos filter.
//
// The zoom factor is clamped with DefaultZoomLimits before use. A zoom of
// exactly 1 returns an unscaled copy. img is never modified.
func Resample(img image.Image, zoom float64) *image.NRGBA {
	zoom = DefaultZoomLimits().Clamp(zoom)
	bounds := img.Bounds()
	w, h := ZoomedSize(bounds.Dx(), bounds.Dy(), zoom)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
