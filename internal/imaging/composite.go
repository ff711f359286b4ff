package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

const (
	// scaleBarDisplayWidth is the on-screen stroke width of the scale bar.
	scaleBarDisplayWidth = 5.0
	// minSavedBarWidth keeps the saved bar visible when the display was zoomed in.
	minSavedBarWidth = 2
	// scaleBarLabelGap is the distance from the bar up to the centre of its label.
	scaleBarLabelGap = 10
)

// BarOverlay describes a scale bar to bake into a saved image.
type BarOverlay struct {
	// Line is the bar in image-space coordinates.
	Line geometry.Segment
	// Label is drawn centred above the bar, e.g. "10 µm".
	Label string
}

// SavedBarWidth converts the on-screen bar width at zoom into the stroke
// width used at original scale: 5/zoom, truncated, never below 2 pixels.
func SavedBarWidth(zoom float64) int {
	if zoom <= 0 {
		return minSavedBarWidth
	}
	w := int(scaleBarDisplayWidth / zoom)
	if w < minSavedBarWidth {
		return minSavedBarWidth
	}
	return w
}

// Composite returns a copy of masked with the scale bar drawn on it in
// white. The label is centred on the bar, 10 pixels above it. A nil bar
// returns an unmodified copy. masked is never modified.
func Composite(masked image.Image, bar *BarOverlay, zoom float64) *image.NRGBA {
	out := imaging.Clone(masked)
	if bar == nil {
		return out
	}

	drawLine(out, bar.Line, float64(SavedBarWidth(zoom)), white)

	if bar.Label != "" {
		mid := bar.Line.Midpoint()
		top := math.Min(bar.Line.A.Y, bar.Line.B.Y)
		x := int(math.Round(mid.X)) - labelWidth(bar.Label)/2
		y := int(math.Round(top)) - scaleBarLabelGap - labelHeight()/2
		drawLabel(out, x, y, bar.Label, white)
	}

	return out
}
