package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

const (
	// wheelTickStep is the spacing of the angle ticks around the wheel rim.
	wheelTickStep = 15
	// wheelMajorTickStep is the spacing of the labelled ticks.
	wheelMajorTickStep = 45
	// hueBarTickHeight is the length of the tick marks under the hue bar.
	hueBarTickHeight = 5
	// hueBarLabelArea is the strip below the gradient reserved for ticks and labels.
	hueBarLabelArea = 20
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

// ColorWheel renders the HSV color wheel the hue threshold is chosen on.
//
// The wheel is a (2·radius)² image on a white background. Inside the circle
// the hue follows the angle from the centre (0° pointing right, increasing
// clockwise as in image coordinates), saturation grows linearly from the
// centre to the rim and value is 1. The rim carries a tick every 15°; every
// 45° the tick is longer and labelled with its angle.
func ColorWheel(radius int) *image.NRGBA {
	size := radius * 2
	img := imaging.New(size, size, white)
	if radius <= 0 {
		return img
	}

	r := float64(radius)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - r
			dy := float64(y) - r
			dist := math.Hypot(dx, dy)
			if dist > r {
				continue
			}
			angle := math.Mod(math.Atan2(dy, dx)*180/math.Pi+360, 360)
			c := FromHSV(angle, dist/r, 1)
			img.SetNRGBA(x, y, color.NRGBA{c.R, c.G, c.B, 255})
		}
	}

	center := geometry.Pt(r, r)
	for deg := 0; deg < 360; deg += wheelTickStep {
		rad := float64(deg) * math.Pi / 180
		dir := geometry.Pt(math.Cos(rad), math.Sin(rad))

		inner := r - 10
		if deg%wheelMajorTickStep == 0 {
			inner = r - 20
			drawCenteredLabel(img, center.Add(dir.Scale(r-30)), fmt.Sprintf("%d", deg), black)
		}
		drawLine(img, geometry.Seg(center.Add(dir.Scale(inner)), center.Add(dir.Scale(r))), 1, black)
	}

	return img
}

// HueBar renders a horizontal hue gradient of the given width and gradient
// height, followed by a 20 pixel strip with ticks and angle labels every 45°.
//
// Column x carries hue x/width·360 at full saturation and value.
func HueBar(width, height int) *image.NRGBA {
	img := imaging.New(width, height+hueBarLabelArea, white)
	if width <= 0 {
		return img
	}

	for x := 0; x < width; x++ {
		c := FromHSV(float64(x)/float64(width)*360, 1, 1)
		px := color.NRGBA{c.R, c.G, c.B, 255}
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, px)
		}
	}

	for deg := 0; deg <= 360; deg += wheelMajorTickStep {
		tickX := float64(deg%360) / 360 * float64(width)
		tick := geometry.Seg(geometry.Pt(tickX, float64(height)), geometry.Pt(tickX, float64(height+hueBarTickHeight)))
		drawLine(img, tick, 1, black)

		text := fmt.Sprintf("%d", deg)
		tw := float64(labelWidth(text))
		labelX := tickX
		// Keep the first and last labels inside the bar.
		switch deg {
		case 0:
			labelX = tw/2 + 2
		case 360:
			labelX = float64(width) - tw/2 - 2
		}
		drawLabel(img, int(labelX-tw/2), height+hueBarTickHeight, text, black)
	}

	return img
}
