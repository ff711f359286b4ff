package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

// labelFace is the fixed-size face used for every label baked into a raster.
var labelFace = basicfont.Face7x13

// drawLine strokes seg onto dst with the given width, antialiased.
// Zero-length segments draw nothing.
func drawLine(dst draw.Image, seg geometry.Segment, width float64, c color.Color) {
	length := seg.Length()
	if length == 0 || width <= 0 {
		return
	}

	d := seg.B.Sub(seg.A)
	n := geometry.Pt(-d.Y, d.X).Scale(width / 2 / length)

	fillPolygon(dst, []geometry.Point{
		seg.A.Add(n),
		seg.B.Add(n),
		seg.B.Sub(n),
		seg.A.Sub(n),
	}, c)
}

// fillPolygon fills the closed polygon pts onto dst.
func fillPolygon(dst draw.Image, pts []geometry.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// labelWidth returns the rendered width of text in pixels.
func labelWidth(text string) int {
	return font.MeasureString(labelFace, text).Ceil()
}

// labelHeight returns the line height of the label face in pixels.
func labelHeight() int {
	return labelFace.Metrics().Height.Ceil()
}

// drawLabel draws text with its top-left corner at (x, y).
func drawLabel(dst draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.P(x, y+labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawCenteredLabel draws text centred horizontally and vertically on p.
func drawCenteredLabel(dst draw.Image, p geometry.Point, text string, c color.Color) {
	x := int(math.Round(p.X)) - labelWidth(text)/2
	y := int(math.Round(p.Y)) - labelHeight()/2
	drawLabel(dst, x, y, text, c)
}
