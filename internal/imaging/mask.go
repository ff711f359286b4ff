package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/hsv-wizard/internal/threshold"
)

// Mask is a per-pixel inclusion matrix, stored row-major.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an all-false mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether pixel (x, y) is included. Out-of-range coordinates
// are reported as excluded.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks pixel (x, y) as included or excluded.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = v
}

// Count returns the number of included pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// ComputeMask converts every pixel of img to the 8-bit HSV domain and tests
// it against r.
//
// A pixel is included when its hue lies in the (possibly wrapping) hue
// interval and its saturation and value lie in their inclusive intervals.
// Alpha is ignored. The function is pure: img is never modified.
func ComputeMask(img image.Image, r threshold.Range) *Mask {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	mask := NewMask(width, height)
	b8 := r.Bounds8()

	pix, stride := rgbPixels(img)

	for y := 0; y < height; y++ {
		row := pix[y*stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			hsv := ToHSV8(row[i], row[i+1], row[i+2])
			mask.bits[y*width+x] = b8.Contains(hsv.H, hsv.S, hsv.V)
		}
	}

	return mask
}

// ApplyMask returns a copy of img where every pixel excluded by mask is
// black and every included pixel keeps its original RGB. The result is
// fully opaque. img is never modified.
func ApplyMask(img image.Image, mask *Mask) *image.NRGBA {
	out := imaging.Clone(img)
	width, height := out.Bounds().Dx(), out.Bounds().Dy()

	for y := 0; y < height; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			if !mask.At(x, y) {
				row[i], row[i+1], row[i+2] = 0, 0, 0
			}
			row[i+3] = 0xff
		}
	}

	return out
}

// MaskImage computes the mask for r and applies it in one step.
func MaskImage(img image.Image, r threshold.Range) *image.NRGBA {
	return ApplyMask(img, ComputeMask(img, r))
}

// rgbPixels exposes 8-bit RGBA rows for img with the origin moved to (0,0).
// NRGBA images are read directly; anything else is converted once.
func rgbPixels(img image.Image) ([]uint8, int) {
	if n, ok := img.(*image.NRGBA); ok {
		b := n.Bounds()
		if b.Min == (image.Point{}) {
			return n.Pix, n.Stride
		}
		return n.Pix[n.PixOffset(b.Min.X, b.Min.Y):], n.Stride
	}
	rgba := clone.AsRGBA(img)
	return rgba.Pix[rgba.PixOffset(rgba.Bounds().Min.X, rgba.Bounds().Min.Y):], rgba.Stride
}
