package imaging

import (
	"image"

	"github.com/ironsheep/hsv-wizard/internal/threshold"
)

// RenderCache holds the last masked-and-zoomed buffer so repeated renders
// with unchanged inputs skip the per-pixel work.
//
// The cache remembers the threshold range and zoom factor the buffer was
// produced with. A lookup with different inputs misses, and Invalidate
// drops the buffer outright (used when a new image is loaded, where the
// inputs may be unchanged but the source is not).
//
// RenderCache is not safe for concurrent use; it belongs to a single
// session.
type RenderCache struct {
	valid    bool
	rng      threshold.Range
	zoom     float64
	img      *image.NRGBA
	selected int

	// Renders counts how many buffers have been stored since creation.
	Renders int
}

// Get returns the cached buffer when it was produced from r at zoom.
func (c *RenderCache) Get(r threshold.Range, zoom float64) (*image.NRGBA, bool) {
	if !c.valid || c.rng != r || c.zoom != zoom {
		return nil, false
	}
	return c.img, true
}

// Put stores img as the buffer for r at zoom, replacing any previous entry.
func (c *RenderCache) Put(r threshold.Range, zoom float64, img *image.NRGBA) {
	c.valid = true
	c.rng = r
	c.zoom = zoom
	c.img = img
	c.Renders++
}

// Invalidate discards the cached buffer.
func (c *RenderCache) Invalidate() {
	c.valid = false
	c.img = nil
	c.selected = 0
}

// Selected returns the number of source pixels the cached buffer keeps.
func (c *RenderCache) Selected() int {
	if !c.valid {
		return 0
	}
	return c.selected
}

// Render returns the masked, resampled view of src, reusing the cached
// buffer when r and zoom match the previous call.
func (c *RenderCache) Render(src image.Image, r threshold.Range, zoom float64) *image.NRGBA {
	if img, ok := c.Get(r, zoom); ok {
		return img
	}
	mask := ComputeMask(src, r)
	img := Resample(ApplyMask(src, mask), zoom)
	c.Put(r, zoom, img)
	c.selected = mask.Count()
	return img
}
