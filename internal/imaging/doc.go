// Package imaging provides the raster operations behind the HSV wizard.
//
// This package implements pixel sampling, HSV mask computation, zoom
// resampling, color wheel and hue bar rendering, and the compositing used
// when a masked image is saved with its scale bar. All operations work with
// standard Go image.Image types and use a coordinate system where (0,0) is
// at the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and in image space:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Display-space conversion (multiplying by the zoom factor) happens in the
// geometry and session packages; only Resample and Composite take a zoom.
//
// # Masking
//
// ComputeMask converts every pixel to an 8-bit HSV triple (hue scaled from
// 360 degrees onto 0-255, saturation onto 0-255, value as the largest RGB
// component) and tests it against the 8-bit bounds of a threshold.Range.
// Hue intervals whose low bound exceeds the high bound wrap through 0.
// ApplyMask blacks out excluded pixels; the source is never modified.
//
// # Thread Safety
//
// Image operations are stateless and can be called concurrently on
// different images. RenderCache is not safe for concurrent use.
//
// # Error Handling
//
// Functions return errors for:
//   - Coordinates outside image bounds (ErrOutOfBounds)
//   - File I/O errors during image loading and saving
//   - Encoding errors during image output
package imaging
