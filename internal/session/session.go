// Package session owns the state of one HSV wizard session and drives it
// from operator input.
//
// A Session holds the loaded image, the threshold range, the zoom and
// scroll of the view, the calibration, the measurement log, the scale bar,
// the undo stack and the interaction state machine. Front ends feed it
// pointer events and requests; it answers with rendered frames and
// notifications through a Prompter.
//
// # Coordinates
//
// Pointer events arrive in viewport coordinates. Adding the scroll offset
// gives display coordinates (image coordinates times zoom). Everything the
// session stores is in image coordinates so it survives zoom changes.
//
// # Errors
//
// Failed actions return their error, report it through Prompter.Notify and
// leave the state machine in Idle. None are fatal to the session.
//
// # Thread Safety
//
// A Session is not safe for concurrent use. Prompts are synchronous.
package session

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/ironsheep/hsv-wizard/internal/calibration"
	"github.com/ironsheep/hsv-wizard/internal/config"
	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/interaction"
	imgops "github.com/ironsheep/hsv-wizard/internal/imaging"
	"github.com/ironsheep/hsv-wizard/internal/measurement"
	"github.com/ironsheep/hsv-wizard/internal/overlay"
	"github.com/ironsheep/hsv-wizard/internal/threshold"
	"github.com/ironsheep/hsv-wizard/internal/undo"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Session is a single-image, single-operator HSV wizard session.
type Session struct {
	log    zerolog.Logger
	prompt Prompter

	limits       imgops.ZoomLimits
	snapStep     float64
	barMargin    float64
	barTolerance float64
	wheel        overlay.Wheel
	hueBar       overlay.HueBar
	viewport     geometry.Point

	img          *image.NRGBA
	rng          threshold.Range
	zoom         float64
	scroll       geometry.Point
	cal          calibration.Calibration
	measurements measurement.Log
	bar          *measurement.ScaleBar
	history      undo.Stack
	fsm          *interaction.Machine
	cache        imgops.RenderCache

	instructionsShown bool
	wheelHandle       overlay.Handle
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithPrompter sets the operator dialog provider.
func WithPrompter(p Prompter) Option {
	return func(s *Session) {
		if p != nil {
			s.prompt = p
		}
	}
}

// WithZoomLimits sets the zoom range and step.
func WithZoomLimits(l imgops.ZoomLimits) Option {
	return func(s *Session) { s.limits = l }
}

// WithSnapStep sets the angle snapping increment in degrees.
func WithSnapStep(deg float64) Option {
	return func(s *Session) { s.snapStep = deg }
}

// WithScaleBar sets the placement margin and the grab tolerance of the
// scale bar, both in display pixels.
func WithScaleBar(margin, tolerance float64) Option {
	return func(s *Session) {
		s.barMargin = margin
		s.barTolerance = tolerance
	}
}

// WithViewport sets the visible area size used to bound scrolling.
func WithViewport(width, height float64) Option {
	return func(s *Session) { s.viewport = geometry.Pt(width, height) }
}

// WithWidgets sets the color wheel radius and hue bar size.
func WithWidgets(wheelRadius, hueBarWidth, hueBarHeight int) Option {
	return func(s *Session) {
		s.wheel = overlay.Wheel{Radius: float64(wheelRadius)}
		s.hueBar = overlay.HueBar{Width: float64(hueBarWidth), Height: float64(hueBarHeight)}
	}
}

// OptionsFromConfig translates a validated config into options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithZoomLimits(imgops.ZoomLimits{Min: cfg.ZoomMin, Max: cfg.ZoomMax, Step: cfg.ZoomStep}),
		WithSnapStep(cfg.SnapDegrees),
		WithScaleBar(cfg.ScaleBarMargin, cfg.ScaleBarHitTolerance),
		WithWidgets(cfg.WheelRadius, cfg.HueBarWidth, cfg.HueBarHeight),
	}
}

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		log:          zerolog.Nop(),
		prompt:       nopPrompter{},
		limits:       imgops.DefaultZoomLimits(),
		snapStep:     interaction.DefaultSnapStep,
		barMargin:    measurement.DefaultScaleBarMargin,
		barTolerance: 8,
		wheel:        overlay.Wheel{Radius: 150},
		hueBar:       overlay.HueBar{Width: 300, Height: 50},
		rng:          threshold.Default(),
		zoom:         1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fsm = interaction.New(s.snapStep, s.log)
	return s
}

// LoadImage replaces the session image and resets every piece of state:
// threshold, zoom, scroll, calibration, measurements, scale bar, undo
// history and mode. img is copied; later changes to it are not seen.
func (s *Session) LoadImage(img image.Image) {
	s.img = imaging.Clone(img)
	s.rng.Reset()
	s.zoom = 1
	s.scroll = geometry.Point{}
	s.cal.Reset()
	s.measurements.Clear()
	s.bar = nil
	s.history.Clear()
	s.fsm.Reset()
	s.cache.Invalidate()
	s.wheelHandle = overlay.HandleNone

	b := s.img.Bounds()
	s.log.Info().Int("width", b.Dx()).Int("height", b.Dy()).Msg("image loaded")
}

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool {
	return s.img != nil
}

// Image returns the loaded image, or nil. Callers must not modify it.
func (s *Session) Image() *image.NRGBA {
	return s.img
}

// Threshold returns the current threshold range.
func (s *Session) Threshold() threshold.Range {
	return s.rng
}

// SetHue sets the hue bounds in degrees. low > high selects the interval
// through 0°.
func (s *Session) SetHue(low, high float64) {
	s.rng.SetHue(low, high)
	s.thresholdChanged()
}

// SetSaturation sets the saturation bounds in percent, in either order.
func (s *Session) SetSaturation(a, b float64) {
	s.rng.SetSaturation(a, b)
	s.thresholdChanged()
}

// SetValue sets the value bounds in percent, in either order.
func (s *Session) SetValue(a, b float64) {
	s.rng.SetValue(a, b)
	s.thresholdChanged()
}

// SetThresholdRGB sets all six bounds from lower and upper RGB colours.
func (s *Session) SetThresholdRGB(lower, upper threshold.RGB) {
	s.rng.SetFromRGB(lower, upper)
	s.thresholdChanged()
}

func (s *Session) thresholdChanged() {
	s.cache.Invalidate()
	s.log.Debug().
		Float64("hue_low", s.rng.HueLow).Float64("hue_high", s.rng.HueHigh).
		Float64("sat_low", s.rng.SatLow).Float64("sat_high", s.rng.SatHigh).
		Float64("val_low", s.rng.ValLow).Float64("val_high", s.rng.ValHigh).
		Msg("threshold changed")
}

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 {
	return s.zoom
}

// ZoomIn increases the zoom by one step.
func (s *Session) ZoomIn() {
	s.setZoom(s.limits.In(s.zoom))
}

// ZoomOut decreases the zoom by one step.
func (s *Session) ZoomOut() {
	s.setZoom(s.limits.Out(s.zoom))
}

// SetZoom sets the zoom factor, clamped to the configured limits.
func (s *Session) SetZoom(zoom float64) {
	s.setZoom(s.limits.Clamp(zoom))
}

func (s *Session) setZoom(zoom float64) {
	if zoom == s.zoom {
		return
	}
	s.zoom = zoom
	s.cache.Invalidate()
	s.clampScroll()
	s.log.Debug().Float64("zoom", zoom).Msg("zoom changed")
}

// SetViewport sets the visible area size, in display pixels.
func (s *Session) SetViewport(width, height float64) {
	s.viewport = geometry.Pt(width, height)
	s.clampScroll()
}

// Scroll returns the display coordinate shown at the viewport origin.
func (s *Session) Scroll() geometry.Point {
	return s.scroll
}

// ScrollBy moves the view by d display pixels, staying inside the image.
func (s *Session) ScrollBy(d geometry.Point) {
	s.scroll = s.scroll.Add(d)
	s.clampScroll()
}

func (s *Session) clampScroll() {
	maxX, maxY := 0.0, 0.0
	if s.img != nil {
		w, h := imgops.ZoomedSize(s.img.Bounds().Dx(), s.img.Bounds().Dy(), s.zoom)
		maxX = max(0, float64(w)-s.viewport.X)
		maxY = max(0, float64(h)-s.viewport.Y)
	}
	s.scroll = geometry.Pt(min(max(s.scroll.X, 0), maxX), min(max(s.scroll.Y, 0), maxY))
}

// Mode returns the active interaction mode.
func (s *Session) Mode() interaction.Mode {
	return s.fsm.Mode()
}

// Calibration returns a copy of the calibration.
func (s *Session) Calibration() calibration.Calibration {
	return s.cal
}

// Measurements returns the recorded measurements.
func (s *Session) Measurements() []measurement.Measurement {
	return s.measurements.All()
}

// MeasurementText lists the measurements one per line, e.g. "1: 20.00 µm".
func (s *Session) MeasurementText() string {
	return s.measurements.Format(s.cal.Units())
}

// ScaleBar returns a copy of the scale bar, or nil.
func (s *Session) ScaleBar() *measurement.ScaleBar {
	if s.bar == nil {
		return nil
	}
	b := *s.bar
	return &b
}

// UndoDepth returns the number of undoable actions.
func (s *Session) UndoDepth() int {
	return s.history.Len()
}
