package session

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/hsv-wizard/internal/calibration"
	"github.com/ironsheep/hsv-wizard/internal/config"
	"github.com/ironsheep/hsv-wizard/internal/geometry"
	"github.com/ironsheep/hsv-wizard/internal/interaction"
	"github.com/ironsheep/hsv-wizard/internal/overlay"
	"github.com/ironsheep/hsv-wizard/internal/threshold"
	"github.com/ironsheep/hsv-wizard/internal/undo"
)

type note struct {
	level   Level
	title   string
	message string
}

// scriptedPrompter answers every question with a fixed reply and records
// notifications.
type scriptedPrompter struct {
	length   float64
	units    string
	lengthOK bool
	scale    float64
	scaleOK  bool
	asked    int
	notes    []note
}

func (p *scriptedPrompter) AskLengthAndUnits(string) (float64, string, bool) {
	p.asked++
	return p.length, p.units, p.lengthOK
}

func (p *scriptedPrompter) AskScaleBarLength(string) (float64, bool) {
	p.asked++
	return p.scale, p.scaleOK
}

func (p *scriptedPrompter) Notify(level Level, title, message string) {
	p.notes = append(p.notes, note{level, title, message})
}

func (p *scriptedPrompter) lastNote() note {
	if len(p.notes) == 0 {
		return note{}
	}
	return p.notes[len(p.notes)-1]
}

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func newLoadedSession(t *testing.T, p *scriptedPrompter) *Session {
	t.Helper()
	s := New(WithPrompter(p))
	s.LoadImage(createInMemoryImage(200, 200, color.NRGBA{200, 30, 30, 255}))
	return s
}

func drag(t *testing.T, s *Session, from, to Pointer) error {
	t.Helper()
	if err := s.PointerPress(from); err != nil {
		t.Fatalf("PointerPress: %v", err)
	}
	if err := s.PointerMove(to); err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	return s.PointerRelease(to)
}

// shifted is a pointer event with the snap modifier held.
func shifted(x, y float64) Pointer {
	held := true
	return Pointer{X: x, Y: y, Shift: &held}
}

func calibrate(t *testing.T, s *Session, p *scriptedPrompter, lpp float64, units string) {
	t.Helper()
	p.length, p.units, p.lengthOK = lpp, units, true
	if err := s.CalibratePixelSize(); err != nil {
		t.Fatalf("CalibratePixelSize: %v", err)
	}
}

func TestNoImage(t *testing.T) {
	s := New()

	if err := s.PointerPress(Pointer{}); !errors.Is(err, ErrNoImage) {
		t.Errorf("PointerPress: got %v, want ErrNoImage", err)
	}
	if _, err := s.Render(); !errors.Is(err, ErrNoImage) {
		t.Errorf("Render: got %v, want ErrNoImage", err)
	}
	if _, err := s.Composite(); !errors.Is(err, ErrNoImage) {
		t.Errorf("Composite: got %v, want ErrNoImage", err)
	}
	if err := s.RequestColorPick(); !errors.Is(err, ErrNoImage) {
		t.Errorf("RequestColorPick: got %v, want ErrNoImage", err)
	}
	if s.Snapshot().HasImage {
		t.Error("Snapshot.HasImage: got true")
	}
}

func TestColorPick(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)

	if err := s.RequestColorPick(); err != nil {
		t.Fatalf("RequestColorPick: %v", err)
	}
	if err := s.PointerPress(Pointer{X: 20, Y: 30}); err != nil {
		t.Fatalf("PointerPress: %v", err)
	}

	r := s.Threshold()
	want := threshold.Range{HueLow: 350, HueHigh: 10, SatLow: 65, SatHigh: 100, ValLow: 58.43, ValHigh: 98.43}
	if math.Abs(r.HueLow-want.HueLow) > 1e-9 || math.Abs(r.HueHigh-want.HueHigh) > 1e-9 {
		t.Errorf("hue: got %v..%v, want 350..10", r.HueLow, r.HueHigh)
	}
	if math.Abs(r.SatLow-want.SatLow) > 1e-9 || r.SatHigh != 100 {
		t.Errorf("saturation: got %v..%v, want 65..100", r.SatLow, r.SatHigh)
	}
	if math.Abs(r.ValLow-want.ValLow) > 0.01 || math.Abs(r.ValHigh-want.ValHigh) > 0.01 {
		t.Errorf("value: got %v..%v, want ~58.43..98.43", r.ValLow, r.ValHigh)
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}

	// The picked color survives its own mask.
	f, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := f.Image.NRGBAAt(20, 30); got != (color.NRGBA{200, 30, 30, 255}) {
		t.Errorf("masked pixel: got %v, want original color", got)
	}
}

func TestColorPick_OutOfBoundsIsSilent(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)
	s.SetViewport(500, 500)

	_ = s.RequestColorPick()
	if err := s.PointerPress(Pointer{X: 300, Y: 300}); err != nil {
		t.Fatalf("PointerPress: %v", err)
	}

	if s.Threshold() != threshold.Default() {
		t.Errorf("threshold changed: %+v", s.Threshold())
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
	if len(p.notes) != 0 {
		t.Errorf("notifications: got %v, want none", p.notes)
	}
}

func TestCalibrationLine(t *testing.T) {
	p := &scriptedPrompter{length: 10, units: "µm", lengthOK: true}
	s := newLoadedSession(t, p)
	s.SetZoom(2)

	if err := s.RequestCalibrationLine(); err != nil {
		t.Fatalf("RequestCalibrationLine: %v", err)
	}
	// 100 display pixels at zoom 2.
	if err := drag(t, s, Pointer{X: 10, Y: 10}, Pointer{X: 110, Y: 10}); err != nil {
		t.Fatalf("release: %v", err)
	}

	cal := s.Calibration()
	if !cal.Calibrated() {
		t.Fatal("Calibrated: got false")
	}
	if math.Abs(cal.LengthPerPixel()-0.2) > 1e-12 {
		t.Errorf("LengthPerPixel: got %v, want 0.2", cal.LengthPerPixel())
	}
	if got := p.lastNote().message; got != "Scale calibrated: 0.2000 µm per pixel." {
		t.Errorf("notification: got %q", got)
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
	if s.UndoDepth() != 1 {
		t.Errorf("UndoDepth: got %d, want 1", s.UndoDepth())
	}
}

func TestCalibrationLine_ZeroLength(t *testing.T) {
	p := &scriptedPrompter{length: 10, units: "µm", lengthOK: true}
	s := newLoadedSession(t, p)

	_ = s.RequestCalibrationLine()
	err := drag(t, s, Pointer{X: 40, Y: 40}, Pointer{X: 40, Y: 40})

	if !errors.Is(err, calibration.ErrZeroLength) {
		t.Fatalf("error: got %v, want ErrZeroLength", err)
	}
	if s.Calibration().Calibrated() {
		t.Error("Calibrated: got true")
	}
	if p.asked != 0 {
		t.Error("length should not be asked for a zero-length line")
	}
	if n := p.lastNote(); n.level != LevelError || n.message != "Calibration line length cannot be zero." {
		t.Errorf("notification: got %+v", n)
	}
	if s.Mode() != interaction.Idle || s.UndoDepth() != 0 {
		t.Errorf("mode %v, undo depth %d; want idle, 0", s.Mode(), s.UndoDepth())
	}
}

func TestCalibrationLine_CancelKeepsPrevious(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 0.5, "mm")

	p.lengthOK = false
	_ = s.RequestCalibrationLine()
	if err := drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 30, Y: 0}); err != nil {
		t.Fatalf("cancel should not be an error: %v", err)
	}

	cal := s.Calibration()
	if !cal.Calibrated() || cal.LengthPerPixel() != 0.5 || cal.Units() != "mm" {
		t.Errorf("calibration changed on cancel: %s", cal.String())
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
}

func TestCalibrationLine_InvalidUnits(t *testing.T) {
	p := &scriptedPrompter{length: 10, units: " ", lengthOK: true}
	s := newLoadedSession(t, p)

	_ = s.RequestCalibrationLine()
	err := drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 30, Y: 0})
	if !errors.Is(err, calibration.ErrInvalidUnits) {
		t.Errorf("error: got %v, want ErrInvalidUnits", err)
	}
	if s.Calibration().Calibrated() {
		t.Error("Calibrated: got true")
	}
}

func TestCalibrationLine_Snapping(t *testing.T) {
	p := &scriptedPrompter{length: 1, units: "mm", lengthOK: true}
	s := newLoadedSession(t, p)

	_ = s.RequestCalibrationLine()
	_ = s.PointerPress(Pointer{X: 0, Y: 0})
	_ = s.PointerMove(shifted(100, 8))

	st := s.Snapshot()
	if st.Line == nil {
		t.Fatal("Snapshot.Line: want the line in progress")
	}
	if math.Abs(st.Line.B.Y) > 1e-9 {
		t.Errorf("snapped end Y: got %v, want 0", st.Line.B.Y)
	}
	if !st.Snap {
		t.Error("Snapshot.Snap: got false")
	}

	f, _ := s.Render()
	last := f.Lines[len(f.Lines)-1]
	if last.Role != overlay.RoleCalibrationLine || last.Color != overlay.Red {
		t.Errorf("preview overlay: got %+v", last)
	}

	_ = s.PointerRelease(shifted(100, 8))
	want := 1 / math.Hypot(100, 8)
	if got := s.Calibration().LengthPerPixel(); math.Abs(got-want) > 1e-12 {
		t.Errorf("LengthPerPixel: got %v, want %v", got, want)
	}
}

func TestCalibrationLine_ModifierKey(t *testing.T) {
	p := &scriptedPrompter{length: 1, units: "mm", lengthOK: true}
	s := newLoadedSession(t, p)

	_ = s.RequestCalibrationLine()
	_ = s.PointerPress(Pointer{X: 0, Y: 0})
	s.SetModifier(true)
	_ = s.PointerMove(Pointer{X: 100, Y: 8})

	st := s.Snapshot()
	if !st.Snap {
		t.Fatal("Snapshot.Snap: pointer event without shift cleared the modifier")
	}
	if st.Line == nil || math.Abs(st.Line.B.Y) > 1e-9 {
		t.Fatalf("snapped line: got %+v, want end on y=0", st.Line)
	}

	s.SetModifier(false)
	released := false
	_ = s.PointerRelease(Pointer{X: 100, Y: 8, Shift: &released})
	want := 1 / math.Hypot(100, 8)
	if got := s.Calibration().LengthPerPixel(); math.Abs(got-want) > 1e-12 {
		t.Errorf("LengthPerPixel: got %v, want %v", got, want)
	}
}

func TestMeasuring(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 0.2, "µm")
	s.SetZoom(1.5)

	if err := s.RequestMeasuring(); err != nil {
		t.Fatalf("RequestMeasuring: %v", err)
	}
	if n := p.lastNote(); n.title != "Measurement" {
		t.Errorf("instructions: got %+v", n)
	}

	// 150 display pixels at zoom 1.5.
	if err := drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 150, Y: 0}); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if s.Mode() != interaction.DrawingMeasurementLine {
		t.Fatalf("Mode after a line: got %v, want measuring", s.Mode())
	}
	if err := drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 0, Y: 15}); err != nil {
		t.Fatalf("second line: %v", err)
	}

	ms := s.Measurements()
	if len(ms) != 2 {
		t.Fatalf("measurements: got %d, want 2", len(ms))
	}
	if math.Abs(ms[0].Length-20) > 1e-9 {
		t.Errorf("first length: got %v, want 20", ms[0].Length)
	}
	if math.Abs(ms[1].Length-2) > 1e-9 {
		t.Errorf("second length: got %v, want 2", ms[1].Length)
	}
	if got := s.MeasurementText(); got != "1: 20.00 µm\n2: 2.00 µm\n" {
		t.Errorf("MeasurementText: got %q", got)
	}

	f, _ := s.Render()
	if len(f.Labels) != 2 || f.Labels[0].Text != "20.00 µm" {
		t.Errorf("labels: got %+v", f.Labels)
	}

	s.FinishMode()
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode after finish: got %v, want idle", s.Mode())
	}

	// Instructions are shown only once.
	before := len(p.notes)
	_ = s.RequestMeasuring()
	if len(p.notes) != before {
		t.Errorf("instructions repeated: %v", p.notes[before:])
	}
}

func TestMeasuring_RequiresCalibration(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)

	err := s.RequestMeasuring()
	if !errors.Is(err, calibration.ErrNotCalibrated) {
		t.Fatalf("error: got %v, want ErrNotCalibrated", err)
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
	if n := p.lastNote(); n.level != LevelWarning {
		t.Errorf("notification: got %+v", n)
	}
}

func TestMeasuring_CalibrationUndoneMidMode(t *testing.T) {
	p := &scriptedPrompter{}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 1, "mm")
	_ = s.RequestMeasuring()

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	err := drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 10, Y: 0})
	if !errors.Is(err, calibration.ErrNotCalibrated) {
		t.Errorf("error: got %v, want ErrNotCalibrated", err)
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
	if len(s.Measurements()) != 0 {
		t.Error("no measurement should be recorded")
	}
}

func TestUndo(t *testing.T) {
	p := &scriptedPrompter{scale: 10, scaleOK: true}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 0.2, "µm")

	_ = s.RequestMeasuring()
	_ = drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 50, Y: 0})
	before := s.Measurements()
	_ = drag(t, s, Pointer{X: 0, Y: 0}, Pointer{X: 80, Y: 0})
	s.FinishMode()

	if err := s.AddScaleBar(); err != nil {
		t.Fatalf("AddScaleBar: %v", err)
	}
	if s.UndoDepth() != 4 {
		t.Fatalf("UndoDepth: got %d, want 4", s.UndoDepth())
	}

	// Scale bar.
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if s.ScaleBar() != nil {
		t.Error("scale bar should be cleared")
	}

	// Last measurement: the log is back to its prior state.
	_ = s.Undo()
	after := s.Measurements()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("measurements: got %+v, want %+v", after, before)
	}

	_ = s.Undo()
	if len(s.Measurements()) != 0 {
		t.Errorf("measurements: got %d, want 0", len(s.Measurements()))
	}

	// Calibration.
	_ = s.Undo()
	if s.Calibration().Calibrated() {
		t.Error("calibration should be reset")
	}

	err := s.Undo()
	if !errors.Is(err, undo.ErrNothingToUndo) {
		t.Errorf("empty undo: got %v, want ErrNothingToUndo", err)
	}
	if n := p.lastNote(); n.message != "Nothing to undo." {
		t.Errorf("notification: got %+v", n)
	}
}

func TestScaleBar_PlaceAndDrag(t *testing.T) {
	p := &scriptedPrompter{scale: 10, scaleOK: true}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 0.2, "µm")

	if err := s.AddScaleBar(); err != nil {
		t.Fatalf("AddScaleBar: %v", err)
	}

	bar := s.ScaleBar()
	if bar.Line.A != geometry.Pt(50, 150) || bar.Line.B != geometry.Pt(100, 150) {
		t.Errorf("bar: got %+v, want (50,150)-(100,150)", bar.Line)
	}

	if err := s.PointerPress(Pointer{X: 75, Y: 150}); err != nil {
		t.Fatalf("PointerPress: %v", err)
	}
	if s.Mode() != interaction.DraggingScaleBar {
		t.Fatalf("Mode: got %v, want dragging_scale_bar", s.Mode())
	}
	_ = s.PointerMove(Pointer{X: 105, Y: 140})
	_ = s.PointerRelease(Pointer{X: 105, Y: 140})

	bar = s.ScaleBar()
	if bar.Line.A != geometry.Pt(80, 140) || bar.Line.B != geometry.Pt(130, 140) {
		t.Errorf("dragged bar: got %+v, want (80,140)-(130,140)", bar.Line)
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode after release: got %v, want idle", s.Mode())
	}
	if s.Scroll() != (geometry.Point{}) {
		t.Errorf("dragging the bar should not scroll, got %+v", s.Scroll())
	}
}

func TestScaleBar_RequiresCalibration(t *testing.T) {
	p := &scriptedPrompter{scale: 10, scaleOK: true}
	s := newLoadedSession(t, p)

	if err := s.AddScaleBar(); !errors.Is(err, calibration.ErrNotCalibrated) {
		t.Errorf("error: got %v, want ErrNotCalibrated", err)
	}
	if p.asked != 0 {
		t.Error("length should not be asked before calibration")
	}
}

func TestScaleBar_InvalidLength(t *testing.T) {
	p := &scriptedPrompter{scale: -1, scaleOK: true}
	s := newLoadedSession(t, p)
	calibrate(t, s, p, 0.2, "µm")

	if err := s.AddScaleBar(); !errors.Is(err, calibration.ErrInvalidLength) {
		t.Errorf("error: got %v, want ErrInvalidLength", err)
	}
	if s.ScaleBar() != nil || s.UndoDepth() != 1 {
		t.Error("a rejected scale bar should leave no trace")
	}
}

func TestPanning(t *testing.T) {
	s := New(WithViewport(100, 100))
	s.LoadImage(createInMemoryImage(200, 200, color.White))

	_ = s.PointerPress(Pointer{X: 50, Y: 50})
	if s.Mode() != interaction.Panning {
		t.Fatalf("Mode: got %v, want panning", s.Mode())
	}
	_ = s.PointerMove(Pointer{X: 30, Y: 40})
	if s.Scroll() != geometry.Pt(20, 10) {
		t.Errorf("Scroll: got %+v, want (20,10)", s.Scroll())
	}

	_ = s.PointerMove(Pointer{X: -500, Y: -500})
	if s.Scroll() != geometry.Pt(100, 100) {
		t.Errorf("Scroll: got %+v, want clamp to (100,100)", s.Scroll())
	}

	_ = s.PointerRelease(Pointer{X: -500, Y: -500})
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
}

func TestPanning_ReleaseMoves(t *testing.T) {
	s := New(WithViewport(100, 100))
	s.LoadImage(createInMemoryImage(200, 200, color.White))

	_ = s.PointerPress(Pointer{X: 50, Y: 50})
	if err := s.PointerRelease(Pointer{X: 40, Y: 45}); err != nil {
		t.Fatalf("PointerRelease: %v", err)
	}
	if s.Scroll() != geometry.Pt(10, 5) {
		t.Errorf("Scroll: got %+v, want (10,5)", s.Scroll())
	}
	if s.Mode() != interaction.Idle {
		t.Errorf("Mode: got %v, want idle", s.Mode())
	}
}

func TestModeRequestsCancelCurrentMode(t *testing.T) {
	s := newLoadedSession(t, &scriptedPrompter{})

	_ = s.RequestCalibrationLine()
	_ = s.PointerPress(Pointer{X: 1, Y: 1})
	_ = s.RequestColorPick()

	if s.Mode() != interaction.ColorPicking {
		t.Errorf("Mode: got %v, want color_picking", s.Mode())
	}
	if s.Snapshot().Line != nil {
		t.Error("line in progress should be discarded")
	}
}

func TestRenderCache(t *testing.T) {
	s := newLoadedSession(t, &scriptedPrompter{})

	f1, _ := s.Render()
	f2, _ := s.Render()
	if f1.Image != f2.Image || s.cache.Renders != 1 {
		t.Errorf("unchanged inputs should reuse the buffer (renders %d)", s.cache.Renders)
	}

	s.SetHue(100, 140)
	f3, _ := s.Render()
	if s.cache.Renders != 2 {
		t.Errorf("threshold change: renders %d, want 2", s.cache.Renders)
	}
	if got := f3.Image.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("red pixel outside green hue: got %v, want black", got)
	}

	s.ZoomIn()
	f4, _ := s.Render()
	if s.cache.Renders != 3 {
		t.Errorf("zoom change: renders %d, want 3", s.cache.Renders)
	}
	if f4.Image.Bounds().Dx() != 220 {
		t.Errorf("zoomed width: got %d, want 220", f4.Image.Bounds().Dx())
	}

	s.LoadImage(createInMemoryImage(10, 10, color.White))
	f5, _ := s.Render()
	if s.cache.Renders != 4 || f5.Image.Bounds().Dx() != 10 {
		t.Errorf("new image: renders %d, width %d", s.cache.Renders, f5.Image.Bounds().Dx())
	}
}

func TestLoadImage_ResetsState(t *testing.T) {
	p := &scriptedPrompter{scale: 10, scaleOK: true}
	s := newLoadedSession(t, p)
	s.SetViewport(50, 50)
	calibrate(t, s, p, 0.2, "µm")
	_ = s.AddScaleBar()
	s.SetHue(10, 20)
	s.SetZoom(3)
	s.ScrollBy(geometry.Pt(40, 40))
	_ = s.RequestMeasuring()

	src := createInMemoryImage(30, 20, color.Black)
	s.LoadImage(src)
	src.Set(0, 0, color.White)

	st := s.Snapshot()
	if st.Threshold != threshold.Default() || st.Zoom != 1 || st.Scroll != (geometry.Point{}) {
		t.Errorf("view not reset: %+v", st)
	}
	if st.Calibrated || st.ScaleBar != nil || st.UndoDepth != 0 || len(st.Measurements) != 0 {
		t.Errorf("measurement state not reset: %+v", st)
	}
	if st.Mode != "idle" {
		t.Errorf("Mode: got %s, want idle", st.Mode)
	}
	if st.Width != 30 || st.Height != 20 {
		t.Errorf("size: got %dx%d, want 30x20", st.Width, st.Height)
	}
	if s.Image().NRGBAAt(0, 0) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("session image should be a copy of the source")
	}
}

func TestComposite(t *testing.T) {
	p := &scriptedPrompter{scale: 10, scaleOK: true}
	s := New(WithPrompter(p))
	s.LoadImage(createInMemoryImage(200, 200, color.NRGBA{0, 0, 200, 255}))
	calibrate(t, s, p, 0.2, "µm")
	s.SetHue(0, 60) // blue is masked out
	_ = s.AddScaleBar()
	s.SetZoom(2)

	out, err := s.Composite()
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 200 {
		t.Errorf("size: got %dx%d, want original 200x200", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.NRGBAAt(75, 150); got.R < 200 || got.G < 200 {
		t.Errorf("bar pixel: got %v, want white", got)
	}
	if got := out.NRGBAAt(10, 10); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("masked pixel: got %v, want black", got)
	}
}

func TestWheelDrag(t *testing.T) {
	s := New()

	// Default range: both lines at 0°. The low line wins.
	if h := s.WheelPress(230, 150); h != overlay.HandleLow {
		t.Fatalf("WheelPress: got %v, want low", h)
	}
	s.WheelDrag(150, 230) // 90°
	if got := s.Threshold().HueLow; math.Abs(got-90) > 1e-9 {
		t.Errorf("HueLow: got %v, want 90", got)
	}
	s.WheelRelease()

	if h := s.WheelPress(150, 230); h != overlay.HandleLow {
		t.Fatalf("WheelPress on low line: got %v", h)
	}
	s.WheelRelease()

	if h := s.WheelPress(150, 70); h != overlay.HandleNone {
		t.Errorf("WheelPress away from lines: got %v, want none", h)
	}
	s.WheelDrag(70, 150)
	if got := s.Threshold().HueLow; math.Abs(got-90) > 1e-9 {
		t.Errorf("drag without a handle changed HueLow to %v", got)
	}
}

func TestHueBarDrag(t *testing.T) {
	s := New()

	// Default range on a 300 px bar: low edge at x=0, high edge at x=300.
	if h := s.HueBarPress(300); h != overlay.HandleHigh {
		t.Fatalf("HueBarPress(300): got %v, want high", h)
	}
	s.HueBarDrag(150)
	if r := s.Threshold(); r.HueLow != 0 || math.Abs(r.HueHigh-180) > 1e-9 {
		t.Errorf("after dragging high edge: got %v-%v, want 0-180", r.HueLow, r.HueHigh)
	}
	s.WheelRelease()

	if h := s.HueBarPress(2); h != overlay.HandleLow {
		t.Fatalf("HueBarPress(2): got %v, want low", h)
	}
	s.HueBarDrag(50)
	if got := s.Threshold().HueLow; math.Abs(got-60) > 1e-9 {
		t.Errorf("HueLow: got %v, want 60", got)
	}
	s.WheelRelease()

	if h := s.HueBarPress(250); h != overlay.HandleNone {
		t.Errorf("HueBarPress away from edges: got %v, want none", h)
	}
}

func TestSetThresholdRGB(t *testing.T) {
	s := newLoadedSession(t, &scriptedPrompter{})
	if _, err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	s.SetThresholdRGB(threshold.RGB{R: 0, G: 255, B: 0}, threshold.RGB{R: 0, G: 0, B: 255})
	r := s.Threshold()
	if r.HueLow != 120 || r.HueHigh != 240 {
		t.Errorf("hue: got %v-%v, want 120-240", r.HueLow, r.HueHigh)
	}

	f, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Selected != 0 {
		t.Errorf("Selected: got %d, want 0 red pixels inside a green-blue range", f.Selected)
	}

	st := s.Snapshot()
	if st.RGBLower != (threshold.RGB{R: 0, G: 255, B: 0}) || st.RGBUpper != (threshold.RGB{R: 0, G: 0, B: 255}) {
		t.Errorf("RGB bounds: got %v, %v", st.RGBLower, st.RGBUpper)
	}
}

func TestRender_Selected(t *testing.T) {
	s := newLoadedSession(t, &scriptedPrompter{})

	f, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Selected != 200*200 {
		t.Errorf("Selected: got %d, want %d", f.Selected, 200*200)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.WheelRadius = 40
	cfg.HueBarWidth = 90
	cfg.ZoomMax = 2

	s := New(OptionsFromConfig(cfg)...)
	if got := s.ColorWheel().Bounds().Dx(); got != 80 {
		t.Errorf("wheel size: got %d, want 80", got)
	}
	if got := s.HueBar().Bounds().Dx(); got != 90 {
		t.Errorf("hue bar width: got %d, want 90", got)
	}
	s.SetZoom(5)
	if s.Zoom() != 2 {
		t.Errorf("Zoom: got %v, want clamp to 2", s.Zoom())
	}
}

func TestLevel_String(t *testing.T) {
	var names []string
	for _, l := range []Level{LevelInfo, LevelWarning, LevelError} {
		names = append(names, l.String())
	}
	if got := strings.Join(names, ","); got != "info,warning,error" {
		t.Errorf("levels: got %s", got)
	}
}
