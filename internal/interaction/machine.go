// Package interaction tracks the single active input mode and the line
// being drawn in it.
//
// Exactly one Mode is active at a time. Operator requests (pick a color,
// draw a calibration line, measure) cancel whatever mode was active before
// entering the new one. Pointer-driven modes (panning and dragging the
// scale bar) only start from Idle.
package interaction

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

// DefaultSnapStep is the angle increment, in degrees, lines snap to.
const DefaultSnapStep = 15.0

// ErrModeBusy is returned when a pointer-driven mode is requested while
// another mode is active.
var ErrModeBusy = errors.New("another mode is active")

// Mode is an input mode.
type Mode int

const (
	Idle Mode = iota
	Panning
	ColorPicking
	DrawingCalibrationLine
	DrawingMeasurementLine
	DraggingScaleBar
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case ColorPicking:
		return "color_picking"
	case DrawingCalibrationLine:
		return "drawing_calibration_line"
	case DrawingMeasurementLine:
		return "drawing_measurement_line"
	case DraggingScaleBar:
		return "dragging_scale_bar"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DrawsLines reports whether pointer input in m draws a line.
func (m Mode) DrawsLines() bool {
	return m == DrawingCalibrationLine || m == DrawingMeasurementLine
}

// pointerDriven modes are entered by a pointer press rather than a request.
func (m Mode) pointerDriven() bool {
	return m == Panning || m == DraggingScaleBar
}

// Machine is the interaction state machine. It is not safe for concurrent
// use.
type Machine struct {
	mode     Mode
	snapStep float64
	snap     bool

	drawing bool
	anchor  geometry.Point
	cursor  geometry.Point

	log zerolog.Logger
}

// New returns a machine in Idle. A non-positive snapStep selects
// DefaultSnapStep.
func New(snapStep float64, log zerolog.Logger) *Machine {
	if snapStep <= 0 {
		snapStep = DefaultSnapStep
	}
	return &Machine{snapStep: snapStep, log: log}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Enter switches to mode, discarding any line in progress.
//
// Panning and DraggingScaleBar can only be entered from Idle; otherwise
// ErrModeBusy is returned and the machine is unchanged.
func (m *Machine) Enter(mode Mode) error {
	if mode.pointerDriven() && m.mode != Idle {
		return fmt.Errorf("enter %s while %s: %w", mode, m.mode, ErrModeBusy)
	}
	m.transition(mode)
	return nil
}

// Reset returns to Idle, discarding any line in progress.
func (m *Machine) Reset() {
	m.transition(Idle)
}

func (m *Machine) transition(to Mode) {
	from := m.mode
	m.mode = to
	m.drawing = false
	m.anchor = geometry.Point{}
	m.cursor = geometry.Point{}
	if from != to {
		m.log.Debug().Stringer("from", from).Stringer("to", to).Msg("mode transition")
	}
}

// PanSuspended reports whether pan dragging is disabled by the active mode.
func (m *Machine) PanSuspended() bool {
	return m.mode != Idle && m.mode != Panning
}

// SetSnap turns angle snapping on or off. Snapping applies only to
// calibration lines.
func (m *Machine) SetSnap(on bool) {
	m.snap = on
}

// Snapping reports whether angle snapping is on.
func (m *Machine) Snapping() bool {
	return m.snap
}

// SnapStep returns the snapping increment in degrees.
func (m *Machine) SnapStep() float64 {
	return m.snapStep
}

// Begin anchors a new line at p. It returns false when the active mode does
// not draw lines.
func (m *Machine) Begin(p geometry.Point) bool {
	if !m.mode.DrawsLines() {
		return false
	}
	m.drawing = true
	m.anchor = p
	m.cursor = p
	return true
}

// Update moves the free end of the line in progress to p, snapped when
// snapping applies, and returns the line.
func (m *Machine) Update(p geometry.Point) (geometry.Segment, bool) {
	if !m.drawing {
		return geometry.Segment{}, false
	}
	if m.snap && m.mode == DrawingCalibrationLine {
		p = geometry.SnapAngle(m.anchor, p, m.snapStep)
	}
	m.cursor = p
	return geometry.Seg(m.anchor, m.cursor), true
}

// End finishes the line in progress at p and returns it. The mode is left
// unchanged; callers decide whether to re-arm or return to Idle.
func (m *Machine) End(p geometry.Point) (geometry.Segment, bool) {
	line, ok := m.Update(p)
	if !ok {
		return geometry.Segment{}, false
	}
	m.drawing = false
	return line, true
}

// Line returns the line in progress, if any.
func (m *Machine) Line() (geometry.Segment, bool) {
	if !m.drawing {
		return geometry.Segment{}, false
	}
	return geometry.Seg(m.anchor, m.cursor), true
}

// BeginDrag enters a pointer-driven mode with the pointer at p.
func (m *Machine) BeginDrag(mode Mode, p geometry.Point) error {
	if !mode.pointerDriven() {
		return fmt.Errorf("%s is not a drag mode", mode)
	}
	if err := m.Enter(mode); err != nil {
		return err
	}
	m.cursor = p
	return nil
}

// DragTo moves the drag pointer to p and returns the displacement since the
// previous position.
func (m *Machine) DragTo(p geometry.Point) (geometry.Point, bool) {
	if !m.mode.pointerDriven() {
		return geometry.Point{}, false
	}
	delta := p.Sub(m.cursor)
	m.cursor = p
	return delta, true
}
