// Package undo records reversible session actions.
//
// Each entry is one of a closed set of variants. Undo pops the most recent
// entry and reverses exactly the mutation it stands for through a Target.
package undo

import (
	"errors"
	"fmt"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

// ErrNothingToUndo is returned when the stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Kind identifies an entry variant.
type Kind int

const (
	KindMeasurement Kind = iota
	KindCalibrationLine
	KindScaleBar
)

func (k Kind) String() string {
	switch k {
	case KindMeasurement:
		return "measurement"
	case KindCalibrationLine:
		return "calibration_line"
	case KindScaleBar:
		return "scale_bar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is a reversible action. The set of implementations is closed.
type Entry interface {
	Kind() Kind
	sealed()
}

// Measurement records one appended measurement.
type Measurement struct {
	Line   geometry.Segment // image space
	Length float64
}

// CalibrationLine records a successful calibration. Direct is set when the
// pixel size was entered without drawing a line.
type CalibrationLine struct {
	Line   geometry.Segment // image space
	Direct bool
}

// ScaleBar records a scale bar placement.
type ScaleBar struct {
	Line geometry.Segment // image space
}

func (Measurement) Kind() Kind     { return KindMeasurement }
func (CalibrationLine) Kind() Kind { return KindCalibrationLine }
func (ScaleBar) Kind() Kind        { return KindScaleBar }

func (Measurement) sealed()     {}
func (CalibrationLine) sealed() {}
func (ScaleBar) sealed()        {}

// Target is the state an undo is applied to.
type Target interface {
	RemoveLastMeasurement() error
	ResetCalibration()
	ClearScaleBar()
}

// Stack is a LIFO of entries. The zero value is empty and ready to use.
type Stack struct {
	entries []Entry
}

// Push adds e to the top of the stack.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Peek returns the top entry without removing it.
func (s *Stack) Peek() (Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// Clear drops every entry.
func (s *Stack) Clear() {
	s.entries = nil
}

// Undo pops the top entry and reverses it on t.
//
// An empty stack returns ErrNothingToUndo and leaves t untouched. If t
// fails to reverse a measurement the entry is still consumed and the
// error is returned wrapped.
func (s *Stack) Undo(t Target) (Kind, error) {
	e, ok := s.Peek()
	if !ok {
		return 0, ErrNothingToUndo
	}
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]

	switch e := e.(type) {
	case Measurement:
		if err := t.RemoveLastMeasurement(); err != nil {
			return e.Kind(), fmt.Errorf("undo %s: %w", e.Kind(), err)
		}
	case CalibrationLine:
		t.ResetCalibration()
	case ScaleBar:
		t.ClearScaleBar()
	default:
		panic(fmt.Sprintf("undo: unhandled entry %T", e))
	}
	return e.Kind(), nil
}
